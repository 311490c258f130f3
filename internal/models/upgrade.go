package models

// UpgradeType is the catalog tag selecting an upgrade's gain formula
type UpgradeType string

const (
	UpgradeFlat             UpgradeType = "flat"
	UpgradeSynergy          UpgradeType = "synergy"
	UpgradeKitten           UpgradeType = "kitten"
	UpgradePair             UpgradeType = "pair"
	UpgradePercentBoost     UpgradeType = "percentBoost"
	UpgradeCursorFinger     UpgradeType = "cursorFinger"
	UpgradeGrandmaCombo     UpgradeType = "grandmaCombo"
	UpgradeClickPercent     UpgradeType = "clickPercent"
	UpgradeGoldenCpsBoost   UpgradeType = "goldenCpsBoost"
	UpgradeSeasonalCpsBoost UpgradeType = "seasonalCpsBoost"
	UpgradeDragonCpsBoost   UpgradeType = "dragonCpsBoost"
)

// AllUpgradeTypes returns every recognized upgrade type
func AllUpgradeTypes() []UpgradeType {
	return []UpgradeType{
		UpgradeFlat, UpgradeSynergy, UpgradeKitten, UpgradePair,
		UpgradePercentBoost, UpgradeCursorFinger, UpgradeGrandmaCombo,
		UpgradeClickPercent, UpgradeGoldenCpsBoost, UpgradeSeasonalCpsBoost, UpgradeDragonCpsBoost,
	}
}

// Known reports whether t is a recognized upgrade type
func (t UpgradeType) Known() bool {
	for _, k := range AllUpgradeTypes() {
		if t == k {
			return true
		}
	}
	return false
}

// RelatedAll is the synergy target meaning "every other building"
const RelatedAll = "all"

// Effect is the type-specific part of an upgrade. The set of
// implementations is closed to this package.
type Effect interface {
	Type() UpgradeType
	isEffect()
}

// FlatEffect adds a fixed amount of CPS
type FlatEffect struct {
	CPSGain float64
}

// SynergyEffect scales with the base building count times a related count.
// Related is empty when AllOthers is set.
type SynergyEffect struct {
	Base      BuildingType
	Related   BuildingType
	AllOthers bool
}

// KittenEffect scales total CPS by milk
type KittenEffect struct {
	MilkFactor float64
}

// PairEffect scales with the product of two building counts
type PairEffect struct {
	A, B       BuildingType
	Multiplier float64
}

// PercentBoostEffect boosts a building's share of total CPS
type PercentBoostEffect struct {
	Target     BuildingType
	Multiplier float64
}

// CursorFingerEffect gives cursors a bonus per non-cursor building
type CursorFingerEffect struct {
	Multiplier float64
}

// GrandmaComboEffect boosts a building by 1% per PerXGrandmas grandmas
type GrandmaComboEffect struct {
	Related      BuildingType
	PerXGrandmas float64
}

// CPSMultiplierEffect covers the variants whose gain is totalCps * Multiplier:
// clickPercent, goldenCpsBoost, seasonalCpsBoost and dragonCpsBoost.
type CPSMultiplierEffect struct {
	Kind       UpgradeType
	Multiplier float64
}

// UnknownEffect is any catalog type this build does not recognize
type UnknownEffect struct {
	Raw UpgradeType
}

func (FlatEffect) Type() UpgradeType { return UpgradeFlat }
func (SynergyEffect) Type() UpgradeType { return UpgradeSynergy }
func (KittenEffect) Type() UpgradeType { return UpgradeKitten }
func (PairEffect) Type() UpgradeType { return UpgradePair }
func (PercentBoostEffect) Type() UpgradeType { return UpgradePercentBoost }
func (CursorFingerEffect) Type() UpgradeType { return UpgradeCursorFinger }
func (GrandmaComboEffect) Type() UpgradeType { return UpgradeGrandmaCombo }
func (e CPSMultiplierEffect) Type() UpgradeType { return e.Kind }
func (e UnknownEffect) Type() UpgradeType { return e.Raw }

func (FlatEffect) isEffect() {}
func (SynergyEffect) isEffect() {}
func (KittenEffect) isEffect() {}
func (PairEffect) isEffect() {}
func (PercentBoostEffect) isEffect() {}
func (CursorFingerEffect) isEffect() {}
func (GrandmaComboEffect) isEffect() {}
func (CPSMultiplierEffect) isEffect() {}
func (UnknownEffect) isEffect() {}

// Upgrade is a static upgrade catalog entry
type Upgrade struct {
	ID        string
	Name      string
	Cost      float64
	Effect    Effect
	Notes     string
	IconIndex *int
}

// Type returns the upgrade's catalog type
func (u *Upgrade) Type() UpgradeType {
	if u.Effect == nil {
		return ""
	}
	return u.Effect.Type()
}

// UpgradeCatalog is a versioned, ordered list of upgrades
type UpgradeCatalog struct {
	Version  string
	Upgrades []*Upgrade
}

// Get returns the upgrade with the given ID
func (c *UpgradeCatalog) Get(id string) *Upgrade {
	for _, u := range c.Upgrades {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// IDs returns upgrade IDs in catalog order
func (c *UpgradeCatalog) IDs() []string {
	ids := make([]string, len(c.Upgrades))
	for i, u := range c.Upgrades {
		ids[i] = u.ID
	}
	return ids
}
