package solver

import (
	"sort"

	"github.com/napolitain/cookie-checker/internal/models"
)

const (
	synergyAllRate     = 0.02
	synergyRelatedRate = 0.01
	grandmaComboRate   = 0.01
)

// UpgradeInputs is the game snapshot upgrades are scored against
type UpgradeInputs struct {
	Counts      models.BuildingCounts
	TotalCPS    float64
	MilkPercent float64 // 1.0 = 100% milk
}

// UpgradeResult is one ranked upgrade
type UpgradeResult struct {
	Upgrade    *models.Upgrade
	CPSGain    float64
	Efficiency float64
	Purchased  bool
}

// CPSGain projects the CPS an upgrade would add. Unrecognized effects gain nothing.
func CPSGain(u *models.Upgrade, in UpgradeInputs) float64 {
	counts := in.Counts
	if counts == nil {
		counts = models.BuildingCounts{}
	}

	switch e := u.Effect.(type) {
	case models.FlatEffect:
		return e.CPSGain

	case models.SynergyEffect:
		base := float64(counts.Get(e.Base))
		if e.AllOthers {
			return base * float64(counts.TotalExcept(e.Base)) * synergyAllRate
		}
		return base * float64(counts.Get(e.Related)) * synergyRelatedRate

	case models.KittenEffect:
		return in.TotalCPS * e.MilkFactor * in.MilkPercent

	case models.PairEffect:
		return float64(counts.Get(e.A)) * float64(counts.Get(e.B)) * e.Multiplier

	case models.PercentBoostEffect:
		perBuilding := in.TotalCPS / float64(flooredTotal(counts))
		return float64(counts.Get(e.Target)) * perBuilding * e.Multiplier

	case models.CursorFingerEffect:
		cursors := float64(counts.Get(models.Cursor))
		return cursors * float64(counts.TotalExcept(models.Cursor)) * e.Multiplier

	case models.GrandmaComboEffect:
		perX := e.PerXGrandmas
		if perX <= 0 {
			perX = 1
		}
		boost := (1 / perX) * float64(counts.Get(models.Grandma)) * grandmaComboRate
		return float64(counts.Get(e.Related)) * boost * in.TotalCPS / float64(flooredTotal(counts))

	case models.CPSMultiplierEffect:
		return in.TotalCPS * e.Multiplier

	default:
		return 0
	}
}

// flooredTotal is the total building count, never less than 1
func flooredTotal(counts models.BuildingCounts) int {
	return max(counts.Total(), 1)
}

// RankUpgrades scores every upgrade and returns them best first.
// All upgrades are kept, including free ones and ones with no gain.
func RankUpgrades(upgrades []*models.Upgrade, in UpgradeInputs) []UpgradeResult {
	results := make([]UpgradeResult, 0, len(upgrades))
	for _, u := range upgrades {
		if u == nil {
			continue
		}
		gain := CPSGain(u, in)
		results = append(results, UpgradeResult{
			Upgrade:    u,
			CPSGain:    gain,
			Efficiency: ROIMetric{Gain: gain, Cost: u.Cost}.Calculate(),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Efficiency > results[j].Efficiency
	})
	return results
}

// MarkPurchased copies purchased flags onto results without reordering them
func MarkPurchased(results []UpgradeResult, purchased map[string]bool) []UpgradeResult {
	out := make([]UpgradeResult, len(results))
	for i, r := range results {
		r.Purchased = purchased[r.Upgrade.ID]
		out[i] = r
	}
	return out
}

// FilterPurchased drops purchased upgrades, keeping rank order
func FilterPurchased(results []UpgradeResult) []UpgradeResult {
	out := make([]UpgradeResult, 0, len(results))
	for _, r := range results {
		if !r.Purchased {
			out = append(out, r)
		}
	}
	return out
}

// BestUpgrade returns the top-ranked upgrade, if any
func BestUpgrade(results []UpgradeResult) (UpgradeResult, bool) {
	if len(results) == 0 {
		return UpgradeResult{}, false
	}
	return results[0], true
}
