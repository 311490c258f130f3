package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/cookie-checker/internal/models"
)

// ErrInvalidCatalog wraps every catalog validation failure
var ErrInvalidCatalog = errors.New("invalid upgrade catalog")

// Catalog file names, tried in order
var catalogFiles = []string{"upgrades.json", "upgrades.yaml", "upgrades.yml"}

// upgradeID accepts both numeric and string IDs
type upgradeID string

func (id *upgradeID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = upgradeID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %s", data)
	}
	*id = upgradeID(n.String())
	return nil
}

func (id *upgradeID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: id must be a scalar", node.Line)
	}
	*id = upgradeID(node.Value)
	return nil
}

// UpgradeJSON represents one upgrade in the catalog file
type UpgradeJSON struct {
	ID           upgradeID `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Cost         float64   `json:"cost" yaml:"cost"`
	Type         string    `json:"type" yaml:"type"`
	CPSGain      float64   `json:"cpsGain,omitempty" yaml:"cpsGain,omitempty"`
	Base         string    `json:"base,omitempty" yaml:"base,omitempty"`
	Related      string    `json:"related,omitempty" yaml:"related,omitempty"`
	Target       string    `json:"target,omitempty" yaml:"target,omitempty"`
	Buildings    []string  `json:"buildings,omitempty" yaml:"buildings,omitempty"`
	Multiplier   float64   `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
	MilkFactor   float64   `json:"milkFactor,omitempty" yaml:"milkFactor,omitempty"`
	PerXGrandmas float64   `json:"perXGrandmas,omitempty" yaml:"perXGrandmas,omitempty"`
	Notes        string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	IconIndex    *int      `json:"iconIndex,omitempty" yaml:"iconIndex,omitempty"`
}

// CatalogJSON is the top-level catalog file
type CatalogJSON struct {
	Version  string        `json:"version" yaml:"version"`
	Upgrades []UpgradeJSON `json:"upgrades" yaml:"upgrades"`
}

// LoadUpgrades loads the upgrade catalog from dataDir. JSON is preferred;
// a YAML catalog is used when no JSON file exists.
func LoadUpgrades(dataDir string) (*models.UpgradeCatalog, error) {
	for _, name := range catalogFiles {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadUpgradesFromFile(path)
	}
	return nil, fmt.Errorf("no upgrade catalog in %s (looked for %v)", dataDir, catalogFiles)
}

// LoadUpgradesFromFile loads a catalog, picking the decoder by extension
func LoadUpgradesFromFile(path string) (*models.UpgradeCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var raw CatalogJSON
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	catalog, err := BuildCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	slog.Debug("Loaded upgrade catalog",
		slog.String("path", path),
		slog.String("version", catalog.Version),
		slog.Int("upgrades", len(catalog.Upgrades)))
	return catalog, nil
}

// BuildCatalog validates raw entries and converts them to models, keeping file order
func BuildCatalog(raw CatalogJSON) (*models.UpgradeCatalog, error) {
	catalog := &models.UpgradeCatalog{
		Version:  raw.Version,
		Upgrades: make([]*models.Upgrade, 0, len(raw.Upgrades)),
	}

	seen := make(map[string]bool, len(raw.Upgrades))
	for i, u := range raw.Upgrades {
		id := string(u.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidCatalog, i)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, id)
		}
		seen[id] = true

		if u.Name == "" {
			return nil, fmt.Errorf("%w: upgrade %q has no name", ErrInvalidCatalog, id)
		}
		if field, ok := nonFinite(u); ok {
			return nil, fmt.Errorf("%w: upgrade %q has non-finite %s", ErrInvalidCatalog, id, field)
		}
		if u.Cost < 0 {
			return nil, fmt.Errorf("%w: upgrade %q has negative cost %s",
				ErrInvalidCatalog, id, strconv.FormatFloat(u.Cost, 'f', -1, 64))
		}

		effect, err := toEffect(u)
		if err != nil {
			return nil, fmt.Errorf("%w: upgrade %q: %v", ErrInvalidCatalog, id, err)
		}

		catalog.Upgrades = append(catalog.Upgrades, &models.Upgrade{
			ID:        id,
			Name:      u.Name,
			Cost:      u.Cost,
			Effect:    effect,
			Notes:     u.Notes,
			IconIndex: u.IconIndex,
		})
	}

	return catalog, nil
}

// nonFinite returns the first numeric field holding NaN or ±Inf.
// YAML accepts .nan and .inf for any float.
func nonFinite(u UpgradeJSON) (string, bool) {
	fields := []struct {
		name  string
		value float64
	}{
		{"cost", u.Cost},
		{"cpsGain", u.CPSGain},
		{"multiplier", u.Multiplier},
		{"milkFactor", u.MilkFactor},
		{"perXGrandmas", u.PerXGrandmas},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return f.name, true
		}
	}
	return "", false
}

func toEffect(u UpgradeJSON) (models.Effect, error) {
	switch t := models.UpgradeType(u.Type); t {
	case models.UpgradeFlat:
		return models.FlatEffect{CPSGain: u.CPSGain}, nil

	case models.UpgradeSynergy:
		base, err := building("base", u.Base)
		if err != nil {
			return nil, err
		}
		if u.Related == models.RelatedAll {
			return models.SynergyEffect{Base: base, AllOthers: true}, nil
		}
		related, err := building("related", u.Related)
		if err != nil {
			return nil, err
		}
		return models.SynergyEffect{Base: base, Related: related}, nil

	case models.UpgradeKitten:
		return models.KittenEffect{MilkFactor: u.MilkFactor}, nil

	case models.UpgradePair:
		if len(u.Buildings) != 2 {
			return nil, fmt.Errorf("pair needs exactly 2 buildings, got %d", len(u.Buildings))
		}
		a, err := building("buildings[0]", u.Buildings[0])
		if err != nil {
			return nil, err
		}
		b, err := building("buildings[1]", u.Buildings[1])
		if err != nil {
			return nil, err
		}
		return models.PairEffect{A: a, B: b, Multiplier: u.Multiplier}, nil

	case models.UpgradePercentBoost:
		target, err := building("target", u.Target)
		if err != nil {
			return nil, err
		}
		return models.PercentBoostEffect{Target: target, Multiplier: u.Multiplier}, nil

	case models.UpgradeCursorFinger:
		return models.CursorFingerEffect{Multiplier: u.Multiplier}, nil

	case models.UpgradeGrandmaCombo:
		related, err := building("related", u.Related)
		if err != nil {
			return nil, err
		}
		return models.GrandmaComboEffect{Related: related, PerXGrandmas: u.PerXGrandmas}, nil

	case models.UpgradeClickPercent, models.UpgradeGoldenCpsBoost,
		models.UpgradeSeasonalCpsBoost, models.UpgradeDragonCpsBoost:
		return models.CPSMultiplierEffect{Kind: t, Multiplier: u.Multiplier}, nil

	default:
		slog.Warn("Unrecognized upgrade type, scoring as zero gain",
			slog.String("id", string(u.ID)), slog.String("type", u.Type))
		return models.UnknownEffect{Raw: t}, nil
	}
}

func building(field, name string) (models.BuildingType, error) {
	if name == "" {
		return "", fmt.Errorf("missing %s", field)
	}
	bt, ok := models.ParseBuildingType(name)
	if !ok {
		return "", fmt.Errorf("%s: unknown building %q", field, name)
	}
	return bt, nil
}
