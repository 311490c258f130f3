package loader

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/napolitain/cookie-checker/internal/models"
)

func TestLoadShippedCatalog(t *testing.T) {
	catalog, err := LoadUpgrades("../../data")
	if err != nil {
		t.Fatalf("Failed to load upgrades: %v", err)
	}
	if catalog.Version == "" {
		t.Error("Catalog has no version")
	}
	if len(catalog.Upgrades) == 0 {
		t.Fatal("No upgrades loaded")
	}

	types := make(map[models.UpgradeType]int)
	for _, u := range catalog.Upgrades {
		if u.ID == "" || u.Name == "" {
			t.Errorf("Upgrade missing id or name: %+v", u)
		}
		if u.Cost <= 0 {
			t.Errorf("%s has cost %f", u.Name, u.Cost)
		}
		if _, unknown := u.Effect.(models.UnknownEffect); unknown {
			t.Errorf("%s has unrecognized type %s", u.Name, u.Type())
		}
		types[u.Type()]++
	}

	for _, ut := range models.AllUpgradeTypes() {
		if types[ut] == 0 {
			t.Errorf("Shipped catalog has no %s upgrade", ut)
		}
	}

	t.Logf("Loaded %d upgrades (v%s)", len(catalog.Upgrades), catalog.Version)
}

func TestShippedCatalogParameters(t *testing.T) {
	catalog, err := LoadUpgrades("../../data")
	if err != nil {
		t.Fatalf("Failed to load upgrades: %v", err)
	}

	oneMind := catalog.Get("69")
	if oneMind == nil {
		t.Fatal("One mind (69) not found")
	}
	synergy, ok := oneMind.Effect.(models.SynergyEffect)
	if !ok || synergy.Base != models.Grandma || !synergy.AllOthers {
		t.Errorf("One mind effect = %+v", oneMind.Effect)
	}

	witch := catalog.Get("252")
	combo, ok := witch.Effect.(models.GrandmaComboEffect)
	if !ok || combo.Related != models.WizardTower || combo.PerXGrandmas != 6 {
		t.Errorf("Witch grandmas effect = %+v", witch.Effect)
	}

	if catalog.Upgrades[0].ID != "7" {
		t.Errorf("File order not kept, first upgrade is %s", catalog.Upgrades[0].ID)
	}
}

func TestLoadYAMLCatalog(t *testing.T) {
	dir := t.TempDir()
	content := `
version: "test-1"
upgrades:
  - id: 1
    name: Reinforced pair
    cost: 1000
    type: pair
    buildings: [Cursor, "Wizard Tower"]
    multiplier: 0.01
  - id: abc
    name: Kitten testers
    cost: 50
    type: kitten
    milkFactor: 0.2
`
	if err := os.WriteFile(filepath.Join(dir, "upgrades.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadUpgrades(dir)
	if err != nil {
		t.Fatalf("LoadUpgrades: %v", err)
	}
	if catalog.Version != "test-1" || len(catalog.Upgrades) != 2 {
		t.Fatalf("Unexpected catalog %+v", catalog)
	}
	pair, ok := catalog.Upgrades[0].Effect.(models.PairEffect)
	if !ok || pair.A != models.Cursor || pair.B != models.WizardTower {
		t.Errorf("Pair effect = %+v", catalog.Upgrades[0].Effect)
	}
	if catalog.Upgrades[1].ID != "abc" {
		t.Errorf("ID = %q", catalog.Upgrades[1].ID)
	}
}

func TestJSONPreferredOverYAML(t *testing.T) {
	dir := t.TempDir()
	jsonCatalog := `{"version":"json","upgrades":[]}`
	yamlCatalog := "version: yaml\nupgrades: []\n"
	os.WriteFile(filepath.Join(dir, "upgrades.json"), []byte(jsonCatalog), 0o644)
	os.WriteFile(filepath.Join(dir, "upgrades.yaml"), []byte(yamlCatalog), 0o644)

	catalog, err := LoadUpgrades(dir)
	if err != nil {
		t.Fatalf("LoadUpgrades: %v", err)
	}
	if catalog.Version != "json" {
		t.Errorf("Loaded %s catalog, want json", catalog.Version)
	}
}

func TestLoadUpgradesMissing(t *testing.T) {
	if _, err := LoadUpgrades(t.TempDir()); err == nil {
		t.Error("Expected error for empty data directory")
	}
}

func TestUnknownTypeLoadsAsZeroGain(t *testing.T) {
	catalog, err := BuildCatalog(CatalogJSON{Upgrades: []UpgradeJSON{
		{ID: "1", Name: "Heavenly chip secret", Cost: 11, Type: "heavenly"},
	}})
	if err != nil {
		t.Fatalf("BuildCatalog: %v", err)
	}
	effect, ok := catalog.Upgrades[0].Effect.(models.UnknownEffect)
	if !ok || effect.Raw != "heavenly" {
		t.Errorf("Effect = %+v", catalog.Upgrades[0].Effect)
	}
}

func TestBuildCatalogInvalid(t *testing.T) {
	tests := []struct {
		name     string
		upgrades []UpgradeJSON
	}{
		{"missing id", []UpgradeJSON{{Name: "x", Type: "flat"}}},
		{"missing name", []UpgradeJSON{{ID: "1", Type: "flat"}}},
		{"duplicate id", []UpgradeJSON{{ID: "1", Name: "a", Type: "flat"}, {ID: "1", Name: "b", Type: "flat"}}},
		{"negative cost", []UpgradeJSON{{ID: "1", Name: "a", Cost: -1, Type: "flat"}}},
		{"synergy without base", []UpgradeJSON{{ID: "1", Name: "a", Type: "synergy", Related: "farm"}}},
		{"synergy unknown related", []UpgradeJSON{{ID: "1", Name: "a", Type: "synergy", Base: "farm", Related: "castle"}}},
		{"pair with one building", []UpgradeJSON{{ID: "1", Name: "a", Type: "pair", Buildings: []string{"farm"}}}},
		{"percentBoost unknown target", []UpgradeJSON{{ID: "1", Name: "a", Type: "percentBoost", Target: "keep"}}},
		{"grandmaCombo missing related", []UpgradeJSON{{ID: "1", Name: "a", Type: "grandmaCombo"}}},
		{"nan cost", []UpgradeJSON{{ID: "1", Name: "a", Cost: math.NaN(), Type: "flat", CPSGain: 5}}},
		{"infinite cost", []UpgradeJSON{{ID: "1", Name: "a", Cost: math.Inf(1), Type: "flat"}}},
		{"nan cpsGain", []UpgradeJSON{{ID: "1", Name: "a", Cost: 1, Type: "flat", CPSGain: math.NaN()}}},
		{"infinite multiplier", []UpgradeJSON{{ID: "1", Name: "a", Cost: 1, Type: "goldenCpsBoost", Multiplier: math.Inf(1)}}},
		{"negative infinite milkFactor", []UpgradeJSON{{ID: "1", Name: "a", Cost: 1, Type: "kitten", MilkFactor: math.Inf(-1)}}},
		{"nan perXGrandmas", []UpgradeJSON{{ID: "1", Name: "a", Cost: 1, Type: "grandmaCombo", Related: "farm", PerXGrandmas: math.NaN()}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildCatalog(CatalogJSON{Upgrades: tt.upgrades})
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("Expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestLoadYAMLRejectsNonFiniteNumbers(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"nan cost", "cost: .nan\n    type: flat\n    cpsGain: 5"},
		{"infinite multiplier", "cost: 10\n    type: goldenCpsBoost\n    multiplier: .inf"},
		{"negative infinite gain", "cost: 10\n    type: flat\n    cpsGain: -.inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "version: bad\nupgrades:\n  - id: 1\n    name: Good\n    cost: 100\n    type: flat\n    cpsGain: 1\n" +
				"  - id: 2\n    name: Broken\n    " + tt.entry + "\n"
			path := filepath.Join(t.TempDir(), "upgrades.yaml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadUpgradesFromFile(path); !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("Expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestLoadUpgradesFromFileBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upgrades.json")
	os.WriteFile(path, []byte(`{"upgrades": [`), 0o644)
	if _, err := LoadUpgradesFromFile(path); err == nil {
		t.Error("Expected parse error")
	}

	os.WriteFile(path, []byte(`{"upgrades": [{"id": true, "name": "x"}]}`), 0o644)
	if _, err := LoadUpgradesFromFile(path); err == nil {
		t.Error("Expected error for boolean id")
	}
}
