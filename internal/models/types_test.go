package models

import (
	"math"
	"testing"
)

func TestBuildingCatalog(t *testing.T) {
	buildings := AllBuildings()
	types := AllBuildingTypes()

	if len(buildings) != 20 {
		t.Fatalf("Expected 20 buildings, got %d", len(buildings))
	}
	if len(types) != len(buildings) {
		t.Fatalf("AllBuildingTypes has %d entries, catalog has %d", len(types), len(buildings))
	}

	seen := make(map[string]bool)
	for i, b := range buildings {
		if b.Type != types[i] {
			t.Errorf("Position %d: catalog %s, types %s", i, b.Type, types[i])
		}
		if b.BaseCPS <= 0 {
			t.Errorf("%s has non-positive base CPS %f", b.Name, b.BaseCPS)
		}
		if seen[b.Name] {
			t.Errorf("Duplicate building name %s", b.Name)
		}
		seen[b.Name] = true
		if i > 0 && b.BaseCPS <= buildings[i-1].BaseCPS {
			t.Errorf("%s CPS %f not above %s", b.Name, b.BaseCPS, buildings[i-1].Name)
		}
	}
}

func TestLookupBuilding(t *testing.T) {
	tests := []struct {
		input string
		want  BuildingType
		ok    bool
	}{
		{"cursor", Cursor, true},
		{"Cursor", Cursor, true},
		{"wizardTower", WizardTower, true},
		{"Wizard Tower", WizardTower, true},
		{"wizard_tower", WizardTower, true},
		{"WIZARDTOWER", WizardTower, true},
		{"javascript-console", JavascriptConsole, true},
		{"You", You, true},
		{"all", "", false},
		{"", "", false},
		{"Lumberjack", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseBuildingType(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseBuildingType(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := AntimatterCondenser.DisplayName(); got != "Antimatter Condenser" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := BuildingType("mystery").DisplayName(); got != "mystery" {
		t.Errorf("Unknown DisplayName = %q", got)
	}
}

func TestBuildingCounts(t *testing.T) {
	counts := BuildingCounts{Cursor: 10, Grandma: 5, Farm: -3, WizardTower: 2}

	if got := counts.Get(Farm); got != 0 {
		t.Errorf("Negative count should read as 0, got %d", got)
	}
	if got := counts.Get(Mine); got != 0 {
		t.Errorf("Missing count should be 0, got %d", got)
	}
	if got := counts.Get("Wizard Tower"); got != 2 {
		t.Errorf("Get by display name = %d, want 2", got)
	}
	if got := counts.Total(); got != 17 {
		t.Errorf("Total = %d, want 17", got)
	}
	if got := counts.TotalExcept(Cursor); got != 7 {
		t.Errorf("TotalExcept(cursor) = %d, want 7", got)
	}
	if got := counts.TotalExcept("Grandma"); got != 12 {
		t.Errorf("TotalExcept(Grandma) = %d, want 12", got)
	}

	clone := counts.Clone()
	clone[Cursor] = 99
	if counts[Cursor] != 10 {
		t.Error("Clone shares storage with original")
	}

	var visited []BuildingType
	NewBuildingCounts().Each(func(bt BuildingType, n int) {
		if n != 0 {
			t.Errorf("%s starts at %d", bt, n)
		}
		visited = append(visited, bt)
	})
	if len(visited) != 20 || visited[0] != Cursor || visited[19] != You {
		t.Errorf("Each visited %v", visited)
	}
}

func TestBuildingCountsSaturate(t *testing.T) {
	counts := BuildingCounts{Farm: math.MaxInt, Mine: math.MaxInt, Cursor: 3}
	if got := counts.Total(); got != math.MaxInt {
		t.Errorf("Total() = %d, want math.MaxInt", got)
	}
	if got := counts.TotalExcept(Cursor); got != math.MaxInt {
		t.Errorf("TotalExcept(Cursor) = %d, want math.MaxInt", got)
	}
	if got := counts.TotalExcept(Farm); got != math.MaxInt {
		t.Errorf("TotalExcept(Farm) = %d, want math.MaxInt", got)
	}

	counts = BuildingCounts{Farm: math.MaxInt, Mine: -5}
	if got := counts.Total(); got != math.MaxInt {
		t.Errorf("Negative count changed saturated total: %d", got)
	}
}

func TestUpgradeTypes(t *testing.T) {
	for _, ut := range AllUpgradeTypes() {
		if !ut.Known() {
			t.Errorf("%s should be known", ut)
		}
	}
	if UpgradeType("heavenly").Known() {
		t.Error("heavenly should not be known")
	}

	catalog := &UpgradeCatalog{Upgrades: []*Upgrade{
		{ID: "7", Name: "Forwards from grandma", Effect: FlatEffect{CPSGain: 1}},
		{ID: "52", Name: "Lucky day", Effect: CPSMultiplierEffect{Kind: UpgradeGoldenCpsBoost}},
	}}
	if u := catalog.Get("52"); u == nil || u.Type() != UpgradeGoldenCpsBoost {
		t.Errorf("Get(52) = %+v", u)
	}
	if catalog.Get("8") != nil {
		t.Error("Get(8) should be nil")
	}
	if ids := catalog.IDs(); len(ids) != 2 || ids[0] != "7" {
		t.Errorf("IDs = %v", ids)
	}
	if (&Upgrade{}).Type() != "" {
		t.Error("Upgrade without effect should have empty type")
	}
}
