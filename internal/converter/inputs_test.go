package converter

import (
	"testing"

	"github.com/napolitain/cookie-checker/internal/models"
	"github.com/napolitain/cookie-checker/internal/session"
)

func TestSessionToBuildingInputs(t *testing.T) {
	s := session.New()
	s.SetCost("Cursor", "15")
	s.PrestigeLevel = -9

	inputs, prestige := SessionToBuildingInputs(s)
	if prestige != 0 {
		t.Errorf("Prestige = %d, want 0", prestige)
	}
	if len(inputs) != len(s.Buildings) {
		t.Fatalf("Expected %d rows, got %d", len(s.Buildings), len(inputs))
	}

	inputs[0].Cost = "changed"
	if s.Buildings[0].Cost != "15" {
		t.Error("Inputs share storage with the session")
	}
}

func TestSessionToUpgradeInputs(t *testing.T) {
	s := session.New()
	s.SetCount("Farm", 4)
	s.UpgradeCPS = "not a number"
	s.UpgradeMilk = ""

	in := SessionToUpgradeInputs(s)
	if in.TotalCPS != 0 {
		t.Errorf("TotalCPS = %f, want 0", in.TotalCPS)
	}
	if in.MilkPercent != 1 {
		t.Errorf("MilkPercent = %f, want 1", in.MilkPercent)
	}
	if in.Counts[models.Farm] != 4 || len(in.Counts) != len(models.AllBuildingTypes()) {
		t.Errorf("Counts = %v", in.Counts)
	}

	in.Counts[models.Farm] = 100
	if s.UpgradeCounts[models.Farm] != 4 {
		t.Error("Counts share storage with the session")
	}
}

func TestRankSession(t *testing.T) {
	catalog := &models.UpgradeCatalog{
		Upgrades: []*models.Upgrade{
			{ID: "kitten", Name: "Kitten", Cost: 1000, Effect: models.KittenEffect{MilkFactor: 0.1}},
			{ID: "pair", Name: "Pair", Cost: 1000, Effect: models.PairEffect{A: models.Cursor, B: models.Grandma, Multiplier: 0.01}},
		},
	}

	s := session.New()
	s.SetCount("Cursor", 10)
	s.SetCount("Grandma", 5)
	s.UpgradeCPS = "100"
	s.UpgradeMilk = "2"
	s.TogglePurchased("kitten")

	ranked := RankSession(catalog, s)
	if len(ranked) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(ranked))
	}
	// kitten: 100 * 0.1 * 2 = 20, pair: 10 * 5 * 0.01 = 0.5
	if ranked[0].Upgrade.ID != "kitten" || ranked[0].CPSGain != 20 {
		t.Errorf("First = %s (%f), want kitten (20)", ranked[0].Upgrade.ID, ranked[0].CPSGain)
	}
	if !ranked[0].Purchased || ranked[1].Purchased {
		t.Errorf("Purchased flags = %v, %v", ranked[0].Purchased, ranked[1].Purchased)
	}
}
