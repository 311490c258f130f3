package converter

import (
	"github.com/napolitain/cookie-checker/internal/models"
	"github.com/napolitain/cookie-checker/internal/session"
	"github.com/napolitain/cookie-checker/internal/solver"
)

// SessionToBuildingInputs returns the building rows and prestige level the
// building engine ranks
func SessionToBuildingInputs(s *session.Session) ([]models.BuildingInput, int) {
	inputs := make([]models.BuildingInput, len(s.Buildings))
	copy(inputs, s.Buildings)
	return inputs, max(s.PrestigeLevel, 0)
}

// SessionToUpgradeInputs coerces the upgrade checker's saved fields
func SessionToUpgradeInputs(s *session.Session) solver.UpgradeInputs {
	counts := models.NewBuildingCounts()
	for _, bt := range models.AllBuildingTypes() {
		counts[bt] = s.UpgradeCounts.Get(bt)
	}
	return solver.UpgradeInputs{
		Counts:      counts,
		TotalCPS:    ParseCPS(s.UpgradeCPS),
		MilkPercent: ParseMilk(s.UpgradeMilk),
	}
}

// RankSession ranks the catalog against the session and merges purchased flags
func RankSession(catalog *models.UpgradeCatalog, s *session.Session) []solver.UpgradeResult {
	ranked := solver.RankUpgrades(catalog.Upgrades, SessionToUpgradeInputs(s))
	return solver.MarkPurchased(ranked, s.Purchased)
}
