package solver

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/napolitain/cookie-checker/internal/models"
)

// CostReference is the spend the building score is normalized to
const CostReference = 1_000_000

// BuildingResult is one ranked building
type BuildingResult struct {
	Building     models.Building
	Cost         float64
	EffectiveCPS float64
	Efficiency   float64 // CPS gained per CostReference cookies spent
}

// ParseCost parses a user-entered cost. It reports false for empty text,
// non-numbers, non-finite values and anything not strictly positive.
func ParseCost(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	cost, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return 0, false
	}
	if cost <= 0 {
		return 0, false
	}
	return cost, true
}

// RankBuildings scores every building with a usable cost and returns them
// best first. Buildings are matched to the catalog by type, falling back to
// name; unknown buildings and unusable costs are left out.
func RankBuildings(inputs []models.BuildingInput, prestigeLevel int) []BuildingResult {
	multiplier := PrestigeMultiplier(prestigeLevel)

	results := make([]BuildingResult, 0, len(inputs))
	for _, in := range inputs {
		building, ok := lookupInput(in)
		if !ok {
			continue
		}
		cost, ok := ParseCost(in.Cost)
		if !ok {
			continue
		}

		effective := building.BaseCPS * multiplier
		results = append(results, BuildingResult{
			Building:     building,
			Cost:         cost,
			EffectiveCPS: effective,
			Efficiency:   (CostReference / cost) * effective,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Efficiency > results[j].Efficiency
	})
	return results
}

func lookupInput(in models.BuildingInput) (models.Building, bool) {
	if in.Type != "" {
		if b, ok := models.LookupBuilding(string(in.Type)); ok {
			return b, true
		}
	}
	return models.LookupBuilding(in.Name)
}

// BestBuilding returns the top-ranked building, if any
func BestBuilding(results []BuildingResult) (BuildingResult, bool) {
	if len(results) == 0 {
		return BuildingResult{}, false
	}
	return results[0], true
}
