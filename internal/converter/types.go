// Package converter turns raw user input into engine inputs
package converter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/napolitain/cookie-checker/internal/models"
)

var (
	ErrNoMatch   = errors.New("no match")
	ErrAmbiguous = errors.New("ambiguous match")
)

// ParseCPS parses a CPS field; anything unusable is 0
func ParseCPS(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseMilk parses the milk level. Empty, unusable and zero values fall
// back to 1.0 (100% milk).
func ParseMilk(raw string) float64 {
	v := ParseCPS(raw)
	if v == 0 {
		return 1.0
	}
	return v
}

// ParseCount parses a building count; unusable or negative values are 0
func ParseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParsePrestige parses a prestige level; unusable or negative values are 0
func ParsePrestige(raw string) int {
	return ParseCount(raw)
}

// buildingNames implements fuzzy.Source over the building catalog
type buildingNames []models.Building

func (b buildingNames) Len() int { return len(b) }
func (b buildingNames) String(i int) string { return b[i].Name }

// ResolveBuilding maps user text to a building: exact key or name first,
// then a fuzzy match that must have a single best candidate.
func ResolveBuilding(query string) (models.BuildingType, error) {
	if bt, ok := models.ParseBuildingType(query); ok {
		return bt, nil
	}

	source := buildingNames(models.AllBuildings())
	idx, err := bestMatch(query, source)
	if err != nil {
		return "", fmt.Errorf("building %q: %w", query, err)
	}
	return source[idx].Type, nil
}

// upgradeNames implements fuzzy.Source over upgrades
type upgradeNames []*models.Upgrade

func (u upgradeNames) Len() int { return len(u) }
func (u upgradeNames) String(i int) string { return u[i].Name }

// ResolveUpgrade finds an upgrade by ID, exact name, or fuzzy name
func ResolveUpgrade(catalog *models.UpgradeCatalog, query string) (*models.Upgrade, error) {
	query = strings.TrimSpace(query)
	if u := catalog.Get(query); u != nil {
		return u, nil
	}
	for _, u := range catalog.Upgrades {
		if strings.EqualFold(u.Name, query) {
			return u, nil
		}
	}

	source := upgradeNames(catalog.Upgrades)
	idx, err := bestMatch(query, source)
	if err != nil {
		return nil, fmt.Errorf("upgrade %q: %w", query, err)
	}
	return source[idx], nil
}

func bestMatch(query string, source fuzzy.Source) (int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, ErrNoMatch
	}
	matches := fuzzy.FindFrom(query, source)
	switch {
	case len(matches) == 0:
		return 0, ErrNoMatch
	case len(matches) == 1 || matches[0].Score > matches[1].Score:
		return matches[0].Index, nil
	}

	var candidates []string
	for _, m := range matches {
		if m.Score != matches[0].Score {
			break
		}
		candidates = append(candidates, m.Str)
	}
	return 0, fmt.Errorf("%w: %s", ErrAmbiguous, strings.Join(candidates, ", "))
}
