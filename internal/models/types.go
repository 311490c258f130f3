package models

import (
	"math"
	"strings"
)

// BuildingType identifies a building by its camelCase key
type BuildingType string

const (
	Cursor              BuildingType = "cursor"
	Grandma             BuildingType = "grandma"
	Farm                BuildingType = "farm"
	Mine                BuildingType = "mine"
	Factory             BuildingType = "factory"
	Bank                BuildingType = "bank"
	Temple              BuildingType = "temple"
	WizardTower         BuildingType = "wizardTower"
	Shipment            BuildingType = "shipment"
	AlchemyLab          BuildingType = "alchemyLab"
	Portal              BuildingType = "portal"
	TimeMachine         BuildingType = "timeMachine"
	AntimatterCondenser BuildingType = "antimatterCondenser"
	Prism               BuildingType = "prism"
	Chancemaker         BuildingType = "chancemaker"
	FractalEngine       BuildingType = "fractalEngine"
	JavascriptConsole   BuildingType = "javascriptConsole"
	Idleverse           BuildingType = "idleverse"
	CortexBaker         BuildingType = "cortexBaker"
	You                 BuildingType = "you"
)

// AllBuildingTypes returns all building types in store order
func AllBuildingTypes() []BuildingType {
	return []BuildingType{
		Cursor, Grandma, Farm, Mine, Factory,
		Bank, Temple, WizardTower, Shipment, AlchemyLab,
		Portal, TimeMachine, AntimatterCondenser, Prism, Chancemaker,
		FractalEngine, JavascriptConsole, Idleverse, CortexBaker, You,
	}
}

// Building is a static catalog entry
type Building struct {
	Type    BuildingType
	Name    string
	BaseCPS float64
}

// AllBuildings returns the building catalog in store order.
// Base CPS values are the unupgraded per-building production.
func AllBuildings() []Building {
	return []Building{
		{Cursor, "Cursor", 0.1},
		{Grandma, "Grandma", 1.2},
		{Farm, "Farm", 8},
		{Mine, "Mine", 47},
		{Factory, "Factory", 260},
		{Bank, "Bank", 1400},
		{Temple, "Temple", 7800},
		{WizardTower, "Wizard Tower", 44000},
		{Shipment, "Shipment", 260000},
		{AlchemyLab, "Alchemy Lab", 1600000},
		{Portal, "Portal", 10000000},
		{TimeMachine, "Time Machine", 65000000},
		{AntimatterCondenser, "Antimatter Condenser", 430000000},
		{Prism, "Prism", 2900000000},
		{Chancemaker, "Chancemaker", 21000000000},
		{FractalEngine, "Fractal Engine", 150000000000},
		{JavascriptConsole, "Javascript Console", 1100000000000},
		{Idleverse, "Idleverse", 8300000000000},
		{CortexBaker, "Cortex Baker", 61000000000000},
		{You, "You", 470000000000000},
	}
}

var buildingByKey = func() map[string]Building {
	m := make(map[string]Building, 60)
	for _, b := range AllBuildings() {
		m[normalizeKey(string(b.Type))] = b
		m[normalizeKey(b.Name)] = b
	}
	return m
}()

// normalizeKey folds case and drops separators so that "Wizard Tower",
// "wizardTower" and "wizard_tower" compare equal.
func normalizeKey(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '_', '-':
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// LookupBuilding finds a catalog building by type key or display name
func LookupBuilding(name string) (Building, bool) {
	b, ok := buildingByKey[normalizeKey(name)]
	return b, ok
}

// ParseBuildingType returns the canonical BuildingType for a key or display name
func ParseBuildingType(name string) (BuildingType, bool) {
	b, ok := LookupBuilding(name)
	if !ok {
		return "", false
	}
	return b.Type, true
}

// DisplayName returns the store name of a building type
func (bt BuildingType) DisplayName() string {
	if b, ok := LookupBuilding(string(bt)); ok {
		return b.Name
	}
	return string(bt)
}

// BuildingInput is a building paired with the cost the player typed in.
// Cost stays raw text; parsing is the engine's job.
type BuildingInput struct {
	Type BuildingType
	Name string
	Cost string
}

// EmptyBuildingInputs returns one input per catalog building with no cost
func EmptyBuildingInputs() []BuildingInput {
	buildings := AllBuildings()
	inputs := make([]BuildingInput, len(buildings))
	for i, b := range buildings {
		inputs[i] = BuildingInput{Type: b.Type, Name: b.Name}
	}
	return inputs
}

// BuildingCounts holds owned building counts. Missing keys count as zero.
type BuildingCounts map[BuildingType]int

// NewBuildingCounts returns counts with every building present at zero
func NewBuildingCounts() BuildingCounts {
	counts := make(BuildingCounts, 20)
	for _, bt := range AllBuildingTypes() {
		counts[bt] = 0
	}
	return counts
}

// Get returns the count for a building, accepting any spelling LookupBuilding does
func (c BuildingCounts) Get(bt BuildingType) int {
	if n, ok := c[bt]; ok {
		return max(n, 0)
	}
	canonical, ok := ParseBuildingType(string(bt))
	if !ok {
		return 0
	}
	return max(c[canonical], 0)
}

// Total returns the sum of all counts, saturating at math.MaxInt
func (c BuildingCounts) Total() int {
	total := 0
	for _, n := range c {
		total = addCount(total, n)
	}
	return total
}

// TotalExcept returns the sum of all counts other than bt
func (c BuildingCounts) TotalExcept(bt BuildingType) int {
	if canonical, ok := ParseBuildingType(string(bt)); ok {
		bt = canonical
	}
	total := 0
	for k, n := range c {
		if k == bt {
			continue
		}
		total = addCount(total, n)
	}
	return total
}

// addCount adds a non-negative count without wrapping past math.MaxInt
func addCount(total, n int) int {
	n = max(n, 0)
	if total > math.MaxInt-n {
		return math.MaxInt
	}
	return total + n
}

// Clone returns an independent copy
func (c BuildingCounts) Clone() BuildingCounts {
	out := make(BuildingCounts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Each iterates over all catalog buildings in store order
func (c BuildingCounts) Each(fn func(BuildingType, int)) {
	for _, bt := range AllBuildingTypes() {
		fn(bt, c.Get(bt))
	}
}
