// Package session holds the player's saved inputs and persists them as a
// flat key/value snapshot.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/napolitain/cookie-checker/internal/models"
)

// Snapshot keys
const (
	KeyBuildings        = "buildings"
	KeyPrestigeLevel    = "prestigeLevel"
	KeyCPS              = "cps"
	KeyUpgradeBuildings = "upgradeBuildings"
	KeyUpgradeCPS       = "upgradeCps"
	KeyUpgradeMilk      = "upgradeMilk"
	KeyHidePurchased    = "hidePurchased"
	PurchasedKeyPrefix  = "upgrade_"
)

// DefaultMilk is the milk level of a fresh session
const DefaultMilk = "1.0"

var ErrUnknownBuilding = errors.New("unknown building")

// Session is every input the two checkers read, with their defaults
type Session struct {
	// building checker
	Buildings     []models.BuildingInput
	PrestigeLevel int
	CPS           string

	// upgrade checker
	UpgradeCounts models.BuildingCounts
	UpgradeCPS    string
	UpgradeMilk   string
	HidePurchased bool
	Purchased     map[string]bool
}

// New returns the state of a session that has never been used
func New() *Session {
	return &Session{
		Buildings:     models.EmptyBuildingInputs(),
		UpgradeCounts: models.NewBuildingCounts(),
		UpgradeMilk:   DefaultMilk,
		Purchased:     make(map[string]bool),
	}
}

// SetCost records the cost typed for a building
func (s *Session) SetCost(building, cost string) error {
	bt, ok := models.ParseBuildingType(building)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBuilding, building)
	}
	for i := range s.Buildings {
		if s.Buildings[i].Type == bt {
			s.Buildings[i].Cost = strings.TrimSpace(cost)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownBuilding, building)
}

// SetPrestige sets the prestige level; negatives become 0
func (s *Session) SetPrestige(level int) {
	s.PrestigeLevel = max(level, 0)
}

// SetCount sets an owned building count; negatives become 0
func (s *Session) SetCount(building string, count int) error {
	bt, ok := models.ParseBuildingType(building)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBuilding, building)
	}
	if s.UpgradeCounts == nil {
		s.UpgradeCounts = models.NewBuildingCounts()
	}
	s.UpgradeCounts[bt] = max(count, 0)
	return nil
}

// SetCPS records the CPS shown on the building screen. It is kept, not scored.
func (s *Session) SetCPS(raw string) {
	s.CPS = strings.TrimSpace(raw)
}

// SetUpgradeCPS records the raw CPS the upgrade checker scores against
func (s *Session) SetUpgradeCPS(raw string) {
	s.UpgradeCPS = strings.TrimSpace(raw)
}

// SetMilk records the milk level; an empty value restores the default
func (s *Session) SetMilk(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultMilk
	}
	s.UpgradeMilk = raw
}

func (s *Session) SetHidePurchased(hide bool) {
	s.HidePurchased = hide
}

// IsPurchased reports the purchased flag for an upgrade
func (s *Session) IsPurchased(id string) bool {
	return s.Purchased[id]
}

// TogglePurchased flips an upgrade's purchased flag and returns the new value
func (s *Session) TogglePurchased(id string) bool {
	if s.Purchased == nil {
		s.Purchased = make(map[string]bool)
	}
	s.Purchased[id] = !s.Purchased[id]
	return s.Purchased[id]
}

// buildingJSON is the saved shape of one building row
type buildingJSON struct {
	Name string  `json:"name"`
	CPS  float64 `json:"cps"`
	Cost string  `json:"cost"`
}

// Snapshot flattens the session into its persisted keys
func (s *Session) Snapshot() (map[string]string, error) {
	snap := make(map[string]string, 8+len(s.Purchased))

	rows := make([]buildingJSON, 0, len(s.Buildings))
	for _, in := range s.Buildings {
		b, ok := models.LookupBuilding(string(in.Type))
		if !ok {
			continue
		}
		rows = append(rows, buildingJSON{Name: b.Name, CPS: b.BaseCPS, Cost: in.Cost})
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", KeyBuildings, err)
	}
	snap[KeyBuildings] = string(data)

	counts := make(map[string]int, len(s.UpgradeCounts))
	for _, bt := range models.AllBuildingTypes() {
		counts[string(bt)] = s.UpgradeCounts.Get(bt)
	}
	data, err = json.Marshal(counts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", KeyUpgradeBuildings, err)
	}
	snap[KeyUpgradeBuildings] = string(data)

	snap[KeyPrestigeLevel] = strconv.Itoa(s.PrestigeLevel)
	snap[KeyCPS] = s.CPS
	snap[KeyUpgradeCPS] = s.UpgradeCPS
	snap[KeyUpgradeMilk] = s.UpgradeMilk
	snap[KeyHidePurchased] = strconv.FormatBool(s.HidePurchased)

	for id, purchased := range s.Purchased {
		snap[PurchasedKeyPrefix+id] = strconv.FormatBool(purchased)
	}
	return snap, nil
}

// FromSnapshot rebuilds a session from persisted keys. Missing or malformed
// fields keep their defaults.
func FromSnapshot(snap map[string]string) *Session {
	s := New()

	if raw, ok := snap[KeyBuildings]; ok {
		decodeBuildings(s, raw)
	}
	if raw, ok := snap[KeyUpgradeBuildings]; ok {
		decodeCounts(s, raw)
	}
	if raw, ok := snap[KeyPrestigeLevel]; ok {
		if level, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			s.SetPrestige(level)
		}
	}
	if raw, ok := snap[KeyCPS]; ok {
		s.CPS = raw
	}
	if raw, ok := snap[KeyUpgradeCPS]; ok {
		s.UpgradeCPS = raw
	}
	if raw, ok := snap[KeyUpgradeMilk]; ok && raw != "" {
		s.UpgradeMilk = raw
	}
	s.HidePurchased = snap[KeyHidePurchased] == "true"

	for key, raw := range snap {
		id, ok := strings.CutPrefix(key, PurchasedKeyPrefix)
		if !ok || id == "" {
			continue
		}
		s.Purchased[id] = raw == "true"
	}
	return s
}

func decodeBuildings(s *Session, raw string) {
	if !gjson.Valid(raw) {
		slog.Warn("Ignoring malformed saved field", slog.String("key", KeyBuildings))
		return
	}
	gjson.Parse(raw).ForEach(func(_, row gjson.Result) bool {
		name := row.Get("name").String()
		cost := row.Get("cost")
		if cost.Type == gjson.Null {
			return true
		}
		if err := s.SetCost(name, cost.String()); err != nil {
			slog.Debug("Skipping saved building", slog.String("name", name), slog.Any("error", err))
		}
		return true
	})
}

func decodeCounts(s *Session, raw string) {
	if !gjson.Valid(raw) {
		slog.Warn("Ignoring malformed saved field", slog.String("key", KeyUpgradeBuildings))
		return
	}
	gjson.Parse(raw).ForEach(func(key, value gjson.Result) bool {
		count := 0
		if value.Type == gjson.Number {
			count = int(value.Int())
		}
		if err := s.SetCount(key.String(), count); err != nil {
			slog.Debug("Skipping saved count", slog.String("building", key.String()), slog.Any("error", err))
		}
		return true
	})
}
