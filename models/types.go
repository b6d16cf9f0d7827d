package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Wave number constants
const (
	// BossWave is the stored wave number of the optional bonus round.
	BossWave = 4
	// MaxNormalWave is the highest wave number subject to delivery rules.
	MaxNormalWave = 3
	// BossWaveLabel is how drafts name the boss wave.
	BossWaveLabel = "boss"
)

// Tide constants
const (
	TideLow    = "low"
	TideNormal = "normal"
	TideHigh   = "high"
)

// Danger rate bounds
const (
	MinDangerRate = 0
	MaxDangerRate = 333
)

// WaveNumber is 1, 2, 3 or the boss wave. Drafts may send the boss wave as
// the string "boss" or as its stored number.
type WaveNumber int

func (n *WaveNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v := strings.ToLower(strings.TrimSpace(s))
		switch v {
		case BossWaveLabel, "ex":
			*n = BossWave
			return nil
		case "1", "2", "3":
			*n = WaveNumber(v[0] - '0')
			return nil
		}
		return fmt.Errorf("invalid wave_number %q", s)
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return fmt.Errorf("invalid wave_number %s", string(data))
	}
	*n = WaveNumber(i)
	return nil
}

func (n WaveNumber) MarshalJSON() ([]byte, error) {
	if n == BossWave {
		return json.Marshal(BossWaveLabel)
	}
	return json.Marshal(int(n))
}

// IsBoss reports whether n is the boss wave.
func (n WaveNumber) IsBoss() bool { return n == BossWave }

// Valid reports whether n is a normal wave or the boss wave.
func (n WaveNumber) Valid() bool {
	return (n >= 1 && n <= MaxNormalWave) || n == BossWave
}

// Request types

// WaveDraft is one wave as submitted, before normalization.
type WaveDraft struct {
	WaveNumber     *WaveNumber `json:"wave_number"`
	Tide           string      `json:"tide"`
	Event          *string     `json:"event"`
	DeliveredCount *int        `json:"delivered_count"`
	Quota          *int        `json:"quota,omitempty"`
	Cleared        *bool       `json:"cleared,omitempty"`
}

// SubmitScenarioRequest is the draft scenario accepted by the submission
// pipeline. Pointer fields distinguish "absent" from zero.
type SubmitScenarioRequest struct {
	ScenarioCode string      `json:"scenario_code"`
	StageName    string      `json:"stage_name"`
	StageID      *int64      `json:"stage_id,omitempty"`
	DangerRate   *int        `json:"danger_rate"`
	Weapons      []string    `json:"weapons"`
	WeaponIDs    []*int64    `json:"weapon_ids,omitempty"`
	Waves        []WaveDraft `json:"waves"`

	// AuthorID is taken from the X-Author-ID header, never the body.
	AuthorID *string `json:"-"`
}

// Response types

type SubmitScenarioResponse struct {
	ScenarioCode string `json:"scenario_code"`
	DeleteKey    string `json:"delete_key,omitempty"`
}

type ScenarioDetail struct {
	Scenario
	StageName string            `json:"stage_name"`
	Waves     []Wave            `json:"waves"`
	Weapons   []WeaponSlot      `json:"weapons"`
	Tags      []string          `json:"tags"`
	TagColors map[string]string `json:"tag_colors"`
}

type ListScenariosResponse struct {
	Scenarios []ScenarioDetail `json:"scenarios"`
	Count     int              `json:"count"`
}

type ListStagesResponse struct {
	Stages []Stage `json:"stages"`
}

type ListWeaponsResponse struct {
	Weapons []Weapon `json:"weapons"`
}

// Domain types

type Stage struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type Weapon struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Scenario is a row of the scenarios table.
type Scenario struct {
	Code            string    `json:"scenario_code"`
	StageID         int64     `json:"stage_id"`
	DangerRate      int       `json:"danger_rate"`
	TotalGoldenEggs int       `json:"total_golden_eggs"`
	AuthorID        *string   `json:"author_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Wave is a row of the scenario_waves table.
type Wave struct {
	ScenarioCode   string     `json:"-"`
	WaveNumber     WaveNumber `json:"wave_number"`
	Tide           string     `json:"tide"`
	Event          *string    `json:"event"`
	DeliveredCount int        `json:"delivered_count"`
	Quota          int        `json:"quota"`
	Cleared        bool       `json:"cleared"`
}

// WeaponAssignment is a row of the scenario_weapons table.
type WeaponAssignment struct {
	ScenarioCode string `json:"-"`
	WeaponID     int64  `json:"weapon_id"`
	DisplayOrder int    `json:"display_order"`
}

// WeaponSlot is a weapon assignment joined with its weapon name.
type WeaponSlot struct {
	WeaponID     int64  `json:"weapon_id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

// Error response

type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Fields  []string            `json:"fields,omitempty"`
	Hints   map[string][]string `json:"hints,omitempty"`
}

// IsValidTide reports whether tide is one of the three tide values.
func IsValidTide(tide string) bool {
	switch tide {
	case TideLow, TideNormal, TideHigh:
		return true
	}
	return false
}
