// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tags

import (
	"strings"

	"github.com/danielhkuo/scenario-share/models"
)

// Tag names
const (
	BeginnerFriendly = "beginner-friendly"
	Uncleared        = "uncleared"
	HighDifficulty   = "high-difficulty"
	FarmingFriendly  = "farming-friendly"
	DayOnly          = "day-only"
	Night1           = "night-1"
	Night2           = "night-2"
	NightOnly        = "night-only"
	HasBossWave      = "has-boss-wave"
)

const (
	beginnerDangerBelow = 160
	maxDangerRate       = models.MaxDangerRate
	farmingEggsAbove    = 200
)

// BossEventMarker marks event labels that belong to the boss wave. Such
// labels are not counted as night events.
const BossEventMarker = "boss"

// Order is the canonical order tags are emitted in.
var Order = []string{
	BeginnerFriendly,
	Uncleared,
	HighDifficulty,
	FarmingFriendly,
	DayOnly,
	Night1,
	Night2,
	NightOnly,
	HasBossWave,
}

var colors = map[string]string{
	BeginnerFriendly: "bg-green-100 text-green-800",
	Uncleared:        "bg-gray-100 text-gray-800",
	HighDifficulty:   "bg-red-100 text-red-800",
	FarmingFriendly:  "bg-yellow-100 text-yellow-800",
	DayOnly:          "bg-sky-100 text-sky-800",
	Night1:           "bg-indigo-100 text-indigo-800",
	Night2:           "bg-violet-100 text-violet-800",
	NightOnly:        "bg-purple-100 text-purple-800",
	HasBossWave:      "bg-orange-100 text-orange-800",
}

// eventCountTags maps the number of night events to its tag.
var eventCountTags = map[int]string{
	0: DayOnly,
	1: Night1,
	2: Night2,
	3: NightOnly,
}

// Snapshot is the persisted shape of a scenario that tags are derived from.
type Snapshot struct {
	DangerRate      int
	TotalGoldenEggs int
	Waves           []models.Wave
}

// Result holds the emitted tags and a color class for each of them.
type Result struct {
	Tags   []string          `json:"tags"`
	Colors map[string]string `json:"colors"`
}

// Has reports whether tag was emitted.
func (r Result) Has(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Color returns the color class of a known tag.
func Color(tag string) (string, bool) {
	c, ok := colors[tag]
	return c, ok
}

// Compute derives the tag set of a scenario. It has no side effects.
func Compute(s Snapshot) Result {
	emitted := make(map[string]bool, len(Order))

	if s.DangerRate < beginnerDangerBelow {
		emitted[BeginnerFriendly] = true
	}

	normal, anyUncleared, allUncleared, events, boss := 0, false, true, 0, false
	for _, w := range s.Waves {
		if w.WaveNumber.IsBoss() {
			boss = true
		}
		if w.WaveNumber > models.MaxNormalWave {
			continue
		}
		normal++
		if w.Cleared {
			allUncleared = false
		} else {
			anyUncleared = true
		}
		if isNightEvent(w.Event) {
			events++
		}
	}

	if normal > 0 && allUncleared {
		emitted[Uncleared] = true
	}
	if s.DangerRate == maxDangerRate && anyUncleared {
		emitted[HighDifficulty] = true
	}
	if s.TotalGoldenEggs > farmingEggsAbove {
		emitted[FarmingFriendly] = true
	}
	// With no normal waves the count is 0 and day-only is emitted.
	if tag, ok := eventCountTags[events]; ok {
		emitted[tag] = true
	}
	if boss {
		emitted[HasBossWave] = true
	}

	res := Result{Tags: []string{}, Colors: map[string]string{}}
	for _, tag := range Order {
		if emitted[tag] {
			res.Tags = append(res.Tags, tag)
			res.Colors[tag] = colors[tag]
		}
	}
	return res
}

func isNightEvent(event *string) bool {
	if event == nil {
		return false
	}
	label := strings.TrimSpace(*event)
	if label == "" {
		return false
	}
	return !strings.Contains(strings.ToLower(label), BossEventMarker)
}
