// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tags

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/scenario-share/models"
)

func strPtr(s string) *string { return &s }

func wave(n models.WaveNumber, event *string, delivered int, cleared bool) models.Wave {
	return models.Wave{
		WaveNumber:     n,
		Tide:           models.TideNormal,
		Event:          event,
		DeliveredCount: delivered,
		Quota:          max(delivered, 1),
		Cleared:        cleared,
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		snapshot Snapshot
		expected []string
	}{
		{
			name: "easy day run",
			snapshot: Snapshot{
				DangerRate:      100,
				TotalGoldenEggs: 90,
				Waves: []models.Wave{
					wave(1, nil, 30, true),
					wave(2, nil, 30, true),
					wave(3, nil, 30, true),
				},
			},
			expected: []string{BeginnerFriendly, DayOnly},
		},
		{
			name: "max danger wiped on wave 3 with one night",
			snapshot: Snapshot{
				DangerRate:      333,
				TotalGoldenEggs: 150,
				Waves: []models.Wave{
					wave(1, nil, 50, true),
					wave(2, strPtr("Fog"), 60, true),
					wave(3, nil, 40, false),
				},
			},
			expected: []string{HighDifficulty, Night1},
		},
		{
			name: "all normal waves failed",
			snapshot: Snapshot{
				DangerRate: 200,
				Waves: []models.Wave{
					wave(1, strPtr("Rush"), 10, false),
				},
			},
			expected: []string{Uncleared, Night1},
		},
		{
			name: "farming with boss wave and two nights",
			snapshot: Snapshot{
				DangerRate:      250,
				TotalGoldenEggs: 201,
				Waves: []models.Wave{
					wave(1, strPtr("Grillers"), 70, true),
					wave(2, nil, 61, true),
					wave(3, strPtr("Mothership"), 70, true),
					wave(models.BossWave, strPtr("Boss Cohozuna"), 0, true),
				},
			},
			expected: []string{FarmingFriendly, Night2, HasBossWave},
		},
		{
			name: "exactly 200 eggs is not farming",
			snapshot: Snapshot{
				DangerRate:      200,
				TotalGoldenEggs: 200,
				Waves: []models.Wave{
					wave(1, nil, 100, true),
					wave(2, nil, 100, true),
				},
			},
			expected: []string{DayOnly},
		},
		{
			name: "three nights",
			snapshot: Snapshot{
				DangerRate: 180,
				Waves: []models.Wave{
					wave(1, strPtr("Fog"), 40, true),
					wave(2, strPtr("Cohock Charge"), 40, true),
					wave(3, strPtr("Goldie Seeking"), 40, true),
				},
			},
			expected: []string{NightOnly},
		},
		{
			name: "boss label on a normal wave is not a night",
			snapshot: Snapshot{
				DangerRate: 180,
				Waves: []models.Wave{
					wave(1, strPtr("BOSS appears"), 40, true),
					wave(2, strPtr("  "), 40, true),
				},
			},
			expected: []string{DayOnly},
		},
		{
			name: "boss wave only is day-only",
			snapshot: Snapshot{
				DangerRate: 333,
				Waves: []models.Wave{
					wave(models.BossWave, nil, 0, false),
				},
			},
			expected: []string{DayOnly, HasBossWave},
		},
		{
			name:     "no waves",
			snapshot: Snapshot{DangerRate: 0},
			expected: []string{BeginnerFriendly, DayOnly},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute(tt.snapshot)

			if diff := cmp.Diff(tt.expected, res.Tags); diff != "" {
				t.Errorf("tags mismatch (-want +got):\n%s", diff)
			}
			if len(res.Colors) != len(res.Tags) {
				t.Errorf("Expected %d colors, got %d", len(res.Tags), len(res.Colors))
			}
			for _, tag := range res.Tags {
				want, _ := Color(tag)
				if res.Colors[tag] != want {
					t.Errorf("Expected color %q for %s, got %q", want, tag, res.Colors[tag])
				}
			}
		})
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	s := Snapshot{
		DangerRate:      333,
		TotalGoldenEggs: 240,
		Waves: []models.Wave{
			wave(1, strPtr("Fog"), 80, true),
			wave(2, nil, 80, true),
			wave(3, nil, 80, false),
			wave(models.BossWave, nil, 0, false),
		},
	}

	first := Compute(s)
	second := Compute(s)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Compute is not deterministic (-first +second):\n%s", diff)
	}
}

func TestEventTagsAreMutuallyExclusive(t *testing.T) {
	events := []*string{nil, strPtr("Fog"), strPtr("Rush"), strPtr("boss rush")}

	// Every combination of events over three normal waves plus a boss wave.
	for _, a := range events {
		for _, b := range events {
			for _, c := range events {
				res := Compute(Snapshot{
					DangerRate: 200,
					Waves: []models.Wave{
						wave(1, a, 30, true),
						wave(2, b, 30, true),
						wave(3, c, 30, true),
						wave(models.BossWave, strPtr("Night"), 0, true),
					},
				})

				count := 0
				for _, tag := range []string{DayOnly, Night1, Night2, NightOnly} {
					if res.Has(tag) {
						count++
					}
				}
				if count != 1 {
					t.Fatalf("Expected exactly one event tag, got %v", res.Tags)
				}
			}
		}
	}
}
