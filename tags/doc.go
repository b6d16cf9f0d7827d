// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tags derives descriptive labels from a scenario's persisted data.

Tags are never stored. They are computed on demand from the danger rate,
the golden egg total and the waves:

	res := tags.Compute(tags.Snapshot{
		DangerRate:      scenario.DangerRate,
		TotalGoldenEggs: scenario.TotalGoldenEggs,
		Waves:           waves,
	})

# Rules

  - beginner-friendly: danger rate below 160
  - uncleared: every normal wave (1-3) failed, and there is at least one
  - high-difficulty: danger rate 333 with at least one failed normal wave
  - farming-friendly: more than 200 golden eggs
  - day-only / night-1 / night-2 / night-only: 0, 1, 2 or 3 night events
    on normal waves, ignoring labels containing "boss"
  - has-boss-wave: a boss wave was played

Exactly one of the event-count tags is emitted for scenarios with at most
three normal waves. A scenario without normal waves counts zero events and
is tagged day-only.

Each tag has a fixed CSS color class, returned in Result.Colors for the
emitted tags only.
*/
package tags
