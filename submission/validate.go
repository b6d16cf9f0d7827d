// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/scenario-share/models"
)

// validate checks the draft's shape. It does no I/O.
func validate(d models.SubmitScenarioRequest) *Error {
	var missing []string
	code := strings.TrimSpace(d.ScenarioCode)
	if code == "" {
		missing = append(missing, "scenario_code")
	}
	if d.StageID == nil && strings.TrimSpace(d.StageName) == "" {
		missing = append(missing, "stage_name")
	}
	if d.DangerRate == nil {
		missing = append(missing, "danger_rate")
	}
	if len(d.Weapons) == 0 {
		missing = append(missing, "weapons")
	}
	if len(d.Waves) == 0 {
		missing = append(missing, "waves")
	}
	if len(missing) > 0 {
		return validationError("missing required fields: "+strings.Join(missing, ", "), missing...)
	}

	if !isValidCode(code) {
		return validationError(
			fmt.Sprintf("scenario_code must be 1-%d letters or digits", maxCodeLength),
			"scenario_code")
	}

	if d.StageID != nil && *d.StageID <= 0 {
		return validationError("stage_id must be positive", "stage_id")
	}

	if *d.DangerRate < models.MinDangerRate || *d.DangerRate > models.MaxDangerRate {
		return validationError(
			fmt.Sprintf("danger_rate must be between %d and %d", models.MinDangerRate, models.MaxDangerRate),
			"danger_rate")
	}

	if d.WeaponIDs != nil {
		if len(d.WeaponIDs) != len(d.Weapons) {
			return validationError(
				fmt.Sprintf("weapon_ids has %d entries but weapons has %d", len(d.WeaponIDs), len(d.Weapons)),
				"weapon_ids")
		}
		var bad []string
		for i, id := range d.WeaponIDs {
			if id == nil {
				bad = append(bad, fmt.Sprintf("weapon_ids[%d]", i))
			}
		}
		if len(bad) > 0 {
			return validationError("weapon_ids must contain only numbers", bad...)
		}
	}

	seen := map[models.WaveNumber]bool{}
	for i, w := range d.Waves {
		field := fmt.Sprintf("waves[%d]", i)

		if w.WaveNumber == nil {
			return validationError("wave_number is required", field+".wave_number")
		}
		if !w.WaveNumber.Valid() {
			return validationError("wave_number must be 1, 2, 3 or boss", field+".wave_number")
		}
		if seen[*w.WaveNumber] {
			return validationError("duplicate wave_number", field+".wave_number")
		}
		seen[*w.WaveNumber] = true

		if !models.IsValidTide(w.Tide) {
			return validationError("tide must be low, normal or high", field+".tide")
		}

		// The boss wave's delivered count is ignored.
		if w.WaveNumber.IsBoss() {
			continue
		}
		if w.DeliveredCount == nil {
			return validationError("delivered_count is required", field+".delivered_count")
		}
		if *w.DeliveredCount < 0 {
			return validationError("delivered_count must not be negative", field+".delivered_count")
		}
	}

	return nil
}

func isValidCode(code string) bool {
	if len(code) == 0 || len(code) > maxCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		default:
			return false
		}
	}
	return true
}
