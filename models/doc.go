// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - SubmitScenarioRequest: the scenario draft (code, stage, danger rate,
    weapons, waves)
  - WaveDraft: one wave before normalization

# Response Types

  - SubmitScenarioResponse: scenario_code, delete_key
  - ScenarioDetail: scenario with waves, weapons and derived tags
  - ListScenariosResponse, ListStagesResponse, ListWeaponsResponse
  - ErrorResponse: error, message, fields, hints

# Domain Types

Rows of each table:

  - Scenario: scenarios
  - Wave: scenario_waves
  - WeaponAssignment: scenario_weapons
  - Stage, Weapon: master data

# Wave Numbers

Normal waves are numbered 1-3. The boss wave is stored as 4 and sent by
clients as "boss":

	BossWave      = 4
	BossWaveLabel = "boss"

Tides:

	TideLow    = "low"
	TideNormal = "normal"
	TideHigh   = "high"
*/
package models
