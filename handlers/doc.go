// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the scenario-share API.

# Handler Types

Each handler is a struct built from the database and config:

  - ScenarioHandler: submit, list, fetch and delete scenarios
  - MasterDataHandler: stage and weapon lists

	scenarioHandler := handlers.NewScenarioHandler(db, cfg)

# Submission

	POST /scenarios → SubmitScenario (returns delete_key)

The draft goes through the submission pipeline. Its error kinds map to
400 (validation, with fields and name hints), 409 (scenario code taken)
and 500 (storage). An optional X-Author-ID header carries the author's
UUID.

# Browsing

	GET /scenarios        → ListScenarios
	GET /scenarios/{code} → GetScenario

Listing narrows by stage and danger rate in SQL, then matches weapons
(all required) and tags (any required) on the loaded scenarios. Stage
and weapon names in the query are resolved like submissions are.
Every returned scenario carries its computed tags and their colors.

# Deletion

	DELETE /scenarios/{code} → DeleteScenario

Requires the X-Delete-Key header returned at submission.
*/
package handlers
