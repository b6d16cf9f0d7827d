// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the scenario-share API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Scenarios:

	POST   /scenarios        - Submit a scenario (returns delete_key)
	GET    /scenarios        - List and filter scenarios
	GET    /scenarios/{code} - One scenario with waves, weapons and tags
	DELETE /scenarios/{code} - Remove a scenario (requires X-Delete-Key)

Master data:

	GET /stages  - All stages
	GET /weapons - All weapons

All handlers receive the database connection and configuration.
*/
package router
