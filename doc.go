// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the scenario-share API server.

scenario-share stores player-submitted Salmon Run scenarios: a stage, a
four weapon loadout and the wave-by-wave outcome of a shift. Submissions
are resolved against master data, written table by table, and tagged so
they can be browsed and filtered.

# Starting the Server

Settings come from a .env file, the environment, or CLI flags (highest
precedence last):

	DELETE_KEY_SALT=... DATABASE_URL=scenarios.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -delete-salt secret -seed masterdata.yaml

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string or SQLite file
  - DELETE_KEY_SALT (-delete-salt): secret for delete key HMAC

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): postgres or sqlite (default: sqlite)
  - MASTERDATA_FILE (-seed): YAML file of stages and weapons to upsert at start

# Architecture

  - handlers: HTTP request handlers (scenarios, master data)
  - submission: draft validation and the compensating write pipeline
  - tags: tag derivation from persisted scenarios
  - filter: scenario filter criteria and matching
  - masterdata: stage and weapon name resolution and suggestions
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and row types
  - auth: delete keys and author ids
  - db: schema, seeding and the per-table store
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
