// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation, master data seeding and
per-table scenario storage.

# Connections

Open accepts DialectPostgres (lib/pq) or DialectSQLite (modernc.org/sqlite).
SQLite connections have foreign keys enabled.

	conn, err := db.Open(ctx, db.DialectSQLite, "scenarios.db")

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - stages, weapons: master data, seeded from YAML via SeedMasterData
  - scenarios: one header row per scenario code
  - scenario_waves: one row per wave, keyed by (scenario_code, wave_number)
  - scenario_weapons: one row per distinct weapon, with display_order

# Relationships

	stages 1──* scenarios
	scenarios 1──* scenario_waves
	scenarios 1──* scenario_weapons *──1 weapons

Child rows cascade when their scenario is deleted. The store still offers
per-table deletes so callers can remove children first and undo partial
writes.

# Store

Store methods each touch a single table. Queries are written with ?
placeholders and rebound to $N for postgres. Insert failures caused by a
primary key or unique constraint wrap ErrUniqueViolation.
*/
package db
