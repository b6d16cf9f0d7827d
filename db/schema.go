// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types. Each is also the database/sql driver name.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, dialect, url string) (*sql.DB, error) {
	switch dialect {
	case DialectPostgres:
	case DialectSQLite:
		if !strings.Contains(url, "_pragma=foreign_keys") {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			url += sep + "_pragma=foreign_keys(1)"
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", dialect)
	}

	conn, err := sql.Open(dialect, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Master data
CREATE TABLE IF NOT EXISTS stages (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS weapons (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

-- Scenarios
CREATE TABLE IF NOT EXISTS scenarios (
    code TEXT PRIMARY KEY,
    stage_id INTEGER NOT NULL REFERENCES stages(id),
    danger_rate INTEGER NOT NULL CHECK (danger_rate >= 0 AND danger_rate <= 333),
    total_golden_eggs INTEGER NOT NULL DEFAULT 0 CHECK (total_golden_eggs >= 0),
    author_id TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_scenarios_stage_id ON scenarios(stage_id);
CREATE INDEX IF NOT EXISTS idx_scenarios_created_at ON scenarios(created_at);

-- Waves
CREATE TABLE IF NOT EXISTS scenario_waves (
    scenario_code TEXT NOT NULL REFERENCES scenarios(code) ON DELETE CASCADE,
    wave_number INTEGER NOT NULL CHECK (wave_number >= 1 AND wave_number <= 4),
    tide TEXT NOT NULL CHECK (tide IN ('low', 'normal', 'high')),
    event TEXT,
    delivered_count INTEGER NOT NULL CHECK (delivered_count >= 0),
    quota INTEGER NOT NULL CHECK (quota > 0),
    cleared BOOLEAN NOT NULL DEFAULT FALSE,
    PRIMARY KEY (scenario_code, wave_number)
);

-- Weapon assignments
CREATE TABLE IF NOT EXISTS scenario_weapons (
    scenario_code TEXT NOT NULL REFERENCES scenarios(code) ON DELETE CASCADE,
    weapon_id INTEGER NOT NULL REFERENCES weapons(id),
    display_order INTEGER NOT NULL CHECK (display_order > 0),
    PRIMARY KEY (scenario_code, weapon_id)
);

CREATE INDEX IF NOT EXISTS idx_scenario_weapons_weapon_id ON scenario_weapons(weapon_id);
`
