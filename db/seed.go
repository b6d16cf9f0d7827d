// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/scenario-share/models"
)

// MasterData is the content of a master-data seed file.
type MasterData struct {
	Stages  []models.Stage  `yaml:"stages"`
	Weapons []models.Weapon `yaml:"weapons"`
}

// LoadMasterData reads a YAML seed file.
func LoadMasterData(path string) (MasterData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MasterData{}, fmt.Errorf("failed to read master data: %w", err)
	}

	var md MasterData
	if err := yaml.Unmarshal(data, &md); err != nil {
		return MasterData{}, fmt.Errorf("failed to parse master data: %w", err)
	}

	for _, s := range md.Stages {
		if s.ID <= 0 || s.Name == "" {
			return MasterData{}, fmt.Errorf("invalid stage entry %+v", s)
		}
	}
	for _, w := range md.Weapons {
		if w.ID <= 0 || w.Name == "" {
			return MasterData{}, fmt.Errorf("invalid weapon entry %+v", w)
		}
	}

	return md, nil
}

// SeedMasterData upserts stages and weapons by id.
func SeedMasterData(ctx context.Context, db *sql.DB, dialect string, md MasterData) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, s := range md.Stages {
		_, err := tx.ExecContext(ctx, rebind(dialect, `
			INSERT INTO stages (id, name) VALUES (?, ?)
			ON CONFLICT (id) DO UPDATE SET name = excluded.name
		`), s.ID, s.Name)
		if err != nil {
			return fmt.Errorf("failed to seed stage %q: %w", s.Name, err)
		}
	}

	for _, w := range md.Weapons {
		_, err := tx.ExecContext(ctx, rebind(dialect, `
			INSERT INTO weapons (id, name) VALUES (?, ?)
			ON CONFLICT (id) DO UPDATE SET name = excluded.name
		`), w.ID, w.Name)
		if err != nil {
			return fmt.Errorf("failed to seed weapon %q: %w", w.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}
