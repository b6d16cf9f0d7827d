// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/danielhkuo/scenario-share/models"
)

// ErrUniqueViolation is wrapped by insert errors caused by a primary key or
// unique constraint.
var ErrUniqueViolation = errors.New("unique constraint violated")

// Store exposes per-table operations on scenarios, waves and weapon
// assignments. No operation spans more than one table.
type Store struct {
	db      *sql.DB
	dialect string
}

func NewStore(db *sql.DB, dialect string) *Store {
	return &Store{db: db, dialect: dialect}
}

// ScenarioQuery narrows ListScenarios. Nil fields are ignored.
type ScenarioQuery struct {
	StageID       *int64
	MinDangerRate *int
}

// InsertScenario writes one scenario header.
func (s *Store) InsertScenario(ctx context.Context, sc models.Scenario) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO scenarios (code, stage_id, danger_rate, total_golden_eggs, author_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), sc.Code, sc.StageID, sc.DangerRate, sc.TotalGoldenEggs, sc.AuthorID, sc.CreatedAt)
	if err != nil {
		return wrapInsert("scenarios", err)
	}
	return nil
}

// SelectScenario returns the scenario with code, or nil if there is none.
func (s *Store) SelectScenario(ctx context.Context, code string) (*models.Scenario, error) {
	var sc models.Scenario
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT code, stage_id, danger_rate, total_golden_eggs, author_id, created_at
		FROM scenarios
		WHERE code = ?
	`), code).Scan(&sc.Code, &sc.StageID, &sc.DangerRate, &sc.TotalGoldenEggs, &sc.AuthorID, &sc.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query scenario: %w", err)
	}
	return &sc, nil
}

// ListScenarios returns scenarios newest first.
func (s *Store) ListScenarios(ctx context.Context, query ScenarioQuery) ([]models.Scenario, error) {
	var where []string
	var args []any
	if query.StageID != nil {
		where = append(where, "stage_id = ?")
		args = append(args, *query.StageID)
	}
	if query.MinDangerRate != nil {
		where = append(where, "danger_rate >= ?")
		args = append(args, *query.MinDangerRate)
	}

	stmt := `
		SELECT code, stage_id, danger_rate, total_golden_eggs, author_id, created_at
		FROM scenarios`
	if len(where) > 0 {
		stmt += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	stmt += "\n\t\tORDER BY created_at DESC, code"

	rows, err := s.db.QueryContext(ctx, s.q(stmt), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	scenarios := []models.Scenario{}
	for rows.Next() {
		var sc models.Scenario
		if err := rows.Scan(&sc.Code, &sc.StageID, &sc.DangerRate, &sc.TotalGoldenEggs, &sc.AuthorID, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scenarios: %w", err)
	}
	return scenarios, nil
}

// DeleteScenario removes a scenario header.
func (s *Store) DeleteScenario(ctx context.Context, code string) error {
	if _, err := s.db.ExecContext(ctx, s.q(`DELETE FROM scenarios WHERE code = ?`), code); err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	return nil
}

// InsertWaves writes all waves in a single statement.
func (s *Store) InsertWaves(ctx context.Context, waves []models.Wave) error {
	if len(waves) == 0 {
		return nil
	}

	values := make([]string, 0, len(waves))
	args := make([]any, 0, len(waves)*7)
	for _, w := range waves {
		values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, w.ScenarioCode, int(w.WaveNumber), w.Tide, w.Event, w.DeliveredCount, w.Quota, w.Cleared)
	}

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO scenario_waves (scenario_code, wave_number, tide, event, delivered_count, quota, cleared)
		VALUES `+strings.Join(values, ", ")), args...)
	if err != nil {
		return wrapInsert("scenario_waves", err)
	}
	return nil
}

// SelectWaves returns the waves of each code ordered by wave number.
func (s *Store) SelectWaves(ctx context.Context, codes []string) (map[string][]models.Wave, error) {
	result := make(map[string][]models.Wave, len(codes))
	if len(codes) == 0 {
		return result, nil
	}

	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT scenario_code, wave_number, tide, event, delivered_count, quota, cleared
		FROM scenario_waves
		WHERE scenario_code IN (`+placeholders(len(codes))+`)
		ORDER BY scenario_code, wave_number
	`), stringArgs(codes)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query waves: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var w models.Wave
		var number int
		if err := rows.Scan(&w.ScenarioCode, &number, &w.Tide, &w.Event, &w.DeliveredCount, &w.Quota, &w.Cleared); err != nil {
			return nil, fmt.Errorf("failed to scan wave: %w", err)
		}
		w.WaveNumber = models.WaveNumber(number)
		result[w.ScenarioCode] = append(result[w.ScenarioCode], w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read waves: %w", err)
	}
	return result, nil
}

// DeleteWaves removes every wave of a scenario.
func (s *Store) DeleteWaves(ctx context.Context, code string) error {
	if _, err := s.db.ExecContext(ctx, s.q(`DELETE FROM scenario_waves WHERE scenario_code = ?`), code); err != nil {
		return fmt.Errorf("failed to delete waves: %w", err)
	}
	return nil
}

// InsertWeapons writes all weapon assignments in a single statement.
func (s *Store) InsertWeapons(ctx context.Context, weapons []models.WeaponAssignment) error {
	if len(weapons) == 0 {
		return nil
	}

	values := make([]string, 0, len(weapons))
	args := make([]any, 0, len(weapons)*3)
	for _, w := range weapons {
		values = append(values, "(?, ?, ?)")
		args = append(args, w.ScenarioCode, w.WeaponID, w.DisplayOrder)
	}

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO scenario_weapons (scenario_code, weapon_id, display_order)
		VALUES `+strings.Join(values, ", ")), args...)
	if err != nil {
		return wrapInsert("scenario_weapons", err)
	}
	return nil
}

// SelectWeapons returns the loadout of each code ordered by display order.
func (s *Store) SelectWeapons(ctx context.Context, codes []string) (map[string][]models.WeaponSlot, error) {
	result := make(map[string][]models.WeaponSlot, len(codes))
	if len(codes) == 0 {
		return result, nil
	}

	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT sw.scenario_code, sw.weapon_id, w.name, sw.display_order
		FROM scenario_weapons sw
		JOIN weapons w ON w.id = sw.weapon_id
		WHERE sw.scenario_code IN (`+placeholders(len(codes))+`)
		ORDER BY sw.scenario_code, sw.display_order
	`), stringArgs(codes)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query weapons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		var slot models.WeaponSlot
		if err := rows.Scan(&code, &slot.WeaponID, &slot.Name, &slot.DisplayOrder); err != nil {
			return nil, fmt.Errorf("failed to scan weapon: %w", err)
		}
		result[code] = append(result[code], slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read weapons: %w", err)
	}
	return result, nil
}

// DeleteWeapons removes every weapon assignment of a scenario.
func (s *Store) DeleteWeapons(ctx context.Context, code string) error {
	if _, err := s.db.ExecContext(ctx, s.q(`DELETE FROM scenario_weapons WHERE scenario_code = ?`), code); err != nil {
		return fmt.Errorf("failed to delete weapons: %w", err)
	}
	return nil
}

// StageName returns the name of a stage, or "" if it does not exist.
func (s *Store) StageName(ctx context.Context, id int64) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, s.q(`SELECT name FROM stages WHERE id = ?`), id).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query stage: %w", err)
	}
	return name, nil
}

func (s *Store) q(query string) string {
	return rebind(s.dialect, query)
}

// rebind rewrites ? placeholders to $N for postgres.
func rebind(dialect, query string) string {
	if dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func stringArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

func wrapInsert(table string, err error) error {
	if IsUniqueViolation(err) {
		return fmt.Errorf("failed to insert %s: %w: %w", table, ErrUniqueViolation, err)
	}
	return fmt.Errorf("failed to insert %s: %w", table, err)
}

// IsUniqueViolation reports whether err comes from a primary key or unique
// constraint on either supported database.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUniqueViolation) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}

	message := err.Error()
	return strings.Contains(message, "UNIQUE constraint failed") ||
		strings.Contains(message, "duplicate key value violates unique constraint")
}
