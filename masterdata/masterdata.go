// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package masterdata

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/unicode/norm"

	"github.com/danielhkuo/scenario-share/models"
)

const maxSuggestions = 3

// Resolver maps free-text names to master-data ids. A nil id means the name
// is unknown; errors are reserved for lookup failures.
type Resolver interface {
	ResolveStage(ctx context.Context, name string) (*int64, error)
	// ResolveWeapons returns one slot per name, in input order.
	ResolveWeapons(ctx context.Context, names []string) ([]*int64, error)
}

// Suggester proposes canonical names close to an unknown one.
type Suggester interface {
	SuggestStages(ctx context.Context, name string) ([]string, error)
	SuggestWeapons(ctx context.Context, name string) ([]string, error)
}

// Catalog resolves names against the stages and weapons tables.
type Catalog struct {
	db *sql.DB
}

var (
	_ Resolver  = (*Catalog)(nil)
	_ Suggester = (*Catalog)(nil)
)

func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// Stages lists all stages ordered by id.
func (c *Catalog) Stages(ctx context.Context) ([]models.Stage, error) {
	entries, err := c.load(ctx, "stages")
	if err != nil {
		return nil, err
	}
	stages := make([]models.Stage, 0, len(entries))
	for _, e := range entries {
		stages = append(stages, models.Stage{ID: e.id, Name: e.name})
	}
	return stages, nil
}

// Weapons lists all weapons ordered by id.
func (c *Catalog) Weapons(ctx context.Context) ([]models.Weapon, error) {
	entries, err := c.load(ctx, "weapons")
	if err != nil {
		return nil, err
	}
	weapons := make([]models.Weapon, 0, len(entries))
	for _, e := range entries {
		weapons = append(weapons, models.Weapon{ID: e.id, Name: e.name})
	}
	return weapons, nil
}

func (c *Catalog) ResolveStage(ctx context.Context, name string) (*int64, error) {
	entries, err := c.load(ctx, "stages")
	if err != nil {
		return nil, err
	}
	return index(entries)[Normalize(name)], nil
}

func (c *Catalog) ResolveWeapons(ctx context.Context, names []string) ([]*int64, error) {
	entries, err := c.load(ctx, "weapons")
	if err != nil {
		return nil, err
	}
	byName := index(entries)
	ids := make([]*int64, len(names))
	for i, name := range names {
		ids[i] = byName[Normalize(name)]
	}
	return ids, nil
}

func (c *Catalog) SuggestStages(ctx context.Context, name string) ([]string, error) {
	entries, err := c.load(ctx, "stages")
	if err != nil {
		return nil, err
	}
	return suggest(entries, name), nil
}

func (c *Catalog) SuggestWeapons(ctx context.Context, name string) ([]string, error) {
	entries, err := c.load(ctx, "weapons")
	if err != nil {
		return nil, err
	}
	return suggest(entries, name), nil
}

type entry struct {
	id   int64
	name string
}

// load reads a whole master table. Master tables are small and change only
// through administrative tooling, so every lookup sees the current rows.
func (c *Catalog) load(ctx context.Context, table string) ([]entry, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT id, name FROM "+table+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var entries []entry
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.id, &e.name); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	return entries, nil
}

func index(entries []entry) map[string]*int64 {
	byName := make(map[string]*int64, len(entries))
	for _, e := range entries {
		key := Normalize(e.name)
		if _, dup := byName[key]; dup {
			continue
		}
		id := e.id
		byName[key] = &id
	}
	return byName
}

// Normalize folds a name for matching: NFKC (full-width to half-width),
// lower case, and single spaces.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(norm.NFKC.String(name))), " ")
}

func suggest(entries []entry, name string) []string {
	target := Normalize(name)
	if target == "" {
		return nil
	}

	type scored struct {
		name string
		dist int
	}
	var cands []scored
	for _, e := range entries {
		key := Normalize(e.name)
		dist := levenshtein.ComputeDistance(target, key)
		if dist > levenshteinLimit(len([]rune(key))) {
			continue
		}
		cands = append(cands, scored{name: e.name, dist: dist})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].name < cands[j].name
		}
		return cands[i].dist < cands[j].dist
	})

	var out []string
	for _, c := range cands {
		out = append(out, c.name)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
