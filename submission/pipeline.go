// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/scenario-share/db"
	"github.com/danielhkuo/scenario-share/masterdata"
	"github.com/danielhkuo/scenario-share/models"
)

const maxCodeLength = 32

// Storage is the per-table store the pipeline writes through. It offers no
// transaction spanning tables.
type Storage interface {
	SelectScenario(ctx context.Context, code string) (*models.Scenario, error)
	InsertScenario(ctx context.Context, sc models.Scenario) error
	DeleteScenario(ctx context.Context, code string) error
	InsertWaves(ctx context.Context, waves []models.Wave) error
	DeleteWaves(ctx context.Context, code string) error
	InsertWeapons(ctx context.Context, weapons []models.WeaponAssignment) error
}

var _ Storage = (*db.Store)(nil)

// Pipeline turns scenario drafts into persisted scenarios.
type Pipeline struct {
	store  Storage
	lookup masterdata.Resolver
	logger *slog.Logger
	now    func() time.Time
}

// New creates a pipeline. A nil logger uses slog.Default().
func New(store Storage, lookup masterdata.Resolver, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{store: store, lookup: lookup, logger: logger, now: time.Now}
}

// Submit validates and persists a draft. The scenario header, its waves and
// its weapon assignments are written in that order; if a later write fails
// the earlier ones are deleted again in reverse order.
//
// Errors are always *Error with Kind ErrValidation, ErrConflict or
// ErrStorage.
func (p *Pipeline) Submit(ctx context.Context, draft models.SubmitScenarioRequest) (models.SubmitScenarioResponse, error) {
	if verr := validate(draft); verr != nil {
		return models.SubmitScenarioResponse{}, verr
	}
	code := strings.TrimSpace(draft.ScenarioCode)
	log := p.logger.With("code", code)

	// Advisory: the primary key decides races at insert time.
	existing, err := p.store.SelectScenario(ctx, code)
	if err != nil {
		return models.SubmitScenarioResponse{}, storageError("failed to check scenario code", err)
	}
	if existing != nil {
		log.Info("duplicate scenario code rejected")
		return models.SubmitScenarioResponse{}, conflictError(code, nil)
	}

	stageID, serr := p.resolveStage(ctx, draft)
	if serr != nil {
		return models.SubmitScenarioResponse{}, serr
	}

	weaponIDs, werr := p.resolveWeapons(ctx, draft)
	if werr != nil {
		return models.SubmitScenarioResponse{}, werr
	}

	waves, nerr := normalizeWaves(code, draft.Waves)
	if nerr != nil {
		return models.SubmitScenarioResponse{}, nerr
	}

	total := 0
	for _, w := range waves {
		total += w.DeliveredCount
	}

	header := models.Scenario{
		Code:            code,
		StageID:         stageID,
		DangerRate:      *draft.DangerRate,
		TotalGoldenEggs: total,
		AuthorID:        draft.AuthorID,
		CreatedAt:       p.now().UTC(),
	}
	if err := p.store.InsertScenario(ctx, header); err != nil {
		if db.IsUniqueViolation(err) {
			log.Info("duplicate scenario code rejected at insert")
			return models.SubmitScenarioResponse{}, conflictError(code, err)
		}
		log.Error("failed to insert scenario", "error", err)
		return models.SubmitScenarioResponse{}, storageError("failed to save scenario", err)
	}

	if err := p.store.InsertWaves(ctx, waves); err != nil {
		log.Error("failed to insert waves, rolling back", "error", err)
		p.compensate(ctx, log, code, tableScenarios)
		return models.SubmitScenarioResponse{}, storageError("failed to save waves", err)
	}

	assignments := dedupeWeapons(code, weaponIDs)
	if err := p.store.InsertWeapons(ctx, assignments); err != nil {
		log.Error("failed to insert weapons, rolling back", "error", err)
		p.compensate(ctx, log, code, tableWaves, tableScenarios)
		return models.SubmitScenarioResponse{}, storageError("failed to save weapons", err)
	}

	log.Info("scenario submitted",
		"stage_id", stageID,
		"danger_rate", header.DangerRate,
		"total_golden_eggs", total,
		"waves", len(waves),
		"weapons", len(assignments),
	)

	return models.SubmitScenarioResponse{ScenarioCode: code}, nil
}

const (
	tableScenarios = "scenarios"
	tableWaves     = "scenario_waves"
)

// compensate deletes already written rows, one table at a time in the order
// given. A failed delete leaves an orphan behind; it is logged and the
// remaining deletes still run.
func (p *Pipeline) compensate(ctx context.Context, log *slog.Logger, code string, tables ...string) {
	// The caller may have gone away; the rollback must still run.
	ctx = context.WithoutCancel(ctx)

	for _, table := range tables {
		var err error
		switch table {
		case tableWaves:
			err = p.store.DeleteWaves(ctx, code)
		case tableScenarios:
			err = p.store.DeleteScenario(ctx, code)
		}
		if err != nil {
			log.Error("compensating delete failed",
				"event", "inconsistent_state",
				"table", table,
				"error", err,
			)
			continue
		}
		log.Info("compensating delete done", "table", table)
	}
}

func (p *Pipeline) resolveStage(ctx context.Context, draft models.SubmitScenarioRequest) (int64, *Error) {
	if draft.StageID != nil {
		return *draft.StageID, nil
	}

	name := strings.TrimSpace(draft.StageName)
	id, err := p.lookup.ResolveStage(ctx, name)
	if err != nil {
		return 0, storageError("failed to resolve stage", err)
	}
	if id == nil {
		verr := validationError(fmt.Sprintf("unknown stage %q", name), "stage_name")
		if s, ok := p.lookup.(masterdata.Suggester); ok {
			if hints, err := s.SuggestStages(ctx, name); err == nil && len(hints) > 0 {
				verr.Hints = map[string][]string{name: hints}
			}
		}
		return 0, verr
	}
	return *id, nil
}

func (p *Pipeline) resolveWeapons(ctx context.Context, draft models.SubmitScenarioRequest) ([]int64, *Error) {
	if draft.WeaponIDs != nil {
		// Presence and length were checked by validate.
		ids := make([]int64, len(draft.WeaponIDs))
		for i, id := range draft.WeaponIDs {
			ids[i] = *id
		}
		return ids, nil
	}

	resolved, err := p.lookup.ResolveWeapons(ctx, draft.Weapons)
	if err != nil {
		return nil, storageError("failed to resolve weapons", err)
	}
	if len(resolved) != len(draft.Weapons) {
		return nil, storageError("failed to resolve weapons",
			fmt.Errorf("lookup returned %d ids for %d names", len(resolved), len(draft.Weapons)))
	}

	ids := make([]int64, len(resolved))
	var unresolved []string
	seen := map[string]bool{}
	for i, id := range resolved {
		if id == nil {
			name := draft.Weapons[i]
			if !seen[name] {
				seen[name] = true
				unresolved = append(unresolved, name)
			}
			continue
		}
		ids[i] = *id
	}

	if len(unresolved) > 0 {
		quoted := make([]string, len(unresolved))
		for i, name := range unresolved {
			quoted[i] = fmt.Sprintf("%q", name)
		}
		verr := validationError("unknown weapons: "+strings.Join(quoted, ", "), unresolved...)
		if s, ok := p.lookup.(masterdata.Suggester); ok {
			for _, name := range unresolved {
				hints, err := s.SuggestWeapons(ctx, name)
				if err != nil || len(hints) == 0 {
					continue
				}
				if verr.Hints == nil {
					verr.Hints = map[string][]string{}
				}
				verr.Hints[name] = hints
			}
		}
		return nil, verr
	}
	return ids, nil
}

// normalizeWaves applies the boss wave convention and quota and cleared
// defaults. The boss wave always stores 0 delivered and a quota of 1.
func normalizeWaves(code string, drafts []models.WaveDraft) ([]models.Wave, *Error) {
	waves := make([]models.Wave, 0, len(drafts))
	for i, d := range drafts {
		w := models.Wave{
			ScenarioCode: code,
			WaveNumber:   *d.WaveNumber,
			Tide:         d.Tide,
			Event:        normalizeEvent(d.Event),
		}
		if d.Cleared != nil {
			w.Cleared = *d.Cleared
		}

		if w.WaveNumber.IsBoss() {
			w.DeliveredCount = 0
			w.Quota = 1
		} else {
			w.DeliveredCount = *d.DeliveredCount
			w.Quota = w.DeliveredCount
			if d.Quota != nil {
				w.Quota = *d.Quota
			}
			if w.Quota < 1 {
				return nil, validationError("quota must be at least 1", fmt.Sprintf("waves[%d].quota", i))
			}
		}

		waves = append(waves, w)
	}
	return waves, nil
}

func normalizeEvent(event *string) *string {
	if event == nil {
		return nil
	}
	e := strings.TrimSpace(*event)
	if e == "" {
		return nil
	}
	return &e
}

// dedupeWeapons keeps the first occurrence of each weapon id, with its
// 1-based position in the submitted loadout as display order.
func dedupeWeapons(code string, ids []int64) []models.WeaponAssignment {
	seen := make(map[int64]bool, len(ids))
	assignments := make([]models.WeaponAssignment, 0, len(ids))
	for i, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		assignments = append(assignments, models.WeaponAssignment{
			ScenarioCode: code,
			WeaponID:     id,
			DisplayOrder: i + 1,
		})
	}
	return assignments
}
