// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/scenario-share/auth"
	"github.com/danielhkuo/scenario-share/cliparse"
	"github.com/danielhkuo/scenario-share/db"
	"github.com/danielhkuo/scenario-share/filter"
	"github.com/danielhkuo/scenario-share/masterdata"
	"github.com/danielhkuo/scenario-share/middleware"
	"github.com/danielhkuo/scenario-share/models"
	"github.com/danielhkuo/scenario-share/submission"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type ScenarioHandler struct {
	cfg      cliparse.Config
	store    *db.Store
	catalog  *masterdata.Catalog
	pipeline *submission.Pipeline
}

func NewScenarioHandler(conn *sql.DB, cfg cliparse.Config) *ScenarioHandler {
	store := db.NewStore(conn, cfg.DatabaseType)
	catalog := masterdata.NewCatalog(conn)
	return &ScenarioHandler{
		cfg:      cfg,
		store:    store,
		catalog:  catalog,
		pipeline: submission.New(store, catalog, slog.Default()),
	}
}

// SubmitScenario handles POST /scenarios
func (h *ScenarioHandler) SubmitScenario(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitScenarioRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	authorID, err := auth.ParseAuthorID(r.Header.Get("X-Author-ID"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Author-ID must be a UUID")
		return
	}
	req.AuthorID = authorID

	resp, err := h.pipeline.Submit(r.Context(), req)
	if err != nil {
		writeSubmitError(w, err)
		return
	}

	resp.DeleteKey = auth.GenerateDeleteKey(resp.ScenarioCode, h.cfg.DeleteKeySalt)
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

func writeSubmitError(w http.ResponseWriter, err error) {
	var serr *submission.Error
	if !errors.As(err, &serr) {
		slog.Error("unexpected submission error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	switch {
	case errors.Is(serr, submission.ErrValidation):
		middleware.FieldErrorResponse(w, http.StatusBadRequest, serr.Message, serr.Fields, serr.Hints)
	case errors.Is(serr, submission.ErrConflict):
		middleware.FieldErrorResponse(w, http.StatusConflict,
			fmt.Sprintf("scenario %s already exists", serr.Message), serr.Fields, nil)
	default:
		// Storage details stay in the log.
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// ListScenarios handles GET /scenarios
// Stage and danger rate narrow the query; weapons and tags are matched on
// the loaded scenarios.
func (h *ScenarioHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria, err := filter.ParseCriteria(q)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	limit, err := parseLimit(q.Get("limit"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	if name := strings.TrimSpace(q.Get("stage")); name != "" && criteria.StageID == nil {
		id, err := h.catalog.ResolveStage(ctx, name)
		if err != nil {
			slog.Error("failed to resolve stage", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if id == nil {
			hints, _ := h.catalog.SuggestStages(ctx, name)
			middleware.FieldErrorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("unknown stage %q", name), []string{"stage"}, hintsFor(name, hints))
			return
		}
		criteria.StageID = id
	}

	if names := filter.SplitList(q["weapons"]); len(names) > 0 {
		ids, ok := h.resolveWeaponFilter(ctx, w, names)
		if !ok {
			return
		}
		criteria.WeaponIDs = append(criteria.WeaponIDs, ids...)
	}

	scenarios, err := h.store.ListScenarios(ctx, db.ScenarioQuery{
		StageID:       criteria.StageID,
		MinDangerRate: criteria.MinDangerRate,
	})
	if err != nil {
		slog.Error("failed to list scenarios", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	candidates, slots, err := h.loadChildren(ctx, scenarios)
	if err != nil {
		slog.Error("failed to load scenario children", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	matched := filter.Match(candidates, criteria)
	if len(matched) > limit {
		matched = matched[:limit]
	}

	stageNames, err := h.stageNames(ctx)
	if err != nil {
		slog.Error("failed to list stages", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	details := make([]models.ScenarioDetail, 0, len(matched))
	for _, c := range matched {
		details = append(details, buildDetail(c, stageNames[c.Scenario.StageID], slots[c.Scenario.Code]))
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListScenariosResponse{
		Scenarios: details,
		Count:     len(details),
	})
}

func (h *ScenarioHandler) resolveWeaponFilter(ctx context.Context, w http.ResponseWriter, names []string) ([]int64, bool) {
	resolved, err := h.catalog.ResolveWeapons(ctx, names)
	if err != nil {
		slog.Error("failed to resolve weapons", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}

	var ids []int64
	var unknown []string
	hints := map[string][]string{}
	for i, id := range resolved {
		if id != nil {
			ids = append(ids, *id)
			continue
		}
		unknown = append(unknown, names[i])
		if s, err := h.catalog.SuggestWeapons(ctx, names[i]); err == nil && len(s) > 0 {
			hints[names[i]] = s
		}
	}
	if len(unknown) > 0 {
		middleware.FieldErrorResponse(w, http.StatusBadRequest,
			"unknown weapons: "+strings.Join(unknown, ", "), unknown, hints)
		return nil, false
	}
	return ids, true
}

// loadChildren reads the waves and weapon slots of every scenario. The two
// tables are read concurrently.
func (h *ScenarioHandler) loadChildren(ctx context.Context, scenarios []models.Scenario) ([]filter.Candidate, map[string][]models.WeaponSlot, error) {
	codes := make([]string, len(scenarios))
	for i, sc := range scenarios {
		codes[i] = sc.Code
	}

	var waves map[string][]models.Wave
	var slots map[string][]models.WeaponSlot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		waves, err = h.store.SelectWaves(gctx, codes)
		return err
	})
	g.Go(func() error {
		var err error
		slots, err = h.store.SelectWeapons(gctx, codes)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	candidates := make([]filter.Candidate, len(scenarios))
	for i, sc := range scenarios {
		ids := make([]int64, len(slots[sc.Code]))
		for j, slot := range slots[sc.Code] {
			ids[j] = slot.WeaponID
		}
		candidates[i] = filter.Candidate{
			Scenario:  sc,
			Waves:     waves[sc.Code],
			WeaponIDs: ids,
		}
	}
	return candidates, slots, nil
}

func (h *ScenarioHandler) stageNames(ctx context.Context) (map[int64]string, error) {
	stages, err := h.catalog.Stages(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(stages))
	for _, s := range stages {
		names[s.ID] = s.Name
	}
	return names, nil
}

// GetScenario handles GET /scenarios/{code}
func (h *ScenarioHandler) GetScenario(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}
	ctx := r.Context()

	sc, err := h.store.SelectScenario(ctx, code)
	if err != nil {
		slog.Error("failed to query scenario", "code", code, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if sc == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Scenario not found")
		return
	}

	candidates, slots, err := h.loadChildren(ctx, []models.Scenario{*sc})
	if err != nil {
		slog.Error("failed to load scenario children", "code", code, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	stageName, err := h.store.StageName(ctx, sc.StageID)
	if err != nil {
		slog.Error("failed to query stage", "code", code, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, buildDetail(candidates[0], stageName, slots[code]))
}

// DeleteScenario handles DELETE /scenarios/{code}
// Requires X-Delete-Key header. Children are removed before the header row.
func (h *ScenarioHandler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	deleteKey := r.Header.Get("X-Delete-Key")
	if deleteKey == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Delete-Key header required")
		return
	}
	if err := auth.ValidateDeleteKey(code, deleteKey, h.cfg.DeleteKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid delete key")
		return
	}

	ctx := r.Context()
	sc, err := h.store.SelectScenario(ctx, code)
	if err != nil {
		slog.Error("failed to query scenario", "code", code, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if sc == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Scenario not found")
		return
	}

	steps := []func(context.Context, string) error{
		h.store.DeleteWeapons,
		h.store.DeleteWaves,
		h.store.DeleteScenario,
	}
	for _, step := range steps {
		if err := step(ctx, code); err != nil {
			slog.Error("failed to delete scenario", "code", code, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	slog.Info("scenario deleted", "code", code)
	w.WriteHeader(http.StatusNoContent)
}

func buildDetail(c filter.Candidate, stageName string, slots []models.WeaponSlot) models.ScenarioDetail {
	result := c.Tags()
	waves := c.Waves
	if waves == nil {
		waves = []models.Wave{}
	}
	if slots == nil {
		slots = []models.WeaponSlot{}
	}
	return models.ScenarioDetail{
		Scenario:  c.Scenario,
		StageName: stageName,
		Waves:     waves,
		Weapons:   slots,
		Tags:      result.Tags,
		TagColors: result.Colors,
	}
}

func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	if n > maxListLimit {
		n = maxListLimit
	}
	return n, nil
}

func hintsFor(name string, hints []string) map[string][]string {
	if len(hints) == 0 {
		return nil
	}
	return map[string][]string{name: hints}
}
