// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/scenario-share/cliparse"
	"github.com/danielhkuo/scenario-share/masterdata"
	"github.com/danielhkuo/scenario-share/middleware"
	"github.com/danielhkuo/scenario-share/models"
)

type MasterDataHandler struct {
	catalog *masterdata.Catalog
	cfg     cliparse.Config
}

func NewMasterDataHandler(db *sql.DB, cfg cliparse.Config) *MasterDataHandler {
	return &MasterDataHandler{catalog: masterdata.NewCatalog(db), cfg: cfg}
}

// ListStages handles GET /stages
func (h *MasterDataHandler) ListStages(w http.ResponseWriter, r *http.Request) {
	stages, err := h.catalog.Stages(r.Context())
	if err != nil {
		slog.Error("failed to list stages", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ListStagesResponse{Stages: stages})
}

// ListWeapons handles GET /weapons
func (h *MasterDataHandler) ListWeapons(w http.ResponseWriter, r *http.Request) {
	weapons, err := h.catalog.Weapons(r.Context())
	if err != nil {
		slog.Error("failed to list weapons", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ListWeaponsResponse{Weapons: weapons})
}
