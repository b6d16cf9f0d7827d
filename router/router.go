// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/scenario-share/cliparse"
	"github.com/danielhkuo/scenario-share/handlers"
	"github.com/danielhkuo/scenario-share/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	scenarioHandler := handlers.NewScenarioHandler(db, cfg)
	masterDataHandler := handlers.NewMasterDataHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Scenarios
	mux.HandleFunc("POST /scenarios", middleware.WithLogging(scenarioHandler.SubmitScenario))
	mux.HandleFunc("GET /scenarios", middleware.WithLogging(scenarioHandler.ListScenarios))
	mux.HandleFunc("GET /scenarios/{code}", middleware.WithLogging(scenarioHandler.GetScenario))
	mux.HandleFunc("DELETE /scenarios/{code}", middleware.WithLogging(scenarioHandler.DeleteScenario))

	// Master data (read-only)
	mux.HandleFunc("GET /stages", middleware.WithLogging(masterDataHandler.ListStages))
	mux.HandleFunc("GET /weapons", middleware.WithLogging(masterDataHandler.ListWeapons))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("scenario-share API v1"))
	})

	return mux
}
