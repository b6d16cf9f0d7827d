// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/scenario-share/auth"
	"github.com/danielhkuo/scenario-share/models"
	"github.com/danielhkuo/scenario-share/tags"
	"github.com/danielhkuo/scenario-share/testutil"
)

func submit(t *testing.T, h *ScenarioHandler, draft models.SubmitScenarioRequest) models.SubmitScenarioResponse {
	t.Helper()
	w := httptest.NewRecorder()
	h.SubmitScenario(w, testutil.MakeRequest("POST", "/scenarios", draft, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to submit %s: %d - %s", draft.ScenarioCode, w.Code, w.Body.String())
	}
	var resp models.SubmitScenarioResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

// seedScenarios submits three scenarios with distinct stages, loadouts and
// tag sets.
func seedScenarios(t *testing.T, h *ScenarioHandler) {
	t.Helper()

	submit(t, h, testutil.ValidDraft("AAA1"))

	b := testutil.ValidDraft("BBB2")
	b.StageName = "Marooner's Bay"
	b.DangerRate = testutil.IntPtr(100)
	b.Weapons = []string{"Splattershot", "Slosher", "Hydra Splatling", "Splattershot"}
	submit(t, h, b)

	c := testutil.ValidDraft("CCC3")
	c.StageName = "Sockeye Station"
	c.DangerRate = testutil.IntPtr(333)
	for i := range c.Waves {
		c.Waves[i].Cleared = testutil.BoolPtr(false)
		c.Waves[i].Event = nil
	}
	submit(t, h, c)
}

func listCodes(resp models.ListScenariosResponse) []string {
	codes := make([]string, 0, len(resp.Scenarios))
	for _, sc := range resp.Scenarios {
		codes = append(codes, sc.Code)
	}
	sort.Strings(codes)
	return codes
}

func TestSubmitScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewScenarioHandler(db, cfg)

	submit(t, handler, testutil.ValidDraft("TAKEN1"))

	missingDanger := testutil.ValidDraft("NEW2")
	missingDanger.DangerRate = nil

	misspelled := testutil.ValidDraft("NEW3")
	misspelled.Weapons = []string{"Splattershot", "Splat Rollr", "Splat Charger", "Slosher"}

	tests := []struct {
		name           string
		body           interface{}
		headers        map[string]string
		expectedStatus int
		checkResponse  func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:           "valid submission",
			body:           testutil.ValidDraft("NEW1"),
			headers:        map[string]string{"X-Author-ID": "8F14E45F-CEEA-467F-A0E6-1A4D2F3B9C10"},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp models.SubmitScenarioResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.ScenarioCode != "NEW1" {
					t.Errorf("Expected scenario_code 'NEW1', got '%s'", resp.ScenarioCode)
				}
				if err := auth.ValidateDeleteKey("NEW1", resp.DeleteKey, cfg.DeleteKeySalt); err != nil {
					t.Errorf("Expected a valid delete key, got '%s'", resp.DeleteKey)
				}

				var author sql.NullString
				if err := db.QueryRow(`SELECT author_id FROM scenarios WHERE code = ?`, "NEW1").Scan(&author); err != nil {
					t.Fatalf("Failed to read author: %v", err)
				}
				if author.String != "8f14e45f-ceea-467f-a0e6-1a4d2f3b9c10" {
					t.Errorf("Expected canonical author id, got '%s'", author.String)
				}
			},
		},
		{
			name:           "invalid JSON",
			body:           nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid author header",
			body:           testutil.ValidDraft("NEW4"),
			headers:        map[string]string{"X-Author-ID": "not-a-uuid"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing danger rate",
			body:           missingDanger,
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if diff := cmp.Diff([]string{"danger_rate"}, resp.Fields); diff != "" {
					t.Errorf("fields mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:           "unknown weapon with hints",
			body:           misspelled,
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if diff := cmp.Diff([]string{"Splat Rollr"}, resp.Fields); diff != "" {
					t.Errorf("fields mismatch (-want +got):\n%s", diff)
				}
				if diff := cmp.Diff([]string{"Splat Roller"}, resp.Hints["Splat Rollr"]); diff != "" {
					t.Errorf("hints mismatch (-want +got):\n%s", diff)
				}
				if n := testutil.CountRows(t, db, "scenarios", "NEW3"); n != 0 {
					t.Errorf("Expected no scenario row, got %d", n)
				}
			},
		},
		{
			name:           "duplicate code",
			body:           testutil.ValidDraft("TAKEN1"),
			expectedStatus: http.StatusConflict,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Message != "scenario TAKEN1 already exists" {
					t.Errorf("Unexpected message '%s'", resp.Message)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/scenarios", tt.body, tt.headers)
			w := httptest.NewRecorder()

			handler.SubmitScenario(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestListScenarios(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewScenarioHandler(db, testutil.GetTestConfig())
	seedScenarios(t, handler)

	tests := []struct {
		name     string
		query    url.Values
		expected []string
	}{
		{"no filters", url.Values{}, []string{"AAA1", "BBB2", "CCC3"}},
		{"stage id", url.Values{"stage_id": {"2"}}, []string{"BBB2"}},
		{"stage name", url.Values{"stage": {"sockeye  STATION"}}, []string{"CCC3"}},
		{"min danger rate", url.Values{"min_danger_rate": {"200"}}, []string{"AAA1", "CCC3"}},
		{"weapon names require all", url.Values{"weapons": {"Slosher,Hydra Splatling"}}, []string{"BBB2"}},
		{"weapon ids require all", url.Values{"weapon_ids": {"1", "2"}}, []string{"AAA1", "CCC3"}},
		{"tags match any", url.Values{"tags": {"beginner-friendly,uncleared"}}, []string{"BBB2", "CCC3"}},
		{"categories combine", url.Values{"tags": {"day-only"}, "min_danger_rate": {"300"}}, []string{"CCC3"}},
		{"nothing matches", url.Values{"stage_id": {"1"}, "tags": {"uncleared"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/scenarios?"+tt.query.Encode(), nil)
			w := httptest.NewRecorder()

			handler.ListScenarios(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			var resp models.ListScenariosResponse
			testutil.AssertJSON(t, w, &resp)
			if diff := cmp.Diff(tt.expected, listCodes(resp)); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
			if resp.Count != len(tt.expected) {
				t.Errorf("Expected count %d, got %d", len(tt.expected), resp.Count)
			}
		})
	}

	t.Run("limit", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/scenarios?limit=2", nil)
		w := httptest.NewRecorder()

		handler.ListScenarios(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.ListScenariosResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Count != 2 {
			t.Errorf("Expected 2 scenarios, got %d", resp.Count)
		}
	})

	t.Run("annotates tags and weapons", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/scenarios?stage_id=2", nil)
		w := httptest.NewRecorder()

		handler.ListScenarios(w, req)

		var resp models.ListScenariosResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Scenarios) != 1 {
			t.Fatalf("Expected 1 scenario, got %d", len(resp.Scenarios))
		}
		sc := resp.Scenarios[0]
		want := []string{tags.BeginnerFriendly, tags.Night1, tags.HasBossWave}
		if diff := cmp.Diff(want, sc.Tags); diff != "" {
			t.Errorf("tags mismatch (-want +got):\n%s", diff)
		}
		if sc.StageName != "Marooner's Bay" {
			t.Errorf("Expected stage 'Marooner's Bay', got '%s'", sc.StageName)
		}
		// The repeated Splattershot is stored once.
		if len(sc.Weapons) != 3 {
			t.Errorf("Expected 3 weapons, got %d", len(sc.Weapons))
		}
	})
}

func TestListScenariosRejectsBadQueries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewScenarioHandler(db, testutil.GetTestConfig())

	tests := []struct {
		name  string
		query url.Values
		field string
		hint  string
	}{
		{name: "malformed stage id", query: url.Values{"stage_id": {"abc"}}},
		{name: "malformed weapon ids", query: url.Values{"weapon_ids": {"1,x"}}},
		{name: "zero limit", query: url.Values{"limit": {"0"}}},
		{name: "unknown stage", query: url.Values{"stage": {"Spawning Grounts"}}, field: "stage", hint: "Spawning Grounds"},
		{name: "unknown weapon", query: url.Values{"weapons": {"Splat Rollr"}}, field: "Splat Rollr", hint: "Splat Roller"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/scenarios?"+tt.query.Encode(), nil)
			w := httptest.NewRecorder()

			handler.ListScenarios(w, req)

			testutil.AssertStatus(t, w, http.StatusBadRequest)
			if tt.field == "" {
				return
			}
			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if diff := cmp.Diff([]string{tt.field}, resp.Fields); diff != "" {
				t.Errorf("fields mismatch (-want +got):\n%s", diff)
			}
			found := false
			for _, hints := range resp.Hints {
				for _, h := range hints {
					if h == tt.hint {
						found = true
					}
				}
			}
			if !found {
				t.Errorf("Expected hint '%s', got %v", tt.hint, resp.Hints)
			}
		})
	}
}

func TestGetScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewScenarioHandler(db, testutil.GetTestConfig())
	submit(t, handler, testutil.ValidDraft("GET1"))

	t.Run("existing scenario", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/scenarios/GET1", nil)
		req.SetPathValue("code", "GET1")
		w := httptest.NewRecorder()

		handler.GetScenario(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.ScenarioDetail
		testutil.AssertJSON(t, w, &resp)

		if resp.StageName != "Spawning Grounds" {
			t.Errorf("Expected stage 'Spawning Grounds', got '%s'", resp.StageName)
		}
		if resp.TotalGoldenEggs != 120 {
			t.Errorf("Expected 120 golden eggs, got %d", resp.TotalGoldenEggs)
		}
		if len(resp.Waves) != 4 {
			t.Fatalf("Expected 4 waves, got %d", len(resp.Waves))
		}
		boss := resp.Waves[3]
		if !boss.WaveNumber.IsBoss() || boss.DeliveredCount != 0 || boss.Quota != 1 {
			t.Errorf("Unexpected boss wave %+v", boss)
		}
		wantWeapons := []string{"Splattershot", "Splat Roller", "Splat Charger", "Slosher"}
		var gotWeapons []string
		for _, slot := range resp.Weapons {
			gotWeapons = append(gotWeapons, slot.Name)
		}
		if diff := cmp.Diff(wantWeapons, gotWeapons); diff != "" {
			t.Errorf("weapons mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{tags.Night1, tags.HasBossWave}, resp.Tags); diff != "" {
			t.Errorf("tags mismatch (-want +got):\n%s", diff)
		}
		if resp.TagColors[tags.Night1] == "" {
			t.Error("Expected a color for night-1")
		}
	})

	t.Run("unknown scenario", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/scenarios/NOPE", nil)
		req.SetPathValue("code", "NOPE")
		w := httptest.NewRecorder()

		handler.GetScenario(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestDeleteScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewScenarioHandler(db, cfg)
	created := submit(t, handler, testutil.ValidDraft("DEL1"))

	tests := []struct {
		name           string
		code           string
		deleteKey      string
		expectedStatus int
	}{
		{"missing delete key", "DEL1", "", http.StatusUnauthorized},
		{"wrong delete key", "DEL1", "wrong-key", http.StatusUnauthorized},
		{"key for another scenario", "DEL1", auth.GenerateDeleteKey("OTHER", cfg.DeleteKeySalt), http.StatusUnauthorized},
		{"unknown scenario", "GONE", auth.GenerateDeleteKey("GONE", cfg.DeleteKeySalt), http.StatusNotFound},
		{"valid delete", "DEL1", created.DeleteKey, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.deleteKey != "" {
				headers["X-Delete-Key"] = tt.deleteKey
			}
			req := testutil.MakeRequest("DELETE", "/scenarios/"+tt.code, nil, headers)
			req.SetPathValue("code", tt.code)
			w := httptest.NewRecorder()

			handler.DeleteScenario(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	for _, table := range []string{"scenarios", "scenario_waves", "scenario_weapons"} {
		if n := testutil.CountRows(t, db, table, "DEL1"); n != 0 {
			t.Errorf("Expected no %s rows after delete, got %d", table, n)
		}
	}
}
