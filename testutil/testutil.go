// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/scenario-share/cliparse"
	"github.com/danielhkuo/scenario-share/db"
	"github.com/danielhkuo/scenario-share/models"
)

// Stage ids seeded by SetupTestDB
const (
	StageSpawningGrounds int64 = 1
	StageMaroonersBay    int64 = 2
	StageSockeyeStation  int64 = 3
)

// Weapon ids seeded by SetupTestDB
const (
	WeaponSplattershot int64 = 1
	WeaponSplatRoller  int64 = 2
	WeaponSplatCharger int64 = 3
	WeaponSlosher      int64 = 4
	WeaponHydraSplat   int64 = 5
)

// TestMasterData is the master data every test database starts with.
var TestMasterData = db.MasterData{
	Stages: []models.Stage{
		{ID: StageSpawningGrounds, Name: "Spawning Grounds"},
		{ID: StageMaroonersBay, Name: "Marooner's Bay"},
		{ID: StageSockeyeStation, Name: "Sockeye Station"},
	},
	Weapons: []models.Weapon{
		{ID: WeaponSplattershot, Name: "Splattershot"},
		{ID: WeaponSplatRoller, Name: "Splat Roller"},
		{ID: WeaponSplatCharger, Name: "Splat Charger"},
		{ID: WeaponSlosher, Name: "Slosher"},
		{ID: WeaponHydraSplat, Name: "Hydra Splatling"},
	},
}

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
// and seeded master data. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.DialectSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is its own database.
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if err := db.SeedMasterData(context.Background(), conn, db.DialectSQLite, TestMasterData); err != nil {
		t.Fatalf("Failed to seed master data: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  db.DialectSQLite,
		DeleteKeySalt: "test-delete-salt",
	}
}

func IntPtr(v int) *int       { return &v }
func Int64Ptr(v int64) *int64 { return &v }
func BoolPtr(v bool) *bool    { return &v }
func StrPtr(v string) *string { return &v }

func WaveNumberPtr(n models.WaveNumber) *models.WaveNumber { return &n }

// ValidDraft returns a draft that submits cleanly against the seeded master
// data: three cleared waves of 40 eggs and a boss wave.
func ValidDraft(code string) models.SubmitScenarioRequest {
	return models.SubmitScenarioRequest{
		ScenarioCode: code,
		StageName:    "Spawning Grounds",
		DangerRate:   IntPtr(200),
		Weapons:      []string{"Splattershot", "Splat Roller", "Splat Charger", "Slosher"},
		Waves: []models.WaveDraft{
			{WaveNumber: WaveNumberPtr(1), Tide: models.TideNormal, DeliveredCount: IntPtr(40), Quota: IntPtr(30), Cleared: BoolPtr(true)},
			{WaveNumber: WaveNumberPtr(2), Tide: models.TideHigh, Event: StrPtr("Fog"), DeliveredCount: IntPtr(40), Quota: IntPtr(32), Cleared: BoolPtr(true)},
			{WaveNumber: WaveNumberPtr(3), Tide: models.TideLow, DeliveredCount: IntPtr(40), Quota: IntPtr(35), Cleared: BoolPtr(true)},
			{WaveNumber: WaveNumberPtr(models.BossWave), Tide: models.TideNormal, DeliveredCount: IntPtr(12), Quota: IntPtr(0), Cleared: BoolPtr(false)},
		},
	}
}

// CountRows returns how many rows of table belong to a scenario code.
func CountRows(t *testing.T, conn *sql.DB, table, code string) int {
	t.Helper()

	column := "scenario_code"
	if table == "scenarios" {
		column = "code"
	}

	var n int
	err := conn.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE "+column+" = ?", code).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
