// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package masterdata

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/scenario-share/testutil"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Splattershot", "splattershot"},
		{"  Splat   Roller ", "splat roller"},
		{"ＳＰＬＡＴ　ＲＯＬＬＥＲ", "splat roller"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResolveStage(t *testing.T) {
	catalog := NewCatalog(testutil.SetupTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name     string
		input    string
		expected *int64
	}{
		{"exact", "Marooner's Bay", testutil.Int64Ptr(testutil.StageMaroonersBay)},
		{"case and spacing", "  sockeye   STATION", testutil.Int64Ptr(testutil.StageSockeyeStation)},
		{"unknown", "Lost Outpost", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.ResolveStage(ctx, tt.input)
			if err != nil {
				t.Fatalf("ResolveStage failed: %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("id mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveWeaponsKeepsOrderAndDuplicates(t *testing.T) {
	catalog := NewCatalog(testutil.SetupTestDB(t))

	got, err := catalog.ResolveWeapons(context.Background(),
		[]string{"Slosher", "Nope", "slosher", "Ｓｐｌａｔｔｅｒｓｈｏｔ"})
	if err != nil {
		t.Fatalf("ResolveWeapons failed: %v", err)
	}

	want := []*int64{
		testutil.Int64Ptr(testutil.WeaponSlosher),
		nil,
		testutil.Int64Ptr(testutil.WeaponSlosher),
		testutil.Int64Ptr(testutil.WeaponSplattershot),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggest(t *testing.T) {
	catalog := NewCatalog(testutil.SetupTestDB(t))
	ctx := context.Background()

	weapons, err := catalog.SuggestWeapons(ctx, "Splat Rollr")
	if err != nil {
		t.Fatalf("SuggestWeapons failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Splat Roller"}, weapons); diff != "" {
		t.Errorf("weapon hints mismatch (-want +got):\n%s", diff)
	}

	stages, err := catalog.SuggestStages(ctx, "Spawning Grounts")
	if err != nil {
		t.Fatalf("SuggestStages failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Spawning Grounds"}, stages); diff != "" {
		t.Errorf("stage hints mismatch (-want +got):\n%s", diff)
	}

	none, err := catalog.SuggestWeapons(ctx, "Tri-Stringer")
	if err != nil {
		t.Fatalf("SuggestWeapons failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no hints, got %v", none)
	}
}

func TestSuggestRanksByDistance(t *testing.T) {
	entries := []entry{
		{id: 1, name: "Bamboo"},
		{id: 2, name: "Bambo"},
		{id: 3, name: "Bambox"},
		{id: 4, name: "Bamboozler"},
	}

	got := suggest(entries, "bamboo")
	// Bambo and Bambox are both one edit away; ties sort by name.
	want := []string{"Bamboo", "Bambo", "Bambox"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("suggestions mismatch (-want +got):\n%s", diff)
	}
}

func TestStagesAndWeaponsListed(t *testing.T) {
	catalog := NewCatalog(testutil.SetupTestDB(t))
	ctx := context.Background()

	stages, err := catalog.Stages(ctx)
	if err != nil {
		t.Fatalf("Stages failed: %v", err)
	}
	if diff := cmp.Diff(testutil.TestMasterData.Stages, stages); diff != "" {
		t.Errorf("stages mismatch (-want +got):\n%s", diff)
	}

	weapons, err := catalog.Weapons(ctx)
	if err != nil {
		t.Fatalf("Weapons failed: %v", err)
	}
	if diff := cmp.Diff(testutil.TestMasterData.Weapons, weapons); diff != "" {
		t.Errorf("weapons mismatch (-want +got):\n%s", diff)
	}
}
