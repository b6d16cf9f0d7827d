// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/danielhkuo/scenario-share/models"
	"github.com/danielhkuo/scenario-share/tags"
)

var ErrInvalidCriteria = errors.New("invalid filter criteria")

// Criteria selects scenarios. Nil or empty fields impose no constraint.
type Criteria struct {
	StageID       *int64
	MinDangerRate *int
	// WeaponIDs must all appear in the loadout.
	WeaponIDs []int64
	// Tags match when at least one is present.
	Tags []string
}

// Candidate is a scenario with its resolved children.
type Candidate struct {
	Scenario  models.Scenario
	Waves     []models.Wave
	WeaponIDs []int64
}

// Tags computes the candidate's tag set.
func (c Candidate) Tags() tags.Result {
	return tags.Compute(tags.Snapshot{
		DangerRate:      c.Scenario.DangerRate,
		TotalGoldenEggs: c.Scenario.TotalGoldenEggs,
		Waves:           c.Waves,
	})
}

// Match returns the candidates satisfying every supplied criterion, in input
// order.
func Match(candidates []Candidate, criteria Criteria) []Candidate {
	result := []Candidate{}
	for _, c := range candidates {
		if Matches(c, criteria) {
			result = append(result, c)
		}
	}
	return result
}

// Matches reports whether a single candidate satisfies criteria.
func Matches(c Candidate, criteria Criteria) bool {
	if criteria.StageID != nil && c.Scenario.StageID != *criteria.StageID {
		return false
	}
	if criteria.MinDangerRate != nil && c.Scenario.DangerRate < *criteria.MinDangerRate {
		return false
	}

	if len(criteria.WeaponIDs) > 0 {
		loadout := make(map[int64]bool, len(c.WeaponIDs))
		for _, id := range c.WeaponIDs {
			loadout[id] = true
		}
		for _, id := range criteria.WeaponIDs {
			if !loadout[id] {
				return false
			}
		}
	}

	if len(criteria.Tags) > 0 {
		res := c.Tags()
		matched := false
		for _, tag := range criteria.Tags {
			if res.Has(tag) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// ParseCriteria reads stage_id, min_danger_rate, weapon_ids and tags from a
// query string. List parameters accept comma separated values, repeated
// keys, or both.
func ParseCriteria(q url.Values) (Criteria, error) {
	var c Criteria

	if v := strings.TrimSpace(q.Get("stage_id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Criteria{}, fmt.Errorf("%w: stage_id must be an integer", ErrInvalidCriteria)
		}
		c.StageID = &id
	}

	if v := strings.TrimSpace(q.Get("min_danger_rate")); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil {
			return Criteria{}, fmt.Errorf("%w: min_danger_rate must be an integer", ErrInvalidCriteria)
		}
		c.MinDangerRate = &rate
	}

	for _, v := range SplitList(q["weapon_ids"]) {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Criteria{}, fmt.Errorf("%w: weapon_ids must be integers, got %q", ErrInvalidCriteria, v)
		}
		c.WeaponIDs = append(c.WeaponIDs, id)
	}

	c.Tags = SplitList(q["tags"])

	return c, nil
}

// SplitList flattens repeated and comma separated query values, dropping
// blanks.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
