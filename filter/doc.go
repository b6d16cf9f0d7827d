// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package filter selects scenarios matching search criteria.

# Semantics

Criteria categories combine with AND. Within a category:

  - StageID: equality
  - MinDangerRate: danger rate at least this value
  - WeaponIDs: every requested weapon must be in the loadout (AND)
  - Tags: at least one requested tag must be derived (OR)

Omitted criteria impose no constraint. Match never mutates its input and is
safe for concurrent use.

	criteria, err := filter.ParseCriteria(r.URL.Query())
	matched := filter.Match(candidates, criteria)
*/
package filter
