// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package masterdata resolves stage and weapon names to their ids.

Names arrive from image recognition or user edits, so matching is tolerant
of case, spacing and full-width characters (see Normalize). An unknown name
is not an error: ResolveStage returns a nil id and ResolveWeapons leaves a
nil slot at the name's position.

	catalog := masterdata.NewCatalog(db)
	ids, err := catalog.ResolveWeapons(ctx, []string{"Splattershot", "Nope"})
	// ids[0] != nil, ids[1] == nil

For names that do not resolve, SuggestStages and SuggestWeapons return up to
three canonical names within a small edit distance.
*/
package masterdata
