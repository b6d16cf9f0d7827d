// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package submission validates scenario drafts and persists them.

The store has no transaction spanning tables, so Submit writes the
scenario header, then its waves, then its weapon assignments, and undoes
earlier writes when a later one fails:

	waves fail   → delete scenario
	weapons fail → delete waves, delete scenario

Compensating deletes run even if the request context is cancelled. A
delete that fails is logged with event=inconsistent_state and does not
replace the original error.

	p := submission.New(db.NewStore(conn, dialect), masterdata.NewCatalog(conn), logger)
	resp, err := p.Submit(ctx, draft)
	if errors.Is(err, submission.ErrConflict) {
		// code already taken
	}

Every error from Submit is a *Error whose Kind is ErrValidation,
ErrConflict or ErrStorage.
*/
package submission
