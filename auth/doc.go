// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides delete keys and author references.

# Delete Keys

Delete keys use HMAC-SHA256 to create deterministic, verifiable keys:

	deleteKey := auth.GenerateDeleteKey(scenarioCode, salt)
	err := auth.ValidateDeleteKey(scenarioCode, deleteKey, salt)

The key is returned once, when the scenario is submitted, and must be sent
in the X-Delete-Key header to delete it. Since it's deterministic, the key
is never stored.

# Author References

Login and sessions live outside this service. Requests carry the resolved
user id in the X-Author-ID header:

	author, err := auth.ParseAuthorID(r.Header.Get("X-Author-ID"))

The id must be a UUID and is stored in canonical lower-case form.
*/
package auth
