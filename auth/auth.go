// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidDeleteKey = errors.New("invalid delete key")
	ErrInvalidAuthorID  = errors.New("invalid author id")
)

// GenerateDeleteKey creates an HMAC-based delete key for a scenario.
// This is deterministic and verifiable
func GenerateDeleteKey(scenarioCode, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(scenarioCode))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateDeleteKey checks if the provided delete key is valid for the scenario
func ValidateDeleteKey(scenarioCode, deleteKey, salt string) error {
	expected := GenerateDeleteKey(scenarioCode, salt)
	if !hmac.Equal([]byte(deleteKey), []byte(expected)) {
		return ErrInvalidDeleteKey
	}
	return nil
}

// ParseAuthorID canonicalizes an author reference. Sessions are handled
// upstream; the header only carries the resolved user id. An empty value
// means an anonymous submission.
func ParseAuthorID(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrInvalidAuthorID
	}
	s := id.String()
	return &s, nil
}
