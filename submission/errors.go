// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"errors"
	"strings"
)

// Error kinds, matched with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("scenario code already exists")
	ErrStorage    = errors.New("storage failure")
)

// Error is returned by Submit. Kind is one of ErrValidation, ErrConflict or
// ErrStorage.
type Error struct {
	Kind    error
	Message string
	// Fields names the offending draft fields or unresolved names.
	Fields []string
	// Hints maps an unresolved name to close canonical names.
	Hints map[string][]string
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func validationError(message string, fields ...string) *Error {
	return &Error{Kind: ErrValidation, Message: message, Fields: fields}
}

func conflictError(code string, err error) *Error {
	return &Error{Kind: ErrConflict, Message: code, Fields: []string{"scenario_code"}, Err: err}
}

func storageError(message string, err error) *Error {
	return &Error{Kind: ErrStorage, Message: message, Err: err}
}
