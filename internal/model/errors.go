package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals that the target record no longer exists. Delete and
	// edit paths treat it as a stale reference, not a failure.
	ErrNotFound = errors.New("not found")

	// ErrValidation signals a save attempt with required fields missing.
	ErrValidation = errors.New("validation error")

	// ErrFormat signals a backup document that cannot be decoded.
	ErrFormat = errors.New("format error")

	// ErrRemote signals a failure from the backing store. It is surfaced once
	// to the caller and never retried automatically.
	ErrRemote = errors.New("remote store error")
)

// ValidationError enumerates the field names missing from a save request so
// the client can render them inline.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
