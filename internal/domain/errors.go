package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrCorruptCacheEntry signals bytes in the shared store that cannot be decoded.
	ErrCorruptCacheEntry = errors.New("corrupt cache entry")
	// ErrWrongEntityType signals a cached value whose Go type does not match its entity kind.
	ErrWrongEntityType = errors.New("wrong entity type")
	// ErrSourceUnavailable signals that the relational source could not be queried.
	ErrSourceUnavailable = errors.New("relational source unavailable")
	// ErrUnknownEntityKind signals an entity kind without a registered schema.
	ErrUnknownEntityKind = errors.New("unknown entity kind")
	// ErrInvalidRating signals a rating outside u/s/q/e.
	ErrInvalidRating = errors.New("invalid rating")
)

// SourceError wraps a relational source failure with the operation that failed.
type SourceError struct {
	Op  string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSourceUnavailable.Error(), e.Op, e.Err)
}

// Unwrap exposes both the sentinel and the cause.
func (e *SourceError) Unwrap() []error { return []error{ErrSourceUnavailable, e.Err} }

// NewSourceError creates a SourceError.
func NewSourceError(op string, err error) error {
	return &SourceError{Op: op, Err: err}
}
