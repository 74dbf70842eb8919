package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a key matched no record.
	ErrNotFound = errors.New("todo not found")
	// ErrAmbiguousKey means an id prefix matched more than one record.
	ErrAmbiguousKey = fmt.Errorf("ambiguous key: %w", ErrNotFound)
	// ErrEmptyText is the validation error for blank todo text.
	ErrEmptyText = errors.New("todo text cannot be empty")
)

// KeyError carries the key that failed to resolve.
type KeyError struct {
	Key string
	Err error
}

func (e *KeyError) Error() string { return fmt.Sprintf("%q: %v", e.Key, e.Err) }
func (e *KeyError) Unwrap() error { return e.Err }
