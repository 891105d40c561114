package store

import (
        "errors"
        "fmt"
)

// ErrInvalidCards marks a card collection that breaks the collection invariants
// (missing fields, duplicate ids, unknown code type).
var ErrInvalidCards = errors.New("invalid cards")

// PersistenceError reports a failed slot read or write. It is never fatal: the in-memory
// collection stays authoritative for the session.
type PersistenceError struct {
        Op  string
        Err error
}

func (e *PersistenceError) Error() string {
        return fmt.Sprintf("changes may not be saved (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func invalidCards(format string, args ...any) error {
        return fmt.Errorf("%w: %s", ErrInvalidCards, fmt.Sprintf(format, args...))
}
