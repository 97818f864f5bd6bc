// Package store holds the adapter-neutral pieces shared by every persistence
// backend: the tagged error returned across the repository boundary and the
// identifier helpers.
//
// Backends (internal/repo for GORM/SQLite, internal/docstore for MongoDB)
// never leak driver errors to callers. Every failure is wrapped in an *Error
// whose Kind tells the service and HTTP layers what happened without them
// having to know which driver produced it.
package store

import (
	"errors"
	"fmt"
)

// Kind tags a persistence failure.
type Kind int

const (
	// KindUnknown covers connectivity loss, driver bugs, schema errors, etc.
	KindUnknown Kind = iota
	// KindDuplicateKey reports a unique index violation.
	KindDuplicateKey
	// KindMalformedID reports an identifier that is not a valid ObjectID.
	KindMalformedID
	// KindNotFound reports a well-formed identifier with no matching record.
	KindNotFound
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDuplicateKey:
		return "duplicate_key"
	case KindMalformedID:
		return "malformed_id"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the tagged failure returned by repositories.
//
// Op names the repository operation (e.g. "missions.create") and Err carries
// the underlying driver error, if any.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an *Error. A nil err is allowed for kinds that carry no cause.
func E(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// NotFound is shorthand for E(op, KindNotFound, nil).
func NotFound(op string) *Error { return E(op, KindNotFound, nil) }

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown
// when there is none.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a NotFound or MalformedID store error.
// Lookups treat both the same way.
func IsNotFound(err error) bool {
	switch KindOf(err) {
	case KindNotFound, KindMalformedID:
		return true
	}
	return false
}
