package services

import (
	"errors"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

// Class is the outcome category of a failed operation.
type Class int

const (
	// Internal covers every failure not recognized below, including lost
	// connectivity and cancelled contexts.
	Internal Class = iota
	// Conflict is a unique field collision (e.g. a mission name).
	Conflict
	// NotFound is an absent record or a malformed identifier.
	NotFound
	// InvalidInput is a request that failed model validation.
	InvalidInput
)

func (c Class) String() string {
	switch c {
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case InvalidInput:
		return "invalid_input"
	default:
		return "internal"
	}
}

// Classify maps err to its Class. It is a pure function of err.
func Classify(err error) Class {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return InvalidInput
	}
	if errors.Is(err, ErrMissionNotFound) {
		return NotFound
	}

	var se *store.Error
	if !errors.As(err, &se) {
		return Internal
	}
	switch se.Kind {
	case store.KindDuplicateKey:
		return Conflict
	case store.KindMalformedID, store.KindNotFound:
		return NotFound
	case store.KindUnknown:
		return Internal
	}
	return Internal
}
