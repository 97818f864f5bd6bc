package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/mission-control/internal/store"
)

// classify wraps a GORM/SQLite error into a tagged *store.Error.
// A nil err stays nil.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.E(op, store.KindNotFound, err)
	case isUniqueViolation(err):
		return store.E(op, store.KindDuplicateKey, err)
	default:
		return store.E(op, store.KindUnknown, err)
	}
}

// isUniqueViolation reports whether err is a unique constraint failure.
// glebarez/sqlite only translates to gorm.ErrDuplicatedKey when the handle was
// opened with TranslateError, so the plain-text forms are matched as well.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}
