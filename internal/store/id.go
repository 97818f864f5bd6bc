package store

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID returns a fresh identifier in the document store's native format
// (a 24 character hex ObjectID). The SQL backend uses the same format so ids
// are portable between backends and validated identically.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ParseID validates id and returns the decoded ObjectID. A malformed id yields
// a KindMalformedID error tagged with op.
func ParseID(op, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, E(op, KindMalformedID, err)
	}
	return oid, nil
}

// ValidID reports whether id is a well-formed identifier.
func ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
