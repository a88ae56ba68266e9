package store

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contains builds a case-insensitive substring predicate on field. The term
// is quoted so callers can pass raw user input without it being interpreted
// as a regular expression.
func Contains(field, term string) bson.M {
	return bson.M{field: primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}}
}

// In builds a set-membership predicate on field.
func In(field string, ids []primitive.ObjectID) bson.M {
	return bson.M{field: bson.M{"$in": ids}}
}
