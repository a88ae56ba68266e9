package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestContains(t *testing.T) {
	filter := Contains("name", "vip")

	pattern, ok := filter["name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "vip", pattern.Pattern)
	assert.Equal(t, "i", pattern.Options)
}

func TestContains_QuotesRegexMetacharacters(t *testing.T) {
	filter := Contains("name", "a.c*")

	pattern := filter["name"].(primitive.Regex)
	assert.Equal(t, `a\.c\*`, pattern.Pattern)
}

func TestIn(t *testing.T) {
	ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	filter := In("seat_id", ids)

	assert.Equal(t, bson.M{"seat_id": bson.M{"$in": ids}}, filter)
}
