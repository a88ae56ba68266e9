// Package model defines the persisted entities of the ticketing domain.
// Every entity embeds Model, which carries the Mongo document id and the
// creation timestamp; foreign keys are plain ObjectIDs that the read side
// may expand into embedded sub-documents.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Model struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CreatedAt time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

func (m *Model) SetID(id primitive.ObjectID) { m.ID = id }

func (m *Model) SetCreatedAt(t time.Time) { m.CreatedAt = t }
