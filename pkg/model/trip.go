package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Trip struct {
	Model `bson:",inline"`

	DeparturePoint   primitive.ObjectID `json:"departure_point" bson:"departure_point" validate:"required"`
	DestinationPoint primitive.ObjectID `json:"destination_point" bson:"destination_point" validate:"required"`
	DepartureTime    time.Time          `json:"departure_time,omitempty" bson:"departure_time,omitempty"`
	ArrivalTime      time.Time          `json:"arrival_time,omitempty" bson:"arrival_time,omitempty"`
	Price            float64            `json:"price,omitempty" bson:"price,omitempty" validate:"omitempty,gte=0"`
}
