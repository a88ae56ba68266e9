package model

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	SeatAvailable = "available"
	SeatReserved  = "reserved"
	SeatSold      = "sold"
)

// SeatCatalog groups the seats of one vehicle, e.g. "Sleeper upper deck".
type SeatCatalog struct {
	Model `bson:",inline"`

	Name      string             `json:"name" bson:"name" validate:"required,min=1,max=120"`
	VehicleID primitive.ObjectID `json:"vehicle_id" bson:"vehicle_id" validate:"required"`
}

type Seat struct {
	Model `bson:",inline"`

	Name          string             `json:"name" bson:"name" validate:"required,min=1,max=60"`
	Status        string             `json:"status,omitempty" bson:"status,omitempty" validate:"omitempty,oneof=available reserved sold"`
	SeatCatalogID primitive.ObjectID `json:"seat_catalog_id" bson:"seat_catalog_id" validate:"required"`
}
