package model

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	TicketAvailable = "available"
	TicketReserved  = "reserved"
	TicketSold      = "sold"
)

// TicketCatalog is a fare/class label ("VIP", "Standard", ...).
type TicketCatalog struct {
	Model `bson:",inline"`

	Name string `json:"name" bson:"name" validate:"required,min=1,max=120"`
}

// Ticket ties one seat on one trip to a fare class. Referential integrity
// is advisory: the store does not enforce that the referenced documents
// exist, and neither does the write path.
type Ticket struct {
	Model `bson:",inline"`

	SeatID          primitive.ObjectID `json:"seat_id" bson:"seat_id" validate:"required"`
	TicketCatalogID primitive.ObjectID `json:"ticket_catalog_id" bson:"ticket_catalog_id" validate:"required"`
	TripID          primitive.ObjectID `json:"trip_id" bson:"trip_id" validate:"required"`
	Price           float64            `json:"price,omitempty" bson:"price,omitempty" validate:"omitempty,gte=0"`
	Status          string             `json:"status,omitempty" bson:"status,omitempty" validate:"omitempty,oneof=available reserved sold"`
}
