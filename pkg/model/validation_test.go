package model

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEntityValidationTags(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name        string
		entity      any
		expectValid bool
	}{
		{
			name:        "valid location",
			entity:      &Location{Name: "Hanoi"},
			expectValid: true,
		},
		{
			name:        "location missing name",
			entity:      &Location{},
			expectValid: false,
		},
		{
			name:        "valid vehicle with status",
			entity:      &Vehicle{Name: "Sleeper 42", Status: "active"},
			expectValid: true,
		},
		{
			name:        "vehicle with unknown status",
			entity:      &Vehicle{Name: "Sleeper 42", Status: "parked"},
			expectValid: false,
		},
		{
			name: "valid seat",
			entity: &Seat{
				Name:          "A1",
				Status:        "available",
				SeatCatalogID: primitive.NewObjectID(),
			},
			expectValid: true,
		},
		{
			name:        "seat missing catalog reference",
			entity:      &Seat{Name: "A1"},
			expectValid: false,
		},
		{
			name: "valid ticket",
			entity: &Ticket{
				SeatID:          primitive.NewObjectID(),
				TicketCatalogID: primitive.NewObjectID(),
				TripID:          primitive.NewObjectID(),
				Price:           120000,
				Status:          "available",
			},
			expectValid: true,
		},
		{
			name: "ticket with negative price",
			entity: &Ticket{
				SeatID:          primitive.NewObjectID(),
				TicketCatalogID: primitive.NewObjectID(),
				TripID:          primitive.NewObjectID(),
				Price:           -1,
			},
			expectValid: false,
		},
		{
			name: "ticket missing trip reference",
			entity: &Ticket{
				SeatID:          primitive.NewObjectID(),
				TicketCatalogID: primitive.NewObjectID(),
			},
			expectValid: false,
		},
		{
			name: "valid trip",
			entity: &Trip{
				DeparturePoint:   primitive.NewObjectID(),
				DestinationPoint: primitive.NewObjectID(),
			},
			expectValid: true,
		},
		{
			name:        "trip missing endpoints",
			entity:      &Trip{},
			expectValid: false,
		},
		{
			name:        "valid age category",
			entity:      &AgeCategory{Name: "Child", Discount: 50},
			expectValid: true,
		},
		{
			name:        "age category discount above 100",
			entity:      &AgeCategory{Name: "Child", Discount: 150},
			expectValid: false,
		},
		{
			name:        "valid user",
			entity:      &User{Name: "Staff One", Email: "staff@example.com", Role: "staff"},
			expectValid: true,
		},
		{
			name:        "user with malformed email",
			entity:      &User{Name: "Staff One", Email: "not-an-email", Role: "staff"},
			expectValid: false,
		},
		{
			name:        "user with unknown role",
			entity:      &User{Name: "Staff One", Email: "staff@example.com", Role: "root"},
			expectValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.entity)
			if tt.expectValid && err != nil {
				t.Errorf("expected valid, got: %v", err)
			}
			if !tt.expectValid && err == nil {
				t.Error("expected validation to fail")
			}
		})
	}
}
