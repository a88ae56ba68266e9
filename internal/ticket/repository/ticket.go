// Package repository implements data access for the ticket domain. Unlike
// the plain resources, tickets need cross-collection name lookups for search
// and a deep relation spec for display, so the repository composes several
// collections behind one interface.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"busline/internal/store"
	"busline/pkg/model"
)

// TicketRepository is the data-access contract the ticket service depends
// on. Name-lookup methods back the search composer; the expanded reads back
// display.
type TicketRepository interface {
	FindAllExpanded(ctx context.Context) ([]bson.M, error)
	FindExpandedByID(ctx context.Context, id string) (bson.M, error)
	FindExpanded(ctx context.Context, filter bson.M) ([]bson.M, error)
	Create(ctx context.Context, ticket *model.Ticket) error
	UpdateByID(ctx context.Context, id string, set bson.M) (bson.M, error)
	DeleteByID(ctx context.Context, id string) error

	CatalogIDsByName(ctx context.Context, name string) ([]primitive.ObjectID, error)
	SeatIDsByName(ctx context.Context, name string) ([]primitive.ObjectID, error)
	LocationIDByName(ctx context.Context, name string) (primitive.ObjectID, error)
	TripIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error)
}

// ticketRelations drills from a ticket down to every name a caller wants to
// see: seat with its catalog and vehicle, fare catalog, and trip with both
// endpoint locations.
var ticketRelations = []store.Relation{
	{
		Field:      "seat_id",
		Collection: store.Seats,
		Include:    []string{"name", "status"},
		Relations: []store.Relation{
			{
				Field:      "seat_catalog_id",
				Collection: store.SeatCatalogs,
				Include:    []string{"name"},
				Relations: []store.Relation{
					{Field: "vehicle_id", Collection: store.Vehicles, Include: []string{"name", "status"}},
				},
			},
		},
	},
	{
		Field:      "ticket_catalog_id",
		Collection: store.TicketCatalogs,
		Include:    []string{"name"},
	},
	{
		Field:      "trip_id",
		Collection: store.Trips,
		Exclude:    []string{"created_at"},
		Relations: []store.Relation{
			{Field: "departure_point", Collection: store.Locations, Include: []string{"name"}},
			{Field: "destination_point", Collection: store.Locations, Include: []string{"name"}},
		},
	},
}

type mongoTicketRepository struct {
	tickets   *store.Collection[model.Ticket]
	catalogs  *store.Collection[model.TicketCatalog]
	seats     *store.Collection[model.Seat]
	trips     *store.Collection[model.Trip]
	locations *store.Collection[model.Location]
	joiner    *store.Joiner
}

func NewMongoTicketRepository(db *mongo.Database, joiner *store.Joiner, readTimeout, writeTimeout time.Duration) TicketRepository {
	return &mongoTicketRepository{
		tickets:   store.NewCollection[model.Ticket](db, store.Tickets, readTimeout, writeTimeout),
		catalogs:  store.NewCollection[model.TicketCatalog](db, store.TicketCatalogs, readTimeout, writeTimeout),
		seats:     store.NewCollection[model.Seat](db, store.Seats, readTimeout, writeTimeout),
		trips:     store.NewCollection[model.Trip](db, store.Trips, readTimeout, writeTimeout),
		locations: store.NewCollection[model.Location](db, store.Locations, readTimeout, writeTimeout),
		joiner:    joiner,
	}
}

func (r *mongoTicketRepository) FindAllExpanded(ctx context.Context) ([]bson.M, error) {
	return r.FindExpanded(ctx, bson.M{})
}

func (r *mongoTicketRepository) FindExpanded(ctx context.Context, filter bson.M) ([]bson.M, error) {
	docs, err := r.tickets.FindDocs(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := r.joiner.Expand(ctx, docs, ticketRelations); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *mongoTicketRepository) FindExpandedByID(ctx context.Context, id string) (bson.M, error) {
	doc, err := r.tickets.DocByID(ctx, id)
	if err != nil {
		return nil, err
	}
	docs := []bson.M{doc}
	if err := r.joiner.Expand(ctx, docs, ticketRelations); err != nil {
		return nil, err
	}
	return docs[0], nil
}

func (r *mongoTicketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	return r.tickets.Insert(ctx, ticket)
}

func (r *mongoTicketRepository) UpdateByID(ctx context.Context, id string, set bson.M) (bson.M, error) {
	if _, err := r.tickets.UpdateByID(ctx, id, set); err != nil {
		return nil, err
	}
	return r.FindExpandedByID(ctx, id)
}

func (r *mongoTicketRepository) DeleteByID(ctx context.Context, id string) error {
	return r.tickets.DeleteByID(ctx, id)
}

func (r *mongoTicketRepository) CatalogIDsByName(ctx context.Context, name string) ([]primitive.ObjectID, error) {
	return r.catalogs.IDs(ctx, store.Contains("name", name))
}

func (r *mongoTicketRepository) SeatIDsByName(ctx context.Context, name string) ([]primitive.ObjectID, error) {
	return r.seats.IDs(ctx, store.Contains("name", name))
}

func (r *mongoTicketRepository) LocationIDByName(ctx context.Context, name string) (primitive.ObjectID, error) {
	return r.locations.OneID(ctx, store.Contains("name", name))
}

func (r *mongoTicketRepository) TripIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	return r.trips.IDs(ctx, filter)
}
