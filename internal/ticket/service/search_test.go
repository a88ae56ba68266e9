package service_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"busline/internal/store"
	"busline/internal/ticket/repository"
	"busline/internal/ticket/service"
	apperrors "busline/pkg/errors"
	"busline/pkg/kafka"
	"busline/pkg/logger"
	"busline/pkg/model"
)

// mockRepository is a hand-written test double; set only the function
// fields a test exercises.
type mockRepository struct {
	findAllExpanded  func(ctx context.Context) ([]bson.M, error)
	findExpandedByID func(ctx context.Context, id string) (bson.M, error)
	findExpanded     func(ctx context.Context, filter bson.M) ([]bson.M, error)
	create           func(ctx context.Context, ticket *model.Ticket) error
	updateByID       func(ctx context.Context, id string, set bson.M) (bson.M, error)
	deleteByID       func(ctx context.Context, id string) error
	catalogIDsByName func(ctx context.Context, name string) ([]primitive.ObjectID, error)
	seatIDsByName    func(ctx context.Context, name string) ([]primitive.ObjectID, error)
	locationIDByName func(ctx context.Context, name string) (primitive.ObjectID, error)
	tripIDs          func(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error)
}

func (m *mockRepository) FindAllExpanded(ctx context.Context) ([]bson.M, error) {
	return m.findAllExpanded(ctx)
}
func (m *mockRepository) FindExpandedByID(ctx context.Context, id string) (bson.M, error) {
	return m.findExpandedByID(ctx, id)
}
func (m *mockRepository) FindExpanded(ctx context.Context, filter bson.M) ([]bson.M, error) {
	return m.findExpanded(ctx, filter)
}
func (m *mockRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	return m.create(ctx, ticket)
}
func (m *mockRepository) UpdateByID(ctx context.Context, id string, set bson.M) (bson.M, error) {
	return m.updateByID(ctx, id, set)
}
func (m *mockRepository) DeleteByID(ctx context.Context, id string) error {
	return m.deleteByID(ctx, id)
}
func (m *mockRepository) CatalogIDsByName(ctx context.Context, name string) ([]primitive.ObjectID, error) {
	return m.catalogIDsByName(ctx, name)
}
func (m *mockRepository) SeatIDsByName(ctx context.Context, name string) ([]primitive.ObjectID, error) {
	return m.seatIDsByName(ctx, name)
}
func (m *mockRepository) LocationIDByName(ctx context.Context, name string) (primitive.ObjectID, error) {
	return m.locationIDByName(ctx, name)
}
func (m *mockRepository) TripIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	return m.tripIDs(ctx, filter)
}

var _ repository.TicketRepository = (*mockRepository)(nil)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Output: io.Discard})
}

func newService(repo repository.TicketRepository) service.TicketService {
	return service.NewTicketService(repo, nil, testLogger())
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)
}

func TestSearch_AllParamsEmpty(t *testing.T) {
	svc := newService(&mockRepository{})

	_, err := svc.Search(context.Background(), service.SearchParams{})

	assertNotFound(t, err)
}

func TestSearch_WhitespaceOnlyParamsAreEmpty(t *testing.T) {
	svc := newService(&mockRepository{})

	_, err := svc.Search(context.Background(), service.SearchParams{SeatName: "   "})

	assertNotFound(t, err)
}

func TestSearch_SeatNameMatchesTicket(t *testing.T) {
	seatID := primitive.NewObjectID()
	ticket := bson.M{"_id": primitive.NewObjectID(), "seat_id": seatID}

	svc := newService(&mockRepository{
		seatIDsByName: func(_ context.Context, name string) ([]primitive.ObjectID, error) {
			assert.Equal(t, "vip", name)
			return []primitive.ObjectID{seatID}, nil
		},
		findExpanded: func(_ context.Context, filter bson.M) ([]bson.M, error) {
			assert.Equal(t, bson.M{"seat_id": bson.M{"$in": []primitive.ObjectID{seatID}}}, filter)
			return []bson.M{ticket}, nil
		},
	})

	docs, err := svc.Search(context.Background(), service.SearchParams{SeatName: " vip "})

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, ticket, docs[0])
}

func TestSearch_UnmatchedSeatNameForcesNoMatch(t *testing.T) {
	// The seat "A2" may well exist yet reference no ticket; an unmatched
	// supplied constraint must never be silently dropped.
	svc := newService(&mockRepository{
		catalogIDsByName: func(context.Context, string) ([]primitive.ObjectID, error) {
			return []primitive.ObjectID{primitive.NewObjectID()}, nil
		},
		seatIDsByName: func(context.Context, string) ([]primitive.ObjectID, error) {
			return nil, nil
		},
		findExpanded: func(context.Context, bson.M) ([]bson.M, error) {
			t.Fatal("the compound query must not run once a constraint is unmatched")
			return nil, nil
		},
	})

	_, err := svc.Search(context.Background(), service.SearchParams{
		TicketCatalogName: "Economy",
		SeatName:          "A2",
	})

	assertNotFound(t, err)
}

func TestSearch_UnknownDeparturePointForcesNoMatch(t *testing.T) {
	svc := newService(&mockRepository{
		locationIDByName: func(context.Context, string) (primitive.ObjectID, error) {
			return primitive.NilObjectID, store.ErrNotFound
		},
	})

	_, err := svc.Search(context.Background(), service.SearchParams{DeparturePointName: "xyz"})

	assertNotFound(t, err)
}

func TestSearch_DepartureAndDestinationBuildOneTripFilter(t *testing.T) {
	hanoi := primitive.NewObjectID()
	saigon := primitive.NewObjectID()
	tripID := primitive.NewObjectID()

	svc := newService(&mockRepository{
		locationIDByName: func(_ context.Context, name string) (primitive.ObjectID, error) {
			switch name {
			case "han":
				return hanoi, nil
			case "sai":
				return saigon, nil
			}
			return primitive.NilObjectID, store.ErrNotFound
		},
		tripIDs: func(_ context.Context, filter bson.M) ([]primitive.ObjectID, error) {
			assert.Equal(t, bson.M{"departure_point": hanoi, "destination_point": saigon}, filter)
			return []primitive.ObjectID{tripID}, nil
		},
		findExpanded: func(_ context.Context, filter bson.M) ([]bson.M, error) {
			assert.Equal(t, bson.M{"trip_id": bson.M{"$in": []primitive.ObjectID{tripID}}}, filter)
			return []bson.M{{"_id": primitive.NewObjectID()}}, nil
		},
	})

	docs, err := svc.Search(context.Background(), service.SearchParams{
		DeparturePointName:   "han",
		DestinationPointName: "sai",
	})

	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestSearch_NoTripsBetweenLocationsForcesNoMatch(t *testing.T) {
	svc := newService(&mockRepository{
		locationIDByName: func(context.Context, string) (primitive.ObjectID, error) {
			return primitive.NewObjectID(), nil
		},
		tripIDs: func(context.Context, bson.M) ([]primitive.ObjectID, error) {
			return nil, nil
		},
	})

	_, err := svc.Search(context.Background(), service.SearchParams{DeparturePointName: "Hanoi"})

	assertNotFound(t, err)
}

func TestSearch_AllCriteriaCombineWithAND(t *testing.T) {
	catalogID := primitive.NewObjectID()
	seatID := primitive.NewObjectID()
	tripID := primitive.NewObjectID()

	svc := newService(&mockRepository{
		catalogIDsByName: func(context.Context, string) ([]primitive.ObjectID, error) {
			return []primitive.ObjectID{catalogID}, nil
		},
		seatIDsByName: func(context.Context, string) ([]primitive.ObjectID, error) {
			return []primitive.ObjectID{seatID}, nil
		},
		locationIDByName: func(context.Context, string) (primitive.ObjectID, error) {
			return primitive.NewObjectID(), nil
		},
		tripIDs: func(context.Context, bson.M) ([]primitive.ObjectID, error) {
			return []primitive.ObjectID{tripID}, nil
		},
		findExpanded: func(_ context.Context, filter bson.M) ([]bson.M, error) {
			assert.Equal(t, bson.M{
				"ticket_catalog_id": bson.M{"$in": []primitive.ObjectID{catalogID}},
				"seat_id":           bson.M{"$in": []primitive.ObjectID{seatID}},
				"trip_id":           bson.M{"$in": []primitive.ObjectID{tripID}},
			}, filter)
			return []bson.M{{"_id": primitive.NewObjectID()}}, nil
		},
	})

	docs, err := svc.Search(context.Background(), service.SearchParams{
		TicketCatalogName:    "Economy",
		SeatName:             "A1",
		DeparturePointName:   "Hanoi",
		DestinationPointName: "Saigon",
	})

	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestSearch_EmptyCompoundResultIsNoMatch(t *testing.T) {
	svc := newService(&mockRepository{
		seatIDsByName: func(context.Context, string) ([]primitive.ObjectID, error) {
			return []primitive.ObjectID{primitive.NewObjectID()}, nil
		},
		findExpanded: func(context.Context, bson.M) ([]bson.M, error) {
			return nil, nil
		},
	})

	_, err := svc.Search(context.Background(), service.SearchParams{SeatName: "A1"})

	assertNotFound(t, err)
}

func TestSearch_StoreFailureIsInternal(t *testing.T) {
	svc := newService(&mockRepository{
		seatIDsByName: func(context.Context, string) ([]primitive.ObjectID, error) {
			return nil, errors.New("connection reset")
		},
	})

	_, err := svc.Search(context.Background(), service.SearchParams{SeatName: "A1"})

	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeInternal, appErr.Code)
}

// capturingPublisher records published messages, or fails on demand.
type capturingPublisher struct {
	published []kafka.Message
	err       error
}

func (p *capturingPublisher) Publish(_ context.Context, msg kafka.Message) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	return nil
}

func TestCreate_PublishesLifecycleEvent(t *testing.T) {
	assigned := primitive.NewObjectID()
	publisher := &capturingPublisher{}

	svc := service.NewTicketService(&mockRepository{
		create: func(_ context.Context, ticket *model.Ticket) error {
			ticket.SetID(assigned)
			return nil
		},
	}, publisher, testLogger())

	_, err := svc.Create(context.Background(), &model.Ticket{
		SeatID:          primitive.NewObjectID(),
		TicketCatalogID: primitive.NewObjectID(),
		TripID:          primitive.NewObjectID(),
	})

	require.NoError(t, err)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, assigned.Hex(), publisher.published[0].Key)
	assert.Contains(t, string(publisher.published[0].Value), service.EventTicketCreated)
}

func TestCreate_PublishFailureDoesNotFailRequest(t *testing.T) {
	publisher := &capturingPublisher{err: errors.New("broker unreachable")}

	svc := service.NewTicketService(&mockRepository{
		create: func(_ context.Context, ticket *model.Ticket) error {
			ticket.SetID(primitive.NewObjectID())
			return nil
		},
	}, publisher, testLogger())

	created, err := svc.Create(context.Background(), &model.Ticket{
		SeatID:          primitive.NewObjectID(),
		TicketCatalogID: primitive.NewObjectID(),
		TripID:          primitive.NewObjectID(),
	})

	require.NoError(t, err, "event delivery is best effort")
	assert.NotNil(t, created)
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc := newService(&mockRepository{
		create: func(context.Context, *model.Ticket) error {
			t.Fatal("create should not be reached on validation failure")
			return nil
		},
	})

	_, err := svc.Create(context.Background(), &model.Ticket{})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.AsAppError(err).Code)
}

func TestDelete_NotFound(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	svc := newService(&mockRepository{
		deleteByID: func(_ context.Context, gotID string) error {
			return store.ErrNotFound
		},
	})

	err := svc.Delete(context.Background(), id)

	assertNotFound(t, err)
}

func TestDelete_PublishesLifecycleEvent(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	publisher := &capturingPublisher{}

	svc := service.NewTicketService(&mockRepository{
		deleteByID: func(context.Context, string) error { return nil },
	}, publisher, testLogger())

	require.NoError(t, svc.Delete(context.Background(), id))
	require.Len(t, publisher.published, 1)
	assert.Equal(t, id, publisher.published[0].Key)
	assert.Contains(t, string(publisher.published[0].Value), service.EventTicketDeleted)
}
