// Package service implements ticket business logic: CRUD with lifecycle
// event publishing, and the multi-criteria search that resolves free-text
// names into identifier filters across the related collections.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"busline/internal/resource"
	"busline/internal/store"
	"busline/internal/ticket/repository"
	apperrors "busline/pkg/errors"
	"busline/pkg/kafka"
	"busline/pkg/logger"
	"busline/pkg/model"
)

// EventPublisher abstracts the kafka producer; a nil publisher disables
// event emission entirely.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

const (
	EventTicketCreated = "ticket.created"
	EventTicketUpdated = "ticket.updated"
	EventTicketDeleted = "ticket.deleted"
)

type ticketEvent struct {
	Event      string    `json:"event"`
	TicketID   string    `json:"ticket_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type TicketService interface {
	GetAll(ctx context.Context) ([]bson.M, error)
	GetByID(ctx context.Context, id string) (bson.M, error)
	Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error)
	Update(ctx context.Context, id string, set bson.M) (bson.M, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, params SearchParams) ([]bson.M, error)
}

type ticketService struct {
	repo      repository.TicketRepository
	validator *resource.Validator[model.Ticket]
	events    EventPublisher
	log       *logger.Logger
}

func NewTicketService(repo repository.TicketRepository, events EventPublisher, log *logger.Logger) TicketService {
	return &ticketService{
		repo:      repo,
		validator: resource.NewValidator[model.Ticket](),
		events:    events,
		log:       log,
	}
}

func (s *ticketService) GetAll(ctx context.Context) ([]bson.M, error) {
	docs, err := s.repo.FindAllExpanded(ctx)
	if err != nil {
		s.log.Error("Failed to list tickets", "error", err)
		return nil, apperrors.Internal("Failed to retrieve tickets", err)
	}
	return docs, nil
}

func (s *ticketService) GetByID(ctx context.Context, id string) (bson.M, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Ticket ID cannot be empty")
	}

	doc, err := s.repo.FindExpandedByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id, "retrieve")
	}
	return doc, nil
}

func (s *ticketService) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	if err := s.validator.Validate(ticket); err != nil {
		s.log.Warn("Ticket validation failed", "error", err)
		return nil, apperrors.Validation("Ticket validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		s.log.Error("Failed to create ticket", "error", err)
		return nil, apperrors.Internal("Failed to create ticket", err)
	}

	s.log.Info("Ticket created successfully", "id", ticket.ID.Hex())
	s.publish(ctx, EventTicketCreated, ticket.ID.Hex())
	return ticket, nil
}

func (s *ticketService) Update(ctx context.Context, id string, set bson.M) (bson.M, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Ticket ID cannot be empty")
	}

	doc, err := s.repo.UpdateByID(ctx, id, set)
	if err != nil {
		return nil, s.mapError(err, id, "update")
	}

	s.log.Info("Ticket updated successfully", "id", id)
	s.publish(ctx, EventTicketUpdated, id)
	return doc, nil
}

func (s *ticketService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Ticket ID cannot be empty")
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.mapError(err, id, "delete")
	}

	s.log.Info("Ticket deleted successfully", "id", id)
	s.publish(ctx, EventTicketDeleted, id)
	return nil
}

// publish emits a lifecycle event. Event delivery is best effort: a broker
// failure must never fail the request that already committed to the store.
func (s *ticketService) publish(ctx context.Context, event, ticketID string) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(ticketEvent{
		Event:      event,
		TicketID:   ticketID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Error("Failed to encode ticket event", "event", event, "ticket_id", ticketID, "error", err)
		return
	}

	if err := s.events.Publish(ctx, kafka.Message{
		Key:       ticketID,
		Value:     payload,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		s.log.Error("Failed to publish ticket event", "event", event, "ticket_id", ticketID, "error", err)
	}
}

func (s *ticketService) mapError(err error, id, op string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFoundWithID("Ticket", id)
	}
	if errors.Is(err, store.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid Ticket ID format")
	}
	s.log.Error("Failed to "+op+" ticket", "id", id, "error", err)
	return apperrors.Internal("Failed to "+op+" ticket", err)
}
