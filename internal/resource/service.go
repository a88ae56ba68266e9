// Package resource implements the one generic CRUD handler/service pair
// shared by every plain entity type, parameterized over the store
// capability interface instead of copy-pasted per controller.
package resource

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"busline/internal/store"
	apperrors "busline/pkg/errors"
	"busline/pkg/logger"
)

// Store is the capability surface a resource needs from its collection.
// *store.Collection[T] satisfies it.
type Store[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindDocs(ctx context.Context, filter bson.M) ([]bson.M, error)
	FindByID(ctx context.Context, id string) (*T, error)
	DocByID(ctx context.Context, id string) (bson.M, error)
	Insert(ctx context.Context, doc *T) error
	UpdateByID(ctx context.Context, id string, set bson.M) (*T, error)
	DeleteByID(ctx context.Context, id string) error
}

// Expander resolves relation specs over raw documents; *store.Joiner
// satisfies it.
type Expander interface {
	Expand(ctx context.Context, docs []bson.M, rels []store.Relation) error
}

type Service[T any] interface {
	List(ctx context.Context) (any, error)
	Get(ctx context.Context, id string) (any, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, id string, set bson.M) (any, error)
	Delete(ctx context.Context, id string) error
}

// Config wires one entity type into the generic service. Relations, Joiner
// and Normalize are optional.
type Config[T any] struct {
	Name      string // display name used in errors and logs, e.g. "Location"
	Store     Store[T]
	Joiner    Expander
	Validator *Validator[T]
	Relations []store.Relation
	Normalize func(*T)
	Log       *logger.Logger
}

type service[T any] struct {
	cfg Config[T]
}

func NewService[T any](cfg Config[T]) Service[T] {
	return &service[T]{cfg: cfg}
}

func (s *service[T]) List(ctx context.Context) (any, error) {
	if len(s.cfg.Relations) == 0 {
		entities, err := s.cfg.Store.FindAll(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to list "+s.cfg.Name, "error", err)
			return nil, apperrors.Internal("Failed to retrieve "+s.cfg.Name, err)
		}
		return entities, nil
	}

	docs, err := s.cfg.Store.FindDocs(ctx, bson.M{})
	if err != nil {
		s.cfg.Log.Error("Failed to list "+s.cfg.Name, "error", err)
		return nil, apperrors.Internal("Failed to retrieve "+s.cfg.Name, err)
	}
	if err := s.cfg.Joiner.Expand(ctx, docs, s.cfg.Relations); err != nil {
		s.cfg.Log.Error("Failed to expand "+s.cfg.Name+" relations", "error", err)
		return nil, apperrors.Internal("Failed to retrieve "+s.cfg.Name, err)
	}
	return docs, nil
}

func (s *service[T]) Get(ctx context.Context, id string) (any, error) {
	if id == "" {
		return nil, apperrors.InvalidInput(s.cfg.Name + " ID cannot be empty")
	}

	if len(s.cfg.Relations) == 0 {
		entity, err := s.cfg.Store.FindByID(ctx, id)
		if err != nil {
			return nil, s.mapReadError(err, id)
		}
		return entity, nil
	}

	doc, err := s.cfg.Store.DocByID(ctx, id)
	if err != nil {
		return nil, s.mapReadError(err, id)
	}
	docs := []bson.M{doc}
	if err := s.cfg.Joiner.Expand(ctx, docs, s.cfg.Relations); err != nil {
		s.cfg.Log.Error("Failed to expand "+s.cfg.Name+" relations", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve "+s.cfg.Name, err)
	}
	return docs[0], nil
}

func (s *service[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if s.cfg.Normalize != nil {
		s.cfg.Normalize(entity)
	}
	if err := s.cfg.Validator.Validate(entity); err != nil {
		s.cfg.Log.Warn(s.cfg.Name+" validation failed", "error", err)
		return nil, apperrors.Validation(s.cfg.Name+" validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.cfg.Store.Insert(ctx, entity); err != nil {
		s.cfg.Log.Error("Failed to create "+s.cfg.Name, "error", err)
		return nil, apperrors.Internal("Failed to create "+s.cfg.Name, err)
	}

	s.cfg.Log.Info(s.cfg.Name+" created successfully", "name", s.cfg.Name)
	return entity, nil
}

func (s *service[T]) Update(ctx context.Context, id string, set bson.M) (any, error) {
	if id == "" {
		return nil, apperrors.InvalidInput(s.cfg.Name + " ID cannot be empty")
	}

	updated, err := s.cfg.Store.UpdateByID(ctx, id, set)
	if err != nil {
		return nil, s.mapWriteError(err, id, "update")
	}

	s.cfg.Log.Info(s.cfg.Name+" updated successfully", "id", id)

	if len(s.cfg.Relations) == 0 {
		return updated, nil
	}

	doc, err := s.cfg.Store.DocByID(ctx, id)
	if err != nil {
		return nil, s.mapReadError(err, id)
	}
	docs := []bson.M{doc}
	if err := s.cfg.Joiner.Expand(ctx, docs, s.cfg.Relations); err != nil {
		s.cfg.Log.Error("Failed to expand "+s.cfg.Name+" relations", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve "+s.cfg.Name, err)
	}
	return docs[0], nil
}

func (s *service[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput(s.cfg.Name + " ID cannot be empty")
	}

	if err := s.cfg.Store.DeleteByID(ctx, id); err != nil {
		return s.mapWriteError(err, id, "delete")
	}

	s.cfg.Log.Info(s.cfg.Name+" deleted successfully", "id", id)
	return nil
}

func (s *service[T]) mapReadError(err error, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFoundWithID(s.cfg.Name, id)
	}
	if errors.Is(err, store.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid " + s.cfg.Name + " ID format")
	}
	s.cfg.Log.Error("Failed to retrieve "+s.cfg.Name, "id", id, "error", err)
	return apperrors.Internal("Failed to retrieve "+s.cfg.Name, err)
}

func (s *service[T]) mapWriteError(err error, id, op string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFoundWithID(s.cfg.Name, id)
	}
	if errors.Is(err, store.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid " + s.cfg.Name + " ID format")
	}
	s.cfg.Log.Error("Failed to "+op+" "+s.cfg.Name, "id", id, "error", err)
	return apperrors.Internal("Failed to "+op+" "+s.cfg.Name, err)
}
