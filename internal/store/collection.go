// Package store provides generic access to the document database: typed
// collection operations, filter helpers, and read-side relation expansion.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Record is implemented by every entity through the embedded model base;
// Insert uses it to stamp the assigned id and creation time back onto the
// document.
type Record interface {
	SetID(primitive.ObjectID)
	SetCreatedAt(time.Time)
}

// Collection wraps one mongo collection with typed CRUD operations.
// All reads are sorted by _id so identical queries return identical order.
type Collection[T any] struct {
	coll         *mongo.Collection
	name         string
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewCollection[T any](db *mongo.Database, name string, readTimeout, writeTimeout time.Duration) *Collection[T] {
	return &Collection[T]{
		coll:         db.Collection(name),
		name:         name,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

var idSort = bson.D{{Key: "_id", Value: 1}}

func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	return c.Find(ctx, bson.M{})
}

func (c *Collection[T]) Find(ctx context.Context, filter bson.M) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	cursor, err := c.coll.Find(ctx, filter, options.Find().SetSort(idSort))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.name, err)
	}
	defer cursor.Close(ctx)

	var docs []T
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.name, err)
	}

	return docs, nil
}

// FindDocs returns raw documents for reads that go through relation
// expansion afterwards.
func (c *Collection[T]) FindDocs(ctx context.Context, filter bson.M) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	cursor, err := c.coll.Find(ctx, filter, options.Find().SetSort(idSort))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.name, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.name, err)
	}

	return docs, nil
}

func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	var doc T
	err = c.coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find %s: %w", c.name, err)
	}
	return &doc, nil
}

func (c *Collection[T]) DocByID(ctx context.Context, id string) (bson.M, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	var doc bson.M
	err = c.coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find %s: %w", c.name, err)
	}
	return doc, nil
}

// IDs returns the identifiers of all documents matching filter.
func (c *Collection[T]) IDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(idSort)

	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s ids: %w", c.name, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode %s ids: %w", c.name, err)
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

// OneID returns the identifier of the first document matching filter, or
// ErrNotFound when nothing matches.
func (c *Collection[T]) OneID(ctx context.Context, filter bson.M) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	opts := options.FindOne().
		SetProjection(bson.M{"_id": 1}).
		SetSort(idSort)

	var row struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := c.coll.FindOne(ctx, filter, opts).Decode(&row)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return primitive.NilObjectID, ErrNotFound
		}
		return primitive.NilObjectID, fmt.Errorf("failed to find %s id: %w", c.name, err)
	}
	return row.ID, nil
}

func (c *Collection[T]) Insert(ctx context.Context, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	if rec, ok := any(doc).(Record); ok {
		rec.SetCreatedAt(time.Now().UTC().Truncate(time.Millisecond))
	}

	result, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", c.name, err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		if rec, ok := any(doc).(Record); ok {
			rec.SetID(oid)
		}
	}

	return nil
}

// UpdateByID applies a $set of the given fields and returns the updated
// document, mirroring the store's "return updated document" option.
func (c *Collection[T]) UpdateByID(ctx context.Context, id string, set bson.M) (*T, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc T
	err = c.coll.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to update %s: %w", c.name, err)
	}
	return &doc, nil
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	result, err := c.coll.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", c.name, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return nil
}
