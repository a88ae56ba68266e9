package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Relation describes one step of read-side foreign-key expansion: which
// local field to resolve, against which collection, with which field
// projection, and which nested relations to expand inside the referenced
// document. Include and Exclude are mutually exclusive; leave both empty to
// embed the whole referenced document.
type Relation struct {
	Field      string
	Collection string
	Include    []string
	Exclude    []string
	Relations  []Relation
}

// docFetcher loads projected documents by id set. Split out of Joiner so
// the stitching logic is testable without a live database.
type docFetcher interface {
	fetch(ctx context.Context, collection string, ids []primitive.ObjectID, include, exclude []string) ([]bson.M, error)
}

// Joiner resolves Relation specs over raw documents, replacing each
// foreign-key field with the projected referenced document (or nil when the
// reference dangles). Each relation level costs one batched query.
type Joiner struct {
	fetcher docFetcher
}

func NewJoiner(db *mongo.Database, readTimeout time.Duration) *Joiner {
	return &Joiner{fetcher: &mongoFetcher{db: db, readTimeout: readTimeout}}
}

func (j *Joiner) Expand(ctx context.Context, docs []bson.M, rels []Relation) error {
	for _, rel := range rels {
		if err := j.expandOne(ctx, docs, rel); err != nil {
			return err
		}
	}
	return nil
}

func (j *Joiner) expandOne(ctx context.Context, docs []bson.M, rel Relation) error {
	ids := collectIDs(docs, rel.Field)
	if len(ids) == 0 {
		return nil
	}

	include := rel.Include
	if len(include) > 0 {
		// Nested foreign keys must survive the projection or the next
		// expansion level has nothing to resolve.
		for _, nested := range rel.Relations {
			include = append(include, nested.Field)
		}
	}

	refs, err := j.fetcher.fetch(ctx, rel.Collection, ids, include, rel.Exclude)
	if err != nil {
		return fmt.Errorf("failed to expand %s via %s: %w", rel.Field, rel.Collection, err)
	}

	if len(rel.Relations) > 0 {
		if err := j.Expand(ctx, refs, rel.Relations); err != nil {
			return err
		}
	}

	byID := make(map[primitive.ObjectID]bson.M, len(refs))
	for _, ref := range refs {
		if oid, ok := ref["_id"].(primitive.ObjectID); ok {
			byID[oid] = ref
		}
	}

	for _, doc := range docs {
		oid, ok := doc[rel.Field].(primitive.ObjectID)
		if !ok {
			continue
		}
		if ref, found := byID[oid]; found {
			doc[rel.Field] = ref
		} else {
			// Dangling reference: surface as null, like the store's own
			// populate would.
			doc[rel.Field] = nil
		}
	}

	return nil
}

func collectIDs(docs []bson.M, field string) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, doc := range docs {
		oid, ok := doc[field].(primitive.ObjectID)
		if !ok {
			continue
		}
		if _, dup := seen[oid]; dup {
			continue
		}
		seen[oid] = struct{}{}
		ids = append(ids, oid)
	}
	return ids
}

type mongoFetcher struct {
	db          *mongo.Database
	readTimeout time.Duration
}

func (f *mongoFetcher) fetch(ctx context.Context, collection string, ids []primitive.ObjectID, include, exclude []string) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, f.readTimeout)
	defer cancel()

	opts := options.Find()
	if projection := buildProjection(include, exclude); len(projection) > 0 {
		opts.SetProjection(projection)
	}

	cursor, err := f.db.Collection(collection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func buildProjection(include, exclude []string) bson.M {
	projection := bson.M{}
	for _, field := range include {
		projection[field] = 1
	}
	if len(projection) > 0 {
		// _id is always kept so nested expansion can index by it.
		projection["_id"] = 1
		return projection
	}
	for _, field := range exclude {
		projection[field] = 0
	}
	return projection
}
