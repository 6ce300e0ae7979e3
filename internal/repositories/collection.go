package repositories

import (
	"context"
	"errors"

	"serenestays/internal/models/db_models"
)

var (
	// ErrInvalidID is returned when an id is not in the backend's id format.
	ErrInvalidID = errors.New("invalid id")
	// ErrNotArray is returned when a push targets a field holding a non-array value.
	ErrNotArray = errors.New("field is not an array")
)

// Filter matches documents whose fields equal the given strings.
type Filter map[string]string

type FindOptions struct {
	// Newest orders results by descending id, i.e. newest insert first.
	Newest bool
	// Projection limits returned fields to _id plus the named ones.
	Projection []string
}

type InsertResult struct {
	InsertedID string
}

type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}

type DeleteResult struct {
	DeletedCount int64
}

// Collection is a named set of schemaless documents. Every method performs a
// single operation against one document or one query.
type Collection interface {
	Find(ctx context.Context, filter Filter, opts FindOptions) ([]db_models.Document, error)
	// FindOne returns nil, nil when nothing matches.
	FindOne(ctx context.Context, filter Filter) (db_models.Document, error)
	// FindByID returns nil, nil when nothing matches.
	FindByID(ctx context.Context, id string) (db_models.Document, error)
	InsertOne(ctx context.Context, doc db_models.Document) (InsertResult, error)
	// SetField overwrites field on the document with the given id.
	SetField(ctx context.Context, id, field string, value interface{}) (UpdateResult, error)
	// PushField appends value to the array field on the document with the given
	// id, creating the array when the field is absent. A present non-array
	// field fails with ErrNotArray and is left unchanged.
	PushField(ctx context.Context, id, field string, value interface{}) (UpdateResult, error)
	DeleteOne(ctx context.Context, id string) (DeleteResult, error)
}

// Store hands out collections backed by one shared connection.
type Store interface {
	Collection(name string) Collection
	Close(ctx context.Context) error
}

// withoutID copies doc and drops any client supplied _id.
func withoutID(doc db_models.Document) db_models.Document {
	out := make(db_models.Document, len(doc))
	for k, v := range doc {
		if k == db_models.FieldID {
			continue
		}
		out[k] = v
	}
	return out
}

func project(doc db_models.Document, fields []string) db_models.Document {
	if len(fields) == 0 {
		return doc
	}
	out := db_models.Document{db_models.FieldID: doc[db_models.FieldID]}
	for _, f := range fields {
		if v, ok := doc[f]; ok {
			out[f] = v
		}
	}
	return out
}
