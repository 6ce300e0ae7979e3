package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"serenestays/internal/models/db_models"
)

// MongoStore serves collections from one database of a pooled client.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(database)}
}

func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{coll: s.db.Collection(name)}
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type mongoCollection struct {
	coll *mongo.Collection
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

func toBSONFilter(filter Filter) bson.M {
	m := bson.M{}
	for k, v := range filter {
		m[k] = v
	}
	return m
}

func projectionOf(fields []string) bson.M {
	m := bson.M{}
	for _, f := range fields {
		m[f] = 1
	}
	return m
}

func (c *mongoCollection) Find(ctx context.Context, filter Filter, opts FindOptions) ([]db_models.Document, error) {
	findOpts := options.Find()
	if opts.Newest {
		findOpts.SetSort(bson.D{{Key: db_models.FieldID, Value: -1}})
	}
	if len(opts.Projection) > 0 {
		findOpts.SetProjection(projectionOf(opts.Projection))
	}

	cursor, err := c.coll.Find(ctx, toBSONFilter(filter), findOpts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.coll.Name(), err)
	}

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}

	docs := make([]db_models.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, db_models.Document(m))
	}
	return docs, nil
}

func (c *mongoCollection) findOne(ctx context.Context, filter interface{}) (db_models.Document, error) {
	var m bson.M
	err := c.coll.FindOne(ctx, filter).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find one in %s: %w", c.coll.Name(), err)
	}
	return db_models.Document(m), nil
}

func (c *mongoCollection) FindOne(ctx context.Context, filter Filter) (db_models.Document, error) {
	return c.findOne(ctx, toBSONFilter(filter))
}

func (c *mongoCollection) FindByID(ctx context.Context, id string) (db_models.Document, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return c.findOne(ctx, bson.M{db_models.FieldID: oid})
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc db_models.Document) (InsertResult, error) {
	res, err := c.coll.InsertOne(ctx, bson.M(withoutID(doc)))
	if err != nil {
		return InsertResult{}, fmt.Errorf("insert into %s: %w", c.coll.Name(), err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return InsertResult{InsertedID: fmt.Sprint(res.InsertedID)}, nil
	}
	return InsertResult{InsertedID: oid.Hex()}, nil
}

func (c *mongoCollection) updateOne(ctx context.Context, id string, update bson.M) (UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return UpdateResult{}, err
	}

	res, err := c.coll.UpdateOne(ctx, bson.M{db_models.FieldID: oid}, update)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update %s: %w", c.coll.Name(), err)
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (c *mongoCollection) SetField(ctx context.Context, id, field string, value interface{}) (UpdateResult, error) {
	return c.updateOne(ctx, id, bson.M{"$set": bson.M{field: value}})
}

func (c *mongoCollection) PushField(ctx context.Context, id, field string, value interface{}) (UpdateResult, error) {
	res, err := c.updateOne(ctx, id, bson.M{"$push": bson.M{field: value}})
	if isBadValue(err) {
		return UpdateResult{}, fmt.Errorf("%w: %s: %v", ErrNotArray, field, err)
	}
	return res, err
}

// codeBadValue is what the server reports for a $push onto a non-array field.
const codeBadValue = 2

func isBadValue(err error) bool {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return false
	}
	for _, e := range we.WriteErrors {
		if e.Code == codeBadValue {
			return true
		}
	}
	return false
}

func (c *mongoCollection) DeleteOne(ctx context.Context, id string) (DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return DeleteResult{}, err
	}

	res, err := c.coll.DeleteOne(ctx, bson.M{db_models.FieldID: oid})
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete from %s: %w", c.coll.Name(), err)
	}
	return DeleteResult{DeletedCount: res.DeletedCount}, nil
}
