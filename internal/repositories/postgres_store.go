package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"gorm.io/gorm"
	"serenestays/internal/models/db_models"
)

// PostgresStore keeps every collection in the jsonb documents table.
type PostgresStore struct {
	db    *gorm.DB
	close func() error
}

func NewPostgresStore(db *gorm.DB, close func() error) *PostgresStore {
	return &PostgresStore{db: db, close: close}
}

func (s *PostgresStore) Collection(name string) Collection {
	return &postgresCollection{db: s.db, name: name}
}

func (s *PostgresStore) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

type postgresCollection struct {
	db   *gorm.DB
	name string
}

func (c *postgresCollection) scoped(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx).Model(&db_models.DocumentRecord{}).Where("collection = ?", c.name)
}

// byID narrows tx to one document of this collection.
func (c *postgresCollection) byID(tx *gorm.DB, id string) *gorm.DB {
	return tx.Model(&db_models.DocumentRecord{}).Where("collection = ? AND id = ?", c.name, id)
}

// where adds one equality condition per filter field, in field order.
func where(q *gorm.DB, filter Filter) *gorm.DB {
	for _, field := range slices.Sorted(maps.Keys(filter)) {
		q = q.Where("body ->> ?::text = ?", field, filter[field])
	}
	return q
}

func decodeRecord(rec db_models.DocumentRecord) (db_models.Document, error) {
	doc := db_models.Document{}
	if err := json.Unmarshal(rec.Body, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", rec.ID, err)
	}
	doc[db_models.FieldID] = rec.ID
	return doc, nil
}

func (c *postgresCollection) find(q *gorm.DB, filter Filter, newest bool, records *[]db_models.DocumentRecord) *gorm.DB {
	q = where(q, filter)
	if newest {
		q = q.Order("seq DESC")
	} else {
		q = q.Order("seq ASC")
	}
	return q.Find(records)
}

func (c *postgresCollection) Find(ctx context.Context, filter Filter, opts FindOptions) ([]db_models.Document, error) {
	var records []db_models.DocumentRecord
	if err := c.find(c.scoped(ctx), filter, opts.Newest, &records).Error; err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.name, err)
	}

	docs := make([]db_models.Document, 0, len(records))
	for _, rec := range records {
		doc, err := decodeRecord(rec)
		if err != nil {
			return nil, err
		}
		docs = append(docs, project(doc, opts.Projection))
	}
	return docs, nil
}

func (c *postgresCollection) first(q *gorm.DB) (db_models.Document, error) {
	var rec db_models.DocumentRecord
	err := q.Order("seq ASC").Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find one in %s: %w", c.name, err)
	}
	return decodeRecord(rec)
}

func (c *postgresCollection) FindOne(ctx context.Context, filter Filter) (db_models.Document, error) {
	return c.first(where(c.scoped(ctx), filter))
}

func (c *postgresCollection) FindByID(ctx context.Context, id string) (db_models.Document, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	return c.first(c.scoped(ctx).Where("id = ?", id))
}

func (c *postgresCollection) InsertOne(ctx context.Context, doc db_models.Document) (InsertResult, error) {
	body, err := json.Marshal(withoutID(doc))
	if err != nil {
		return InsertResult{}, fmt.Errorf("encode document: %w", err)
	}

	rec := db_models.DocumentRecord{Collection: c.name, Body: body}
	if err := c.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return InsertResult{}, fmt.Errorf("insert into %s: %w", c.name, err)
	}
	return InsertResult{InsertedID: rec.ID}, nil
}

// setField writes raw at field unless the stored value is already equal, so
// RowsAffected is the modified count.
func (c *postgresCollection) setField(tx *gorm.DB, id, field, raw string) *gorm.DB {
	return c.byID(tx, id).
		Where("(body -> ?::text) IS DISTINCT FROM ?::jsonb", field, raw).
		Update("body", gorm.Expr("jsonb_set(body, ARRAY[?]::text[], ?::jsonb, true)", field, raw))
}

// pushField appends raw to the array at field, creating it when absent.
// Rows whose field holds anything but an array are left alone.
func (c *postgresCollection) pushField(tx *gorm.DB, id, field, raw string) *gorm.DB {
	return c.byID(tx, id).
		Where("jsonb_typeof(COALESCE(body -> ?::text, '[]'::jsonb)) = 'array'", field).
		Update("body", gorm.Expr(
			"jsonb_set(body, ARRAY[?]::text[], COALESCE(body -> ?::text, '[]'::jsonb) || jsonb_build_array(?::jsonb), true)",
			field, field, raw))
}

func (c *postgresCollection) deleteOne(tx *gorm.DB, id string) *gorm.DB {
	return tx.Where("collection = ? AND id = ?", c.name, id).Delete(&db_models.DocumentRecord{})
}

// update counts the matching document and then runs write in the same
// transaction. write reports the modified count through RowsAffected.
func (c *postgresCollection) update(ctx context.Context, id string, value interface{}, write func(tx *gorm.DB, raw string) (int64, error)) (UpdateResult, error) {
	if err := checkUUID(id); err != nil {
		return UpdateResult{}, err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("encode value: %w", err)
	}

	var res UpdateResult
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := c.byID(tx, id).Count(&res.MatchedCount).Error; err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return nil
		}

		modified, err := write(tx, string(raw))
		res.ModifiedCount = modified
		return err
	})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update %s: %w", c.name, err)
	}
	return res, nil
}

func (c *postgresCollection) SetField(ctx context.Context, id, field string, value interface{}) (UpdateResult, error) {
	return c.update(ctx, id, value, func(tx *gorm.DB, raw string) (int64, error) {
		upd := c.setField(tx, id, field, raw)
		return upd.RowsAffected, upd.Error
	})
}

func (c *postgresCollection) PushField(ctx context.Context, id, field string, value interface{}) (UpdateResult, error) {
	return c.update(ctx, id, value, func(tx *gorm.DB, raw string) (int64, error) {
		upd := c.pushField(tx, id, field, raw)
		if upd.Error != nil {
			return 0, upd.Error
		}
		if upd.RowsAffected == 0 {
			return 0, fmt.Errorf("%w: %s", ErrNotArray, field)
		}
		return upd.RowsAffected, nil
	})
}

func (c *postgresCollection) DeleteOne(ctx context.Context, id string) (DeleteResult, error) {
	if err := checkUUID(id); err != nil {
		return DeleteResult{}, err
	}

	del := c.deleteOne(c.db.WithContext(ctx), id)
	if del.Error != nil {
		return DeleteResult{}, fmt.Errorf("delete from %s: %w", c.name, del.Error)
	}
	return DeleteResult{DeletedCount: del.RowsAffected}, nil
}
