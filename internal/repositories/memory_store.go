package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"serenestays/internal/models/db_models"
)

// MemoryStore keeps every collection in process memory. Documents are
// normalised through JSON on the way in so they look like what the other
// backends return.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

func (s *MemoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		c = &memoryCollection{}
		s.collections[name] = c
	}
	return c
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

type memoryCollection struct {
	mu   sync.RWMutex
	docs []db_models.Document
}

func normalise(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func cloneDoc(doc db_models.Document) db_models.Document {
	v, err := normalise(doc)
	if err != nil {
		return nil
	}
	m, _ := v.(map[string]interface{})
	return m
}

func checkUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func matches(doc db_models.Document, filter Filter) bool {
	for field, want := range filter {
		got, ok := doc[field].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// indexOf must be called with the lock held.
func (c *memoryCollection) indexOf(id string) int {
	for i, doc := range c.docs {
		if doc.ID() == id {
			return i
		}
	}
	return -1
}

func (c *memoryCollection) Find(ctx context.Context, filter Filter, opts FindOptions) ([]db_models.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]db_models.Document, 0)
	for _, doc := range c.docs {
		if matches(doc, filter) {
			result = append(result, project(cloneDoc(doc), opts.Projection))
		}
	}
	if opts.Newest {
		for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
			result[i], result[j] = result[j], result[i]
		}
	}
	return result, nil
}

func (c *memoryCollection) FindOne(ctx context.Context, filter Filter) (db_models.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, doc := range c.docs {
		if matches(doc, filter) {
			return cloneDoc(doc), nil
		}
	}
	return nil, nil
}

func (c *memoryCollection) FindByID(ctx context.Context, id string) (db_models.Document, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return cloneDoc(c.docs[i]), nil
	}
	return nil, nil
}

func (c *memoryCollection) InsertOne(ctx context.Context, doc db_models.Document) (InsertResult, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return InsertResult{}, err
	}

	stored := cloneDoc(withoutID(doc))
	if stored == nil {
		return InsertResult{}, fmt.Errorf("document is not JSON encodable")
	}
	stored[db_models.FieldID] = id.String()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = append(c.docs, stored)

	return InsertResult{InsertedID: id.String()}, nil
}

func (c *memoryCollection) SetField(ctx context.Context, id, field string, value interface{}) (UpdateResult, error) {
	return c.update(id, field, value, func(doc db_models.Document, v interface{}) (bool, error) {
		if old, ok := doc[field]; ok && reflect.DeepEqual(old, v) {
			return false, nil
		}
		doc[field] = v
		return true, nil
	})
}

func (c *memoryCollection) PushField(ctx context.Context, id, field string, value interface{}) (UpdateResult, error) {
	return c.update(id, field, value, func(doc db_models.Document, v interface{}) (bool, error) {
		old, ok := doc[field]
		arr, isArray := old.([]interface{})
		if ok && !isArray {
			return false, fmt.Errorf("%w: %s", ErrNotArray, field)
		}
		doc[field] = append(arr, v)
		return true, nil
	})
}

func (c *memoryCollection) update(id, field string, value interface{}, apply func(db_models.Document, interface{}) (bool, error)) (UpdateResult, error) {
	if err := checkUUID(id); err != nil {
		return UpdateResult{}, err
	}
	if field == db_models.FieldID {
		return UpdateResult{}, fmt.Errorf("field %s is immutable", field)
	}

	v, err := normalise(value)
	if err != nil {
		return UpdateResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return UpdateResult{}, nil
	}

	modified, err := apply(c.docs[i], v)
	if err != nil {
		return UpdateResult{}, err
	}
	res := UpdateResult{MatchedCount: 1}
	if modified {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (c *memoryCollection) DeleteOne(ctx context.Context, id string) (DeleteResult, error) {
	if err := checkUUID(id); err != nil {
		return DeleteResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return DeleteResult{}, nil
	}
	c.docs = append(c.docs[:i], c.docs[i+1:]...)
	return DeleteResult{DeletedCount: 1}, nil
}
