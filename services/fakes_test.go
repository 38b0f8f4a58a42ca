package services_test

import (
	"context"
	"errors"

	"storefront-service/database"
	"storefront-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- In-memory document store ---

type memStore struct {
	connected   bool
	collections map[string][]database.Document
	insertErr   error
	findErr     error
	inserts     int
}

func newMemStore() *memStore {
	return &memStore{connected: true, collections: make(map[string][]database.Document)}
}

func (m *memStore) Connected() bool { return m.connected }

func (m *memStore) InsertOne(_ context.Context, collection string, doc database.Document) (primitive.ObjectID, error) {
	if m.insertErr != nil {
		return primitive.NilObjectID, m.insertErr
	}
	id := primitive.NewObjectID()
	stored := make(database.Document, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	stored["_id"] = id
	m.collections[collection] = append(m.collections[collection], stored)
	m.inserts++
	return id, nil
}

func (m *memStore) FindOne(ctx context.Context, collection string, filter database.Document) (database.Document, error) {
	docs, err := m.FindMany(ctx, collection, filter)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, database.ErrDocumentNotFound
	}
	return docs[0], nil
}

func (m *memStore) FindMany(_ context.Context, collection string, filter database.Document) ([]database.Document, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	out := make([]database.Document, 0)
	for _, doc := range m.collections[collection] {
		if matches(doc, filter) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func matches(doc, filter database.Document) bool {
	cond, ok := filter["_id"]
	if !ok {
		return true
	}
	switch c := cond.(type) {
	case primitive.ObjectID:
		return doc["_id"] == c
	case bson.M:
		ids, _ := c["$in"].([]primitive.ObjectID)
		for _, id := range ids {
			if doc["_id"] == id {
				return true
			}
		}
	}
	return false
}

var errDriver = &database.StorageError{Op: "insert", Collection: "product", Err: errors.New("connection reset")}

// --- Recording publisher ---

type recordingPublisher struct {
	events []models.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event models.DomainEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// --- Diagnostics probes ---

type stubProber struct {
	connected bool
	name      string
	pingErr   error
	names     []string
	listErr   error
}

func (s *stubProber) Connected() bool            { return s.connected }
func (s *stubProber) Name() string               { return s.name }
func (s *stubProber) Ping(context.Context) error { return s.pingErr }
func (s *stubProber) ListCollectionNames(context.Context) ([]string, error) {
	return s.names, s.listErr
}

type stubCache struct {
	enabled bool
	err     error
}

func (s *stubCache) Enabled() bool              { return s.enabled }
func (s *stubCache) Ping(context.Context) error { return s.err }
