package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names. One collection per entity.
const (
	CollectionProduct = "product"
	CollectionOrder   = "order"
	CollectionUser    = "user"
)

var knownCollections = map[string]struct{}{
	CollectionProduct: {},
	CollectionOrder:   {},
	CollectionUser:    {},
}

// Store owns the MongoDB client for the lifetime of the process.
// A Store without a client is "disconnected": every operation fails with
// ErrStorageUnavailable.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	name   string
}

// Connect builds a client for mongoURL. The driver connects lazily, so an
// unreachable server is only noticed by Ping or the first operation.
func Connect(ctx context.Context, mongoURL, dbName string, timeout time.Duration) (*Store, error) {
	if mongoURL == "" {
		return Disconnected(dbName), fmt.Errorf("%w: no connection string configured", ErrStorageUnavailable)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(mongoURL).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(timeoutCtx, clientOptions)
	if err != nil {
		return Disconnected(dbName), &StorageError{Op: "connect", Err: err}
	}
	return NewStore(client, dbName), nil
}

// NewStore wraps an existing client.
func NewStore(client *mongo.Client, dbName string) *Store {
	if client == nil {
		return Disconnected(dbName)
	}
	return &Store{
		client: client,
		db:     client.Database(dbName),
		name:   dbName,
	}
}

// Disconnected returns a Store with no client.
func Disconnected(dbName string) *Store {
	return &Store{name: dbName}
}

// Connected reports whether a client was configured.
func (s *Store) Connected() bool {
	return s != nil && s.client != nil
}

// Name returns the database name.
func (s *Store) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// InsertOne persists doc in collection and returns the generated identifier.
// doc is not modified.
func (s *Store) InsertOne(ctx context.Context, collection string, doc Document) (primitive.ObjectID, error) {
	if err := s.check(collection); err != nil {
		return primitive.NilObjectID, err
	}
	if _, ok := doc[IDField]; ok {
		return primitive.NilObjectID, ErrIdentifierInBody
	}

	body := make(Document, len(doc)+1)
	for k, v := range doc {
		body[k] = v
	}
	body[IDField] = primitive.NewObjectID()

	res, err := s.db.Collection(collection).InsertOne(ctx, body)
	if err != nil {
		return primitive.NilObjectID, &StorageError{Op: "insert", Collection: collection, Err: err}
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, &StorageError{
			Op:         "insert",
			Collection: collection,
			Err:        fmt.Errorf("unexpected inserted id type %T", res.InsertedID),
		}
	}
	return id, nil
}

// FindOne returns the first document matching filter, or ErrDocumentNotFound.
func (s *Store) FindOne(ctx context.Context, collection string, filter Document) (Document, error) {
	if err := s.check(collection); err != nil {
		return nil, err
	}

	var doc Document
	err := s.db.Collection(collection).FindOne(ctx, normalizeFilter(filter)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDocumentNotFound
		}
		return nil, &StorageError{Op: "find one", Collection: collection, Err: err}
	}
	return doc, nil
}

// FindMany returns every document matching filter in natural order.
func (s *Store) FindMany(ctx context.Context, collection string, filter Document) ([]Document, error) {
	if err := s.check(collection); err != nil {
		return nil, err
	}

	cursor, err := s.db.Collection(collection).Find(ctx, normalizeFilter(filter))
	if err != nil {
		return nil, &StorageError{Op: "find", Collection: collection, Err: err}
	}
	defer cursor.Close(ctx)

	docs := make([]Document, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, &StorageError{Op: "decode", Collection: collection, Err: err}
	}
	return docs, nil
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if !s.Connected() {
		return ErrStorageUnavailable
	}
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}

// ListCollectionNames returns the names of the collections in the database.
func (s *Store) ListCollectionNames(ctx context.Context) ([]string, error) {
	if !s.Connected() {
		return nil, ErrStorageUnavailable
	}
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, &StorageError{Op: "list collections", Err: err}
	}
	return names, nil
}

// Close disconnects the client. Closing a disconnected Store is a no-op.
func (s *Store) Close(ctx context.Context) error {
	if !s.Connected() {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}

func (s *Store) check(collection string) error {
	if _, ok := knownCollections[collection]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	if !s.Connected() {
		return ErrStorageUnavailable
	}
	return nil
}

func normalizeFilter(filter Document) Document {
	if filter == nil {
		return Document{}
	}
	return filter
}
