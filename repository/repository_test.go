package repository_test

import (
	"context"
	"testing"

	"storefront-service/database"
	"storefront-service/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Recording store ---

type call struct {
	op         string
	collection string
	filter     database.Document
}

type recordingStore struct {
	connected bool
	calls     []call
}

func (s *recordingStore) Connected() bool { return s.connected }

func (s *recordingStore) InsertOne(_ context.Context, collection string, doc database.Document) (primitive.ObjectID, error) {
	s.calls = append(s.calls, call{op: "insert", collection: collection, filter: doc})
	return primitive.NewObjectID(), nil
}

func (s *recordingStore) FindOne(_ context.Context, collection string, filter database.Document) (database.Document, error) {
	s.calls = append(s.calls, call{op: "findOne", collection: collection, filter: filter})
	return database.Document{}, nil
}

func (s *recordingStore) FindMany(_ context.Context, collection string, filter database.Document) ([]database.Document, error) {
	s.calls = append(s.calls, call{op: "findMany", collection: collection, filter: filter})
	return []database.Document{}, nil
}

// --- Tests ---

func TestProductRepository_UsesProductCollection(t *testing.T) {
	store := &recordingStore{connected: true}
	repo := repository.NewProductRepository(store)
	ctx := context.Background()
	id := primitive.NewObjectID()

	_, _ = repo.FindAll(ctx)
	_, _ = repo.FindByID(ctx, id)
	_, _ = repo.Create(ctx, database.Document{"title": "Mug"})

	require.Len(t, store.calls, 3)
	for _, c := range store.calls {
		assert.Equal(t, database.CollectionProduct, c.collection)
	}
	assert.Equal(t, bson.M{}, store.calls[0].filter)
	assert.Equal(t, id, store.calls[1].filter["_id"])
}

func TestProductRepository_FindByIDsUsesIn(t *testing.T) {
	store := &recordingStore{connected: true}
	repo := repository.NewProductRepository(store)
	ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	_, err := repo.FindByIDs(context.Background(), ids)
	require.NoError(t, err)

	require.Len(t, store.calls, 1)
	in := store.calls[0].filter["_id"].(bson.M)
	assert.Equal(t, ids, in["$in"])
}

func TestOrderRepository_UsesOrderCollection(t *testing.T) {
	store := &recordingStore{connected: true}
	repo := repository.NewOrderRepository(store)
	ctx := context.Background()

	_, _ = repo.Create(ctx, database.Document{"status": "pending"})
	_, _ = repo.FindByID(ctx, primitive.NewObjectID())

	require.Len(t, store.calls, 2)
	assert.Equal(t, database.CollectionOrder, store.calls[0].collection)
	assert.Equal(t, database.CollectionOrder, store.calls[1].collection)
}

func TestRepository_Available(t *testing.T) {
	assert.True(t, repository.NewProductRepository(&recordingStore{connected: true}).Available())
	assert.False(t, repository.NewOrderRepository(&recordingStore{}).Available())
	assert.False(t, repository.NewProductRepository(nil).Available())
}
