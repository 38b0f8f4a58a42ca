package repository

import (
	"context"

	"storefront-service/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository struct {
	store DocumentStore
}

func NewProductRepository(store DocumentStore) *ProductRepository {
	return &ProductRepository{store: store}
}

// Available reports whether the backing store has a connection.
func (r *ProductRepository) Available() bool {
	return r.store != nil && r.store.Connected()
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]database.Document, error) {
	return r.store.FindMany(ctx, database.CollectionProduct, bson.M{})
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (database.Document, error) {
	return r.store.FindOne(ctx, database.CollectionProduct, bson.M{database.IDField: id})
}

// FindByIDs returns the products whose identifiers are in ids.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]database.Document, error) {
	filter := bson.M{database.IDField: bson.M{"$in": ids}}
	return r.store.FindMany(ctx, database.CollectionProduct, filter)
}

func (r *ProductRepository) Create(ctx context.Context, doc database.Document) (primitive.ObjectID, error) {
	return r.store.InsertOne(ctx, database.CollectionProduct, doc)
}
