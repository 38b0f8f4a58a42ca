package repository

import (
	"context"

	"storefront-service/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository struct {
	store DocumentStore
}

func NewOrderRepository(store DocumentStore) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Available() bool {
	return r.store != nil && r.store.Connected()
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (database.Document, error) {
	return r.store.FindOne(ctx, database.CollectionOrder, bson.M{database.IDField: id})
}

func (r *OrderRepository) Create(ctx context.Context, doc database.Document) (primitive.ObjectID, error) {
	return r.store.InsertOne(ctx, database.CollectionOrder, doc)
}
