package repository

import (
	"context"

	"storefront-service/database"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentStore is the subset of *database.Store the repositories use.
type DocumentStore interface {
	Connected() bool
	InsertOne(ctx context.Context, collection string, doc database.Document) (primitive.ObjectID, error)
	FindOne(ctx context.Context, collection string, filter database.Document) (database.Document, error)
	FindMany(ctx context.Context, collection string, filter database.Document) ([]database.Document, error)
}

// ProductRepo defines the product operations used by the services.
type ProductRepo interface {
	Available() bool
	FindAll(ctx context.Context) ([]database.Document, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (database.Document, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]database.Document, error)
	Create(ctx context.Context, doc database.Document) (primitive.ObjectID, error)
}

// OrderRepo defines the order operations used by the services.
type OrderRepo interface {
	Available() bool
	FindByID(ctx context.Context, id primitive.ObjectID) (database.Document, error)
	Create(ctx context.Context, doc database.Document) (primitive.ObjectID, error)
}
