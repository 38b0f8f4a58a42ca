package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry as stored in the product collection.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description *string            `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Category    string             `json:"category" bson:"category"`
	Image       *string            `json:"image" bson:"image"`
	InStock     bool               `json:"in_stock" bson:"in_stock"`
}

// ProductIn is the body accepted by POST /api/products.
type ProductIn struct {
	Title       string   `json:"title" binding:"required,notblank"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Category    string   `json:"category" binding:"required,notblank"`
	Image       *string  `json:"image"`
	InStock     *bool    `json:"in_stock"`
}

// Product applies the defaults of the catalog model to the request.
func (in ProductIn) Product() Product {
	p := Product{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Image:       in.Image,
		InStock:     true,
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	return p
}

// Document returns the persisted field set, without an identifier.
// Absent optional fields are stored as null.
func (p Product) Document() bson.M {
	return bson.M{
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"image":       p.Image,
		"in_stock":    p.InStock,
	}
}
