package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatusPending is the only status this service assigns.
const OrderStatusPending = "pending"

// OrderItem is a denormalized snapshot of a product at order time.
// ProductID is not checked against the catalog.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Title     string  `json:"title" bson:"title"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Image     *string `json:"image" bson:"image"`
}

// Order is a placed order as stored in the order collection.
type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CustomerName    string             `json:"customer_name" bson:"customer_name"`
	CustomerEmail   string             `json:"customer_email" bson:"customer_email"`
	ShippingAddress string             `json:"shipping_address" bson:"shipping_address"`
	Items           []OrderItem        `json:"items" bson:"items"`
	TotalAmount     float64            `json:"total_amount" bson:"total_amount"`
	Status          string             `json:"status" bson:"status"`
}

// OrderItemIn is one line of an order request.
type OrderItemIn struct {
	ProductID string   `json:"product_id" binding:"required"`
	Title     string   `json:"title" binding:"required"`
	Price     *float64 `json:"price" binding:"required,gte=0"`
	Quantity  *int     `json:"quantity" binding:"required,min=1"`
	Image     *string  `json:"image"`
}

// OrderIn is the body accepted by POST /api/orders. Totals are never
// accepted from the client.
type OrderIn struct {
	CustomerName    string        `json:"customer_name" binding:"required"`
	CustomerEmail   string        `json:"customer_email" binding:"required"`
	ShippingAddress string        `json:"shipping_address" binding:"required"`
	Items           []OrderItemIn `json:"items" binding:"required,dive"`
}

// Item converts the request line into its stored form.
func (in OrderItemIn) Item() OrderItem {
	item := OrderItem{
		ProductID: in.ProductID,
		Title:     in.Title,
		Image:     in.Image,
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	return item
}

// Document returns the persisted field set, without an identifier.
func (o Order) Document() bson.M {
	items := make(bson.A, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, it.Document())
	}
	return bson.M{
		"customer_name":    o.CustomerName,
		"customer_email":   o.CustomerEmail,
		"shipping_address": o.ShippingAddress,
		"items":            items,
		"total_amount":     o.TotalAmount,
		"status":           o.Status,
	}
}

func (it OrderItem) Document() bson.M {
	return bson.M{
		"product_id": it.ProductID,
		"title":      it.Title,
		"price":      it.Price,
		"quantity":   it.Quantity,
		"image":      it.Image,
	}
}
