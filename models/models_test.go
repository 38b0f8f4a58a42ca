package models_test

import (
	"testing"

	"storefront-service/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestProductIn_Defaults(t *testing.T) {
	price := 12.5
	p := models.ProductIn{Title: "Lamp", Price: &price, Category: "Home"}.Product()

	assert.True(t, p.InStock)
	assert.Equal(t, 12.5, p.Price)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.Image)
}

func TestProductIn_ExplicitOutOfStock(t *testing.T) {
	price := 0.0
	inStock := false
	p := models.ProductIn{Title: "Lamp", Price: &price, Category: "Home", InStock: &inStock}.Product()

	assert.False(t, p.InStock)
	assert.Equal(t, 0.0, p.Price)
}

func TestProduct_DocumentHasNoIdentifier(t *testing.T) {
	desc := "bright"
	doc := models.Product{Title: "Lamp", Description: &desc, Price: 3, Category: "Home", InStock: true}.Document()

	_, hasID := doc["_id"]
	assert.False(t, hasID)
	assert.Equal(t, "Lamp", doc["title"])
	assert.Equal(t, &desc, doc["description"])
	assert.Contains(t, doc, "image")
}

func TestOrder_Document(t *testing.T) {
	price := 10.0
	qty := 2
	item := models.OrderItemIn{ProductID: "p1", Title: "Mug", Price: &price, Quantity: &qty}.Item()

	doc := models.Order{
		CustomerName:    "Ada",
		CustomerEmail:   "ada@example.com",
		ShippingAddress: "1 Loop Rd",
		Items:           []models.OrderItem{item},
		TotalAmount:     20,
		Status:          models.OrderStatusPending,
	}.Document()

	items, ok := doc["items"].(bson.A)
	assert.True(t, ok)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].(bson.M)["quantity"])
	assert.Equal(t, "pending", doc["status"])
}
