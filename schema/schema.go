// Package schema holds the machine-readable shape description served by
// GET /schema. The descriptors are maintained by hand next to the models and
// a test keeps their property names in line with the models' json tags.
package schema

// Property describes one field of an entity.
type Property struct {
	Type        string    `json:"type,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Default     any       `json:"default,omitempty"`
	Minimum     *float64  `json:"minimum,omitempty"`
	Nullable    bool      `json:"nullable,omitempty"`
	Items       *Property `json:"items,omitempty"`
	Ref         string    `json:"$ref,omitempty"`
}

// Entity is a JSON Schema style object description.
type Entity struct {
	Title      string              `json:"title"`
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
	Defs       map[string]Entity   `json:"$defs,omitempty"`
}

func minimum(v float64) *float64 { return &v }

// User describes the user collection.
func User() Entity {
	return Entity{
		Title: "User",
		Type:  "object",
		Properties: map[string]Property{
			"name":      {Type: "string", Title: "Name", Description: "Full name"},
			"email":     {Type: "string", Title: "Email", Description: "Email address"},
			"address":   {Type: "string", Title: "Address", Description: "Address"},
			"is_active": {Type: "boolean", Title: "Is Active", Description: "Whether user is active", Default: true},
		},
		Required: []string{"name", "email", "address"},
	}
}

// Product describes the product collection.
func Product() Entity {
	return Entity{
		Title: "Product",
		Type:  "object",
		Properties: map[string]Property{
			"title":       {Type: "string", Title: "Title", Description: "Product title"},
			"description": {Type: "string", Title: "Description", Description: "Product description", Nullable: true},
			"price":       {Type: "number", Title: "Price", Description: "Price in dollars", Minimum: minimum(0)},
			"category":    {Type: "string", Title: "Category", Description: "Product category"},
			"image":       {Type: "string", Title: "Image", Description: "Primary image URL", Nullable: true},
			"in_stock":    {Type: "boolean", Title: "In Stock", Description: "Whether product is in stock", Default: true},
		},
		Required: []string{"title", "price", "category"},
	}
}

// OrderItem describes one line of an order.
func OrderItem() Entity {
	return Entity{
		Title: "OrderItem",
		Type:  "object",
		Properties: map[string]Property{
			"product_id": {Type: "string", Title: "Product Id"},
			"title":      {Type: "string", Title: "Title"},
			"price":      {Type: "number", Title: "Price", Minimum: minimum(0)},
			"quantity":   {Type: "integer", Title: "Quantity", Minimum: minimum(1)},
			"image":      {Type: "string", Title: "Image", Nullable: true},
		},
		Required: []string{"product_id", "title", "price", "quantity"},
	}
}

// Order describes the order collection.
func Order() Entity {
	return Entity{
		Title: "Order",
		Type:  "object",
		Properties: map[string]Property{
			"customer_name":    {Type: "string", Title: "Customer Name"},
			"customer_email":   {Type: "string", Title: "Customer Email"},
			"shipping_address": {Type: "string", Title: "Shipping Address"},
			"items": {
				Type:  "array",
				Title: "Items",
				Items: &Property{Title: "OrderItem", Ref: "#/$defs/OrderItem"},
			},
			"total_amount": {Type: "number", Title: "Total Amount", Minimum: minimum(0)},
			"status":       {Type: "string", Title: "Status", Description: "Order status", Default: "pending"},
		},
		Required: []string{"customer_name", "customer_email", "shipping_address", "items", "total_amount"},
		Defs:     map[string]Entity{"OrderItem": OrderItem()},
	}
}

// All returns the descriptors keyed as served by GET /schema.
func All() map[string]Entity {
	return map[string]Entity{
		"user":    User(),
		"product": Product(),
		"order":   Order(),
	}
}
