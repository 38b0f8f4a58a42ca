package services

import "storefront-service/models"

func strPtr(s string) *string { return &s }

// sampleCatalog is inserted by POST /api/seed. Every call inserts a fresh
// copy; duplicates are expected.
func sampleCatalog() []models.Product {
	return []models.Product{
		{
			Title:       "Vintage Leather Backpack",
			Description: strPtr("Handcrafted full-grain leather backpack with padded laptop sleeve."),
			Price:       129.99,
			Category:    "Bags",
			Image:       strPtr("https://images.unsplash.com/photo-1514477917009-389c76a86b68?q=80&w=1200&auto=format&fit=crop"),
			InStock:     true,
		},
		{
			Title:       "Minimalist Watch",
			Description: strPtr("Stainless steel case, sapphire glass, Japanese movement."),
			Price:       89.00,
			Category:    "Accessories",
			Image:       strPtr("https://images.unsplash.com/photo-1511379938547-c1f69419868d?q=80&w=1200&auto=format&fit=crop"),
			InStock:     true,
		},
		{
			Title:       "Wireless Headphones",
			Description: strPtr("Active noise cancellation with 30h battery life."),
			Price:       159.00,
			Category:    "Audio",
			Image:       strPtr("https://images.unsplash.com/photo-1518443254571-1f1e5b2d1a1f?q=80&w=1200&auto=format&fit=crop"),
			InStock:     true,
		},
		{
			Title:       "Ceramic Mug",
			Description: strPtr("Matte glaze 12oz mug, microwave and dishwasher safe."),
			Price:       18.50,
			Category:    "Home",
			Image:       strPtr("https://images.unsplash.com/photo-1512100356356-de1b84283e18?q=80&w=1200&auto=format&fit=crop"),
			InStock:     true,
		},
	}
}
