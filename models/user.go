package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is declared for the schema description only; no route stores users.
type User struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Address  string             `json:"address" bson:"address"`
	IsActive bool               `json:"is_active" bson:"is_active"`
}
