package database

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// IDField is the store-generated identifier field of every document.
	IDField = "_id"
	// APIIDField is the public name of the identifier in API responses.
	APIIDField = "id"
)

// Document is a plain field mapping as persisted in a collection.
type Document = bson.M

// ParseID converts a hex string into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}

// ToAPIShape returns a copy of doc with _id renamed to id and every top-level
// ObjectID value converted to its hex string. Empty documents are returned as is.
func ToAPIShape(doc Document) Document {
	if len(doc) == 0 {
		return doc
	}

	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = stringifyID(v)
	}

	if id, ok := doc[IDField]; ok && id != nil {
		delete(out, IDField)
		out[APIIDField] = stringifyID(id)
	}
	return out
}

// ToAPIShapes applies ToAPIShape to every document. The result is never nil.
func ToAPIShapes(docs []Document) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, ToAPIShape(d))
	}
	return out
}

func stringifyID(v interface{}) interface{} {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case *primitive.ObjectID:
		if id != nil {
			return id.Hex()
		}
	}
	return v
}
