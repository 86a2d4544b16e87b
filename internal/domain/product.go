package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FieldID       = "_id"
	FieldImageURL = "imageUrl"
	// Documents written by older clients may carry the image under this key.
	FieldLegacyImageURL = "image_url"
)

// Product is the document written on creation. Absent form fields are
// stored as null.
type Product struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     *string            `bson:"name"`
	Price    float64            `bson:"price"`
	Category *string            `bson:"category"`
	ImageURL *string            `bson:"imageUrl"`
}
