package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a new hex-encoded object id
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ValidateID checks that id is a hex-encoded object id
func ValidateID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
