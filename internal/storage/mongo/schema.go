package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vanguardgg/sitecms/internal/model"
)

// namespaceExistsCode is returned by create when the collection already exists
const namespaceExistsCode = 48

// EnsureSchema creates indexes and the product validator. Safe to run on
// every start.
func (s *Storage) EnsureSchema(ctx context.Context) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{adminsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		}},
		{newsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		}},
		{productsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "inStock", Value: 1}},
			Options: options.Index().SetName("inStock"),
		}},
		{sessionsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("expiresAt_ttl"),
		}},
	}

	for _, idx := range indexes {
		if _, err := s.db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.collection, err)
		}
	}

	return s.ensureProductValidator(ctx)
}

// productValidator restricts category to the fixed set at the store level
func productValidator() bson.M {
	categories := make(bson.A, 0, len(model.ProductCategories))
	for _, c := range model.ProductCategories {
		categories = append(categories, string(c))
	}
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"name", "price", "image", "category"},
		"properties": bson.M{
			"category": bson.M{"enum": categories},
			"inStock":  bson.M{"bsonType": "bool"},
		},
	}}
}

func (s *Storage) ensureProductValidator(ctx context.Context) error {
	validator := productValidator()

	err := s.db.CreateCollection(ctx, productsCollection, options.CreateCollection().SetValidator(validator))
	if err == nil {
		return nil
	}

	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != namespaceExistsCode {
		return fmt.Errorf("create %s: %w", productsCollection, err)
	}

	// Collection exists: refresh the validator in place
	cmd := bson.D{
		{Key: "collMod", Value: productsCollection},
		{Key: "validator", Value: validator},
	}
	if err := s.db.RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("update %s validator: %w", productsCollection, err)
	}
	return nil
}
