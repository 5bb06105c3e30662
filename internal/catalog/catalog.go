// Package catalog is the authoritative product record store. The order
// core consumes it through an interface and trusts its prices over
// anything a client sends.
package catalog

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"pharmacy-backend/internal/apperr"
	"pharmacy-backend/internal/models"
)

// Store looks products up in the products collection. Soft-deleted and
// deactivated products are treated as absent.
type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) Product(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.db.Collection("products").FindOne(ctx, bson.M{
		"_id":       id,
		"isActive":  bson.M{"$ne": false},
		"isDeleted": bson.M{"$ne": true},
	}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("product %s not found", id.Hex())
	}
	if err != nil {
		return nil, apperr.Storagef(err, "product lookup failed")
	}

	product.IsOnSale = IsOnSale(product.Price, product.SaleEnabled, product.SalePrice)
	return &product, nil
}
