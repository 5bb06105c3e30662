package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"pharmacy-backend/internal/apperr"
	"pharmacy-backend/internal/models"
)

// Directory is the mongo-backed user record store used by the resolver
// and the auth endpoints.
type Directory struct {
	db *mongo.Database
}

func NewDirectory(db *mongo.Database) *Directory {
	return &Directory{db: db}
}

func (d *Directory) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := d.db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("user not found")
	}
	if err != nil {
		return nil, apperr.Storagef(err, "user lookup failed")
	}
	return &user, nil
}

func (d *Directory) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := d.db.Collection("users").FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("user not found")
	}
	if err != nil {
		return nil, apperr.Storagef(err, "user lookup failed")
	}
	return &user, nil
}

func (d *Directory) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = normalizeEmail(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	res, err := d.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Validationf("email already registered")
		}
		return apperr.Storagef(err, "user insert failed")
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
