// Package identity resolves bearer credentials into verified caller
// identities. A missing or bad credential resolves to nil, never an
// error; endpoints that require authentication reject nil themselves.
package identity

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pharmacy-backend/internal/models"
)

// Identity is a verified caller: account id, authoritative role and
// the profile fields order creation may fall back to.
type Identity struct {
	ID      primitive.ObjectID
	Name    string
	Email   string
	Phone   string
	Address string
	Role    string
}

// IsAdmin is nil-safe so anonymous callers can be asked directly.
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == models.RoleAdmin
}

// Owns reports whether this identity owns the account userID points
// at. Nil identities and guest orders (nil userID) own nothing.
func (id *Identity) Owns(userID *primitive.ObjectID) bool {
	return id != nil && userID != nil && id.ID == *userID
}

// Resolver turns the raw Authorization header into an identity.
// (nil, nil) means anonymous; an error is only returned when the
// backing store failed and the caller cannot be classified at all.
type Resolver interface {
	Resolve(ctx context.Context, authHeader string) (*Identity, error)
}
