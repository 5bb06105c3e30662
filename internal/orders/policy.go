package orders

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pharmacy-backend/internal/apperr"
	"pharmacy-backend/internal/identity"
	"pharmacy-backend/internal/models"
)

// List returns the orders the caller may see, newest first: all of
// them for admins (annotated with the owning account), otherwise only
// the caller's own.
func (s *Service) List(ctx context.Context, caller *identity.Identity) ([]models.Order, error) {
	if caller == nil {
		return nil, apperr.Unauthorizedf("authentication required")
	}
	if caller.IsAdmin() {
		return s.store.ListAll(ctx)
	}
	return s.store.ListByOwner(ctx, caller.ID)
}

// Get returns one order with its line items. Only admins and the
// order's owner may read it.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID, caller *identity.Identity) (*models.Order, error) {
	if caller == nil {
		return nil, apperr.Unauthorizedf("authentication required")
	}

	order, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() && !caller.Owns(order.UserID) {
		return nil, apperr.Forbiddenf("access denied")
	}
	return order, nil
}

// SetStatus moves an order to a new state. Admin only; any recognized
// state may follow any other. Total, items and the contact snapshot
// are never touched.
func (s *Service) SetStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, caller *identity.Identity) (*models.Order, error) {
	if caller == nil {
		return nil, apperr.Unauthorizedf("authentication required")
	}
	if !caller.IsAdmin() {
		return nil, apperr.Forbiddenf("admin access required")
	}
	if !models.ValidOrderStatus(status) {
		return nil, apperr.Validationf("invalid status %q", status)
	}
	return s.store.UpdateStatus(ctx, id, status)
}

// Stats returns the admin order summary.
func (s *Service) Stats(ctx context.Context, caller *identity.Identity) (*models.OrderStats, error) {
	if caller == nil {
		return nil, apperr.Unauthorizedf("authentication required")
	}
	if !caller.IsAdmin() {
		return nil, apperr.Forbiddenf("admin access required")
	}
	return s.store.Stats(ctx)
}
