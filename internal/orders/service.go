// Package orders implements the order core: the creation transaction
// (validate every line against the catalog, price from catalog data,
// persist header and lines as one atomic unit) and the access policy
// gating who sees and mutates orders.
package orders

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pharmacy-backend/internal/apperr"
	"pharmacy-backend/internal/catalog"
	"pharmacy-backend/internal/identity"
	"pharmacy-backend/internal/models"
)

// Catalog is the product lookup collaborator. Its prices are ground
// truth; client-supplied prices are never consulted.
type Catalog interface {
	Product(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// Store persists and reads orders. Insert must be atomic: a concurrent
// reader sees either the whole order or nothing.
type Store interface {
	Insert(ctx context.Context, order *models.Order) error
	ListAll(ctx context.Context) ([]models.Order, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Order, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error)
	Stats(ctx context.Context) (*models.OrderStats, error)
}

// LineItem is one requested line of a checkout: product and quantity,
// nothing else is trusted from the request.
type LineItem struct {
	ProductID primitive.ObjectID
	Quantity  int
}

// Contact carries the explicit contact fields of a checkout request.
// Empty fields fall back to the caller's profile.
type Contact struct {
	Name    string
	Phone   string
	Address string
}

// Receipt is what a successful creation returns to the caller.
type Receipt struct {
	OrderID   primitive.ObjectID
	Total     float64
	CreatedAt time.Time
}

type Service struct {
	catalog Catalog
	store   Store
}

func NewService(cat Catalog, store Store) *Service {
	return &Service{catalog: cat, store: store}
}

// Create validates every line against the catalog, computes the total
// from catalog prices and persists the order with its item snapshots.
// Any miss aborts the whole call before anything is written.
func (s *Service) Create(ctx context.Context, items []LineItem, contact Contact, caller *identity.Identity) (*Receipt, error) {
	if len(items) == 0 {
		return nil, apperr.Validationf("order items required")
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	var total float64

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, apperr.Validationf("quantity must be greater than zero")
		}

		product, err := s.catalog.Product(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		unitPrice := catalog.UnitPrice(*product)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     unitPrice,
			Quantity:  item.Quantity,
		})
		total += unitPrice * float64(item.Quantity)
	}

	order := &models.Order{
		Items:     orderItems,
		Total:     total,
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}
	if caller != nil {
		id := caller.ID
		order.UserID = &id
	}
	order.CustomerName, order.CustomerPhone, order.CustomerAddress = resolveContact(contact, caller)

	if err := s.store.Insert(ctx, order); err != nil {
		return nil, err
	}

	if order.UserID != nil {
		log.Println("[ORDER] [INFO] order created for user:", order.UserID.Hex())
	} else {
		log.Println("[ORDER] [INFO] guest order created")
	}

	return &Receipt{
		OrderID:   order.ID,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}, nil
}

// resolveContact picks each contact field independently: explicit
// request value first, then the caller's stored profile, then the
// guest fallback.
func resolveContact(contact Contact, caller *identity.Identity) (name, phone, address string) {
	name = contact.Name
	phone = contact.Phone
	address = contact.Address

	if caller != nil {
		if name == "" {
			name = caller.Name
		}
		if phone == "" {
			phone = caller.Phone
		}
		if address == "" {
			address = caller.Address
		}
	}

	if name == "" {
		name = "Guest"
	}
	return name, phone, address
}
