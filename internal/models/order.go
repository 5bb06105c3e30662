package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus enumerates the recognized order states. Any state may
// transition to any other; only admins perform transitions.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the recognized states.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is one purchased line. Name and Price are snapshots of the
// catalog at order-creation time; later catalog edits never touch them.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"product_id"`
	Name      string             `bson:"name" json:"product_name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Order is the persisted order document. Items are embedded, so the
// header and its lines are written as a single document and can never
// be observed partially. Only Status changes after creation.
type Order struct {
	ID     primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID *primitive.ObjectID `bson:"userId" json:"user_id"`
	Items  []OrderItem         `bson:"items" json:"items,omitempty"`
	Total  float64             `bson:"total" json:"total"`
	Status OrderStatus         `bson:"status" json:"status"`

	// Contact snapshot captured at creation time.
	CustomerName    string `bson:"customerName" json:"customer_name"`
	CustomerPhone   string `bson:"customerPhone" json:"customer_phone,omitempty"`
	CustomerAddress string `bson:"customerAddress" json:"customer_address,omitempty"`

	// Owning account annotations, populated only on admin listings.
	AccountName  string `bson:"-" json:"account_name,omitempty"`
	AccountEmail string `bson:"-" json:"account_email,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// OrderStats is the admin summary across all orders. Revenue counts
// completed and shipped orders only.
type OrderStats struct {
	TotalOrders     int64   `json:"total_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	CompletedOrders int64   `json:"completed_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
}
