package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Settings is the single store-wide configuration document.
type Settings struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StoreName             string             `bson:"storeName" json:"store_name"`
	Phone                 string             `bson:"phone" json:"phone"`
	DeliveryFee           float64            `bson:"deliveryFee" json:"delivery_fee"`
	FreeDeliveryThreshold float64            `bson:"freeDeliveryThreshold" json:"free_delivery_threshold"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updated_at"`
}
