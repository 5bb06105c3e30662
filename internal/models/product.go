package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	SaleEnabled bool               `bson:"saleEnabled" json:"sale_enabled"`
	SalePrice   float64            `bson:"salePrice" json:"sale_price"`
	IsOnSale    bool               `bson:"-" json:"is_on_sale"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Barcode     string             `bson:"barcode,omitempty" json:"barcode,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	IsActive    bool               `bson:"isActive" json:"is_active"`
	IsDeleted   bool               `bson:"isDeleted" json:"is_deleted,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
}
