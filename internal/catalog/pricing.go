package catalog

import (
	"fmt"

	"pharmacy-backend/internal/models"
)

// IsOnSale reports whether the sale price currently undercuts the
// regular price.
func IsOnSale(price float64, saleEnabled bool, salePrice float64) bool {
	return saleEnabled && salePrice > 0 && salePrice < price
}

// UnitPrice is the authoritative price a buyer pays right now: the
// sale price while a valid sale is active, the regular price otherwise.
func UnitPrice(p models.Product) float64 {
	if IsOnSale(p.Price, p.SaleEnabled, p.SalePrice) {
		return p.SalePrice
	}
	return p.Price
}

// ValidateSaleFields rejects sale configurations that could never take
// effect or would raise the price.
func ValidateSaleFields(price float64, saleEnabled bool, salePrice float64) error {
	if !saleEnabled {
		return nil
	}
	if salePrice <= 0 {
		return fmt.Errorf("sale_price must be greater than 0")
	}
	if salePrice >= price {
		return fmt.Errorf("sale_price must be less than price")
	}
	return nil
}
