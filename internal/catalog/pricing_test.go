package catalog

import (
	"testing"

	"pharmacy-backend/internal/models"
)

func TestUnitPriceUsesSalePriceWhenOnSale(t *testing.T) {
	onSale := models.Product{Price: 100, SaleEnabled: true, SalePrice: 75}
	if got := UnitPrice(onSale); got != 75 {
		t.Fatalf("expected sale price 75, got %v", got)
	}

	saleOff := models.Product{Price: 100, SaleEnabled: false, SalePrice: 75}
	if got := UnitPrice(saleOff); got != 100 {
		t.Fatalf("expected regular price 100 when sale disabled, got %v", got)
	}
}

func TestUnitPriceIgnoresBogusSale(t *testing.T) {
	tests := []models.Product{
		{Price: 100, SaleEnabled: true, SalePrice: 0},
		{Price: 100, SaleEnabled: true, SalePrice: 100},
		{Price: 100, SaleEnabled: true, SalePrice: 150},
	}
	for _, p := range tests {
		if got := UnitPrice(p); got != 100 {
			t.Fatalf("salePrice=%v: expected regular price, got %v", p.SalePrice, got)
		}
	}
}

func TestValidateSaleFieldsSalePriceGreaterOrEqualPrice(t *testing.T) {
	tests := []float64{100, 120}
	for _, salePrice := range tests {
		err := ValidateSaleFields(100, true, salePrice)
		if err == nil {
			t.Fatalf("expected validation error for salePrice=%v", salePrice)
		}
	}
}

func TestValidateSaleFieldsMissingSalePrice(t *testing.T) {
	if err := ValidateSaleFields(100, true, 0); err == nil {
		t.Fatal("expected validation error when saleEnabled=true and sale_price is missing")
	}
}

func TestValidateSaleFieldsDisabledSaleAlwaysValid(t *testing.T) {
	if err := ValidateSaleFields(100, false, 9999); err != nil {
		t.Fatalf("expected no error when sale disabled, got %v", err)
	}
}
