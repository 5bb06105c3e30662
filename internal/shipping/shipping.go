// Package shipping holds the delivery fee rule: a flat fee, waived at
// or above the store's free-delivery threshold.
package shipping

import "pharmacy-backend/internal/models"

// Fee returns the delivery fee for a basket subtotal under the given
// store settings. A threshold of zero disables free delivery.
func Fee(s models.Settings, subtotal float64) float64 {
	if s.FreeDeliveryThreshold > 0 && subtotal >= s.FreeDeliveryThreshold {
		return 0
	}
	return s.DeliveryFee
}
