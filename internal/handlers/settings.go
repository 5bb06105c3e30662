package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pharmacy-backend/internal/models"
	"pharmacy-backend/internal/shipping"
)

type updateSettingsRequest struct {
	StoreName             *string  `json:"store_name"`
	Phone                 *string  `json:"phone"`
	DeliveryFee           *float64 `json:"delivery_fee"`
	FreeDeliveryThreshold *float64 `json:"free_delivery_threshold"`
}

// defaultSettings is returned before any settings document exists.
func defaultSettings() models.Settings {
	return models.Settings{
		StoreName:   "صيدلية الشفاء",
		DeliveryFee: 15.00,
	}
}

func loadSettings(ctx context.Context, db *mongo.Database) (models.Settings, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})

	var settings models.Settings
	err := db.Collection("settings").FindOne(ctx, bson.M{}, opts).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return defaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// GetSettings handles GET /settings (public).
func GetSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /settings"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		settings, err := loadSettings(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}

// UpdateSettings handles PUT /settings (admin). Absent fields keep
// their stored values.
func UpdateSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /settings"
		defer handlePanic(c, route)

		var req updateSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		if req.DeliveryFee != nil && *req.DeliveryFee < 0 {
			respondWithError(c, http.StatusBadRequest, route, "delivery_fee must not be negative")
			return
		}
		if req.FreeDeliveryThreshold != nil && *req.FreeDeliveryThreshold < 0 {
			respondWithError(c, http.StatusBadRequest, route, "free_delivery_threshold must not be negative")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		settings, err := loadSettings(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if req.StoreName != nil {
			settings.StoreName = *req.StoreName
		}
		if req.Phone != nil {
			settings.Phone = *req.Phone
		}
		if req.DeliveryFee != nil {
			settings.DeliveryFee = *req.DeliveryFee
		}
		if req.FreeDeliveryThreshold != nil {
			settings.FreeDeliveryThreshold = *req.FreeDeliveryThreshold
		}
		settings.UpdatedAt = time.Now()

		filter := bson.M{}
		if !settings.ID.IsZero() {
			filter = bson.M{"_id": settings.ID}
		}

		update := bson.M{"$set": bson.M{
			"storeName":             settings.StoreName,
			"phone":                 settings.Phone,
			"deliveryFee":           settings.DeliveryFee,
			"freeDeliveryThreshold": settings.FreeDeliveryThreshold,
			"updatedAt":             settings.UpdatedAt,
		}}

		opts := options.Update().SetUpsert(true)
		if _, err := db.Collection("settings").UpdateOne(ctx, filter, update, opts); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "settings updated",
			"settings": settings,
		})
	}
}

// GetDeliveryFee handles GET /settings/delivery-fee?subtotal= and
// quotes the shipping rule for a basket subtotal.
func GetDeliveryFee(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /settings/delivery-fee"
		defer handlePanic(c, route)

		subtotal, err := strconv.ParseFloat(c.Query("subtotal"), 64)
		if err != nil || subtotal < 0 {
			respondWithError(c, http.StatusBadRequest, route, "invalid subtotal")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		settings, err := loadSettings(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"subtotal":                subtotal,
			"delivery_fee":            shipping.Fee(settings, subtotal),
			"free_delivery_threshold": settings.FreeDeliveryThreshold,
		})
	}
}
