package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"pharmacy-backend/internal/apperr"
	"pharmacy-backend/internal/middleware"
	"pharmacy-backend/internal/models"
	"pharmacy-backend/internal/orders"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	Items           []createOrderItemRequest `json:"items"`
	CustomerName    string                   `json:"customer_name"`
	CustomerPhone   string                   `json:"customer_phone"`
	CustomerAddress string                   `json:"customer_address"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

/* =========================
   CREATE ORDER
========================= */

// CreateOrder handles POST /orders. Auth is optional: a resolved
// identity owns the order, otherwise it is a guest checkout.
func CreateOrder(db *mongo.Database, svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		if len(req.Items) == 0 {
			respondAppError(c, route, apperr.Validationf("order items required"))
			return
		}

		items := make([]orders.LineItem, 0, len(req.Items))
		for _, item := range req.Items {
			productID, err := primitive.ObjectIDFromHex(item.ProductID)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid product_id")
				return
			}
			items = append(items, orders.LineItem{ProductID: productID, Quantity: item.Quantity})
		}

		contact := orders.Contact{
			Name:    req.CustomerName,
			Phone:   req.CustomerPhone,
			Address: req.CustomerAddress,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		receipt, err := svc.Create(ctx, items, contact, middleware.IdentityFrom(c))
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":    "order created",
			"order_id":   receipt.OrderID.Hex(),
			"total":      receipt.Total,
			"created_at": receipt.CreatedAt,
		})
	}
}

/* =========================
   LIST / GET
========================= */

func GetOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := svc.List(ctx, middleware.IdentityFrom(c))
		if err != nil {
			respondAppError(c, route, err)
			return
		}
		if list == nil {
			list = []models.Order{}
		}

		c.JSON(http.StatusOK, list)
	}
}

func GetOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondAppError(c, route, apperr.NotFoundf("order not found"))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := svc.Get(ctx, orderID, middleware.IdentityFrom(c))
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

/* =========================
   STATUS / STATS
========================= */

func UpdateOrderStatus(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondAppError(c, route, apperr.NotFoundf("order not found"))
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := svc.SetStatus(ctx, orderID, models.OrderStatus(req.Status), middleware.IdentityFrom(c))
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "order updated",
			"order":   order,
		})
	}
}

func GetOrderStats(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/stats/summary"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		stats, err := svc.Stats(ctx, middleware.IdentityFrom(c))
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}
