package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"pharmacy-backend/internal/catalog"
	"pharmacy-backend/internal/config"
	"pharmacy-backend/internal/database"
	"pharmacy-backend/internal/handlers"
	"pharmacy-backend/internal/identity"
	"pharmacy-backend/internal/middleware"
	"pharmacy-backend/internal/orders"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	directory := identity.NewDirectory(db)
	resolver := identity.NewJWTResolver(config.AppEnv.JWTSecret, directory)
	orderService := orders.NewService(catalog.NewStore(db), orders.NewMongoStore(db))

	r := gin.Default()

	r.POST("/auth/register", handlers.Register(directory, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.POST("/auth/login", handlers.Login(directory, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.GET("/auth/me", middleware.RequireIdentity(resolver), handlers.GetMe())

	r.GET("/products", handlers.GetProducts(db))
	r.POST("/products", middleware.RequireAdmin(resolver), handlers.CreateProduct(db))

	r.GET("/settings", handlers.GetSettings(db))
	r.GET("/settings/delivery-fee", handlers.GetDeliveryFee(db))
	r.PUT("/settings", middleware.RequireAdmin(resolver), handlers.UpdateSettings(db))

	r.POST("/orders", middleware.OptionalIdentity(resolver), handlers.CreateOrder(db, orderService))
	r.GET("/orders", middleware.RequireIdentity(resolver), handlers.GetOrders(orderService))
	r.GET("/orders/stats/summary", middleware.RequireAdmin(resolver), handlers.GetOrderStats(orderService))
	r.GET("/orders/:id", middleware.RequireIdentity(resolver), handlers.GetOrder(orderService))
	r.PUT("/orders/:id", middleware.RequireAdmin(resolver), handlers.UpdateOrderStatus(orderService))

	r.Run(":" + config.AppEnv.Port)
}
