package orders

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pharmacy-backend/internal/apperr"
	"pharmacy-backend/internal/models"
)

// MongoStore persists orders in the orders collection. Items are
// embedded in the order document, so a single InsertOne is the atomic
// unit of work: readers see the whole order or nothing, and a failed
// insert leaves no rows behind.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (m *MongoStore) Insert(ctx context.Context, order *models.Order) error {
	res, err := m.db.Collection("orders").InsertOne(ctx, order)
	if err != nil {
		return apperr.Storagef(err, "order insert failed")
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

// listProjection drops the embedded items from listings; they are only
// returned by Get, matching the header/detail split of the API.
var listProjection = bson.M{"items": 0}

func (m *MongoStore) ListAll(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(listProjection)

	cursor, err := m.db.Collection("orders").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Storagef(err, "order list failed")
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, apperr.Storagef(err, "order decode failed")
	}

	if err := m.annotateAccounts(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (m *MongoStore) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(listProjection)

	cursor, err := m.db.Collection("orders").Find(ctx, bson.M{"userId": owner}, opts)
	if err != nil {
		return nil, apperr.Storagef(err, "order list failed")
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, apperr.Storagef(err, "order decode failed")
	}
	return orders, nil
}

func (m *MongoStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := m.db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("order not found")
	}
	if err != nil {
		return nil, apperr.Storagef(err, "order lookup failed")
	}
	return &order, nil
}

func (m *MongoStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := m.db.Collection("orders").FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		opts,
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("order not found")
	}
	if err != nil {
		return nil, apperr.Storagef(err, "order status update failed")
	}
	return &order, nil
}

func (m *MongoStore) Stats(ctx context.Context) (*models.OrderStats, error) {
	col := m.db.Collection("orders")

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Storagef(err, "order count failed")
	}
	pending, err := col.CountDocuments(ctx, bson.M{"status": models.StatusPending})
	if err != nil {
		return nil, apperr.Storagef(err, "order count failed")
	}
	completed, err := col.CountDocuments(ctx, bson.M{"status": models.StatusCompleted})
	if err != nil {
		return nil, apperr.Storagef(err, "order count failed")
	}

	// Revenue counts orders that actually went out the door.
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status": bson.M{"$in": bson.A{models.StatusCompleted, models.StatusShipped}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total"},
		}}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Storagef(err, "revenue aggregation failed")
	}
	defer cursor.Close(ctx)

	var revenue float64
	if cursor.Next(ctx) {
		var row struct {
			Total float64 `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, apperr.Storagef(err, "revenue decode failed")
		}
		revenue = row.Total
	}

	return &models.OrderStats{
		TotalOrders:     total,
		PendingOrders:   pending,
		CompletedOrders: completed,
		TotalRevenue:    revenue,
	}, nil
}

// annotateAccounts fills AccountName/AccountEmail for admin listings
// with a single $in lookup against the users collection.
func (m *MongoStore) annotateAccounts(ctx context.Context, orders []models.Order) error {
	ids := make([]primitive.ObjectID, 0, len(orders))
	seen := make(map[primitive.ObjectID]bool, len(orders))
	for _, order := range orders {
		if order.UserID != nil && !seen[*order.UserID] {
			seen[*order.UserID] = true
			ids = append(ids, *order.UserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	cursor, err := m.db.Collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return apperr.Storagef(err, "account annotation failed")
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return apperr.Storagef(err, "account decode failed")
	}

	byID := make(map[primitive.ObjectID]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	for i := range orders {
		if orders[i].UserID == nil {
			continue
		}
		if user, ok := byID[*orders[i].UserID]; ok {
			orders[i].AccountName = user.Name
			orders[i].AccountEmail = user.Email
		}
	}
	return nil
}
