package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"brew-commerce/models"
)

// OrderStore is the append-mostly ledger of placed orders. Orders are only
// ever mutated through status transitions, never deleted.
type OrderStore struct {
	collection *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{collection: db.Collection("orders")}
}

// Insert appends a new order to the ledger.
func (s *OrderStore) Insert(ctx context.Context, order *models.Order) error {
	result, err := s.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

// Latest returns the most recently created order, or ErrOrderNotFound when
// the ledger is empty.
func (s *OrderStore) Latest(ctx context.Context) (*models.Order, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var order models.Order
	err := s.collection.FindOne(ctx, bson.M{}, opts).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find latest order: %w", err)
	}
	return &order, nil
}

// FindByEmail returns the order history for one customer, newest first.
func (s *OrderStore) FindByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return s.find(ctx, bson.M{"email": email})
}

// FindAll returns every order, newest first.
func (s *OrderStore) FindAll(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{})
}

func (s *OrderStore) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// FindByID looks up a single order by its document id (hex).
func (s *OrderStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	var order models.Order
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

// UpdateStatus sets the order's lifecycle status.
func (s *OrderStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrOrderNotFound
	}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Cancel marks the order and every item in its snapshot as Cancelled and
// records the customer's reason.
func (s *OrderStore) Cancel(ctx context.Context, id string, reason string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrOrderNotFound
	}
	update := bson.M{"$set": bson.M{
		"status":           models.OrderStatusCancelled,
		"cancel_reason":    reason,
		"items.$[].status": models.OrderStatusCancelled,
		"updated_at":       time.Now(),
	}}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Count returns the total number of orders ever placed.
func (s *OrderStore) Count(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

// Recent returns the n most recently created orders, newest first.
func (s *OrderStore) Recent(ctx context.Context, n int64) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(n)
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find recent orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode recent orders: %w", err)
	}
	return orders, nil
}
