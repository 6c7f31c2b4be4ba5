package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sawant8123/storefront-service/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type orderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepository{coll: db.Collection(OrdersCollection)}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	if !order.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, order.Status)
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var order model.Order
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) FindByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	orders := []*model.Order{}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return orders, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"userId": oid})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) Save(ctx context.Context, order *model.Order) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", order.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
