package service

import (
	"context"
	"log"
	"time"

	customErrors "github.com/sawant8123/storefront-service/internal/errors"
	"github.com/sawant8123/storefront-service/internal/events"
	"github.com/sawant8123/storefront-service/internal/model"
	"github.com/sawant8123/storefront-service/internal/repository"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const singleItemDeliveryDays = 3

type CheckoutService struct {
	users     repository.UserRepository
	orders    repository.OrderRepository
	tx        repository.Transactor
	publisher events.Publisher
	now       func() time.Time
}

func NewCheckoutService(
	users repository.UserRepository,
	orders repository.OrderRepository,
	tx repository.Transactor,
	publisher events.Publisher,
) *CheckoutService {
	return &CheckoutService{
		users:     users,
		orders:    orders,
		tx:        tx,
		publisher: publisher,
		now:       time.Now,
	}
}

// CheckoutAll turns every cart line into a Placed order and empties the cart.
//
// Order ids are allocated up front and the user document is saved before the
// orders are inserted, so a concurrent cart change aborts the attempt before
// anything is written. Without transactions a failed insert leaves ids in
// user.Orders that resolve to nothing.
func (s *CheckoutService) CheckoutAll(ctx context.Context, userID string) ([]*model.Order, error) {
	var placed []*model.Order

	_, err := mutateUser(ctx, s.users, s.tx, userID, func(txCtx context.Context, u *model.User) (bool, error) {
		if len(u.Cart) == 0 {
			return false, customErrors.CartEmpty
		}

		today := s.now().UTC()
		placed = make([]*model.Order, 0, len(u.Cart))
		for _, item := range u.Cart {
			order := newOrder(u.ID, item, today, nil)
			u.Orders = append(u.Orders, order.ID.Hex())
			placed = append(placed, order)
		}
		u.Cart = []model.CartItem{}

		if err := s.users.Save(txCtx, u); err != nil {
			return false, err
		}
		for _, order := range placed {
			if err := s.orders.Create(txCtx, order); err != nil {
				return false, err
			}
			log.Printf("Order created: %s (%s x %.2f)", order.ID.Hex(), order.ProductName, order.Price)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	for _, order := range placed {
		s.emit(ctx, events.OrderPlaced, order)
	}
	return placed, nil
}

// CheckoutOne places an order for a single cart line, delivered three days out.
func (s *CheckoutService) CheckoutOne(ctx context.Context, userID, productID string) (*model.Order, error) {
	var placed *model.Order

	_, err := mutateUser(ctx, s.users, s.tx, userID, func(txCtx context.Context, u *model.User) (bool, error) {
		idx := findCartLine(u.Cart, productID)
		if idx == -1 {
			return false, customErrors.ProductNotInCart
		}
		item := u.Cart[idx]
		u.Cart = append(u.Cart[:idx], u.Cart[idx+1:]...)

		today := s.now().UTC()
		deliveryDate := today.AddDate(0, 0, singleItemDeliveryDays).Format(model.DateLayout)
		placed = newOrder(u.ID, item, today, &deliveryDate)
		u.Orders = append(u.Orders, placed.ID.Hex())

		if err := s.users.Save(txCtx, u); err != nil {
			return false, err
		}
		if err := s.orders.Create(txCtx, placed); err != nil {
			return false, err
		}
		log.Printf("Single product order created: %s (%s)", placed.ID.Hex(), placed.ProductName)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.OrderPlaced, placed)
	return placed, nil
}

func (s *CheckoutService) emit(ctx context.Context, eventType events.Type, order *model.Order) {
	err := s.publisher.Publish(ctx, events.OrderEvent{
		Type:      eventType,
		OrderID:   order.ID.Hex(),
		UserID:    order.UserID.Hex(),
		Timestamp: s.now(),
	})
	if err != nil {
		log.Printf("Failed to publish %s for order %s: %v", eventType, order.ID.Hex(), err)
	}
}

func newOrder(userID primitive.ObjectID, item model.CartItem, placedAt time.Time, deliveryDate *string) *model.Order {
	return &model.Order{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		ProductName:  item.Title,
		Status:       model.OrderStatusPlaced,
		Price:        lineTotal(item),
		Date:         placedAt.Format(model.DateLayout),
		DeliveryDate: deliveryDate,
	}
}

func lineTotal(item model.CartItem) float64 {
	quantity := item.Quantity
	if quantity == 0 {
		quantity = 1
	}
	return decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(quantity))).InexactFloat64()
}
