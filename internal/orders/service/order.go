package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	customErrors "github.com/sawant8123/storefront-service/internal/errors"
	"github.com/sawant8123/storefront-service/internal/events"
	"github.com/sawant8123/storefront-service/internal/model"
	"github.com/sawant8123/storefront-service/internal/repository"
)

type OrderService struct {
	orders    repository.OrderRepository
	pickup    ReversePickup
	publisher events.Publisher
}

func NewOrderService(orders repository.OrderRepository, pickup ReversePickup, publisher events.Publisher) *OrderService {
	return &OrderService{
		orders:    orders,
		pickup:    pickup,
		publisher: publisher,
	}
}

func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

// ApplyAction runs a lifecycle action on one of the user's orders. Escalation
// leaves the order untouched and only emits an event.
func (s *OrderService) ApplyAction(ctx context.Context, userID, orderID, rawAction string) error {
	order, err := s.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return err
	}

	action, err := model.ParseOrderAction(rawAction)
	if err != nil {
		return customErrors.UnknownAction
	}

	switch action {
	case model.OrderActionEscalate:
		log.Printf("Issue escalated for: %s", orderID)
		s.emit(ctx, events.OrderEscalated, order)
		return nil
	case model.OrderActionCancel:
		order.Status = model.OrderStatusCancelled
	case model.OrderActionReturn:
		order.Status = model.OrderStatusReturnRequested
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return fmt.Errorf("failed to save order %s: %w", orderID, err)
	}

	if action == model.OrderActionCancel {
		s.emit(ctx, events.OrderCancelled, order)
	} else {
		s.emit(ctx, events.ReturnMarked, order)
	}
	return nil
}

// RequestReturn books a reverse pickup for a delivered order. Only one return
// may be requested per order.
func (s *OrderService) RequestReturn(ctx context.Context, userID, orderID string) (*model.Order, *model.PickupRecord, error) {
	order, err := s.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, nil, err
	}

	if order.Status != model.OrderStatusDelivered {
		return nil, nil, customErrors.ReturnNotAllowed
	}
	if order.ReturnRequested {
		return nil, nil, customErrors.ReturnAlreadyRequested
	}

	pickup, err := s.pickup.SchedulePickup(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to schedule pickup for order %s: %w", orderID, err)
	}

	order.ReturnRequested = true
	order.ReturnInfo = pickup.ReturnInfo()
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, nil, fmt.Errorf("failed to save order %s: %w", orderID, err)
	}

	s.emit(ctx, events.ReturnRequested, order)
	return order, pickup, nil
}

// ownedOrder hides orders of other users behind the same not-found error.
func (s *OrderService) ownedOrder(ctx context.Context, userID, orderID string) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, customErrors.OrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(userID) {
		return nil, customErrors.OrderNotFound
	}
	return order, nil
}

func (s *OrderService) emit(ctx context.Context, eventType events.Type, order *model.Order) {
	err := s.publisher.Publish(ctx, events.OrderEvent{
		Type:      eventType,
		OrderID:   order.ID.Hex(),
		UserID:    order.UserID.Hex(),
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("Failed to publish %s for order %s: %v", eventType, order.ID.Hex(), err)
	}
}
