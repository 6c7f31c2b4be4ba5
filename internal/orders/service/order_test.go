package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	customErrors "github.com/sawant8123/storefront-service/internal/errors"
	"github.com/sawant8123/storefront-service/internal/events"
	"github.com/sawant8123/storefront-service/internal/model"
	"github.com/sawant8123/storefront-service/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

type failingPickup struct{}

func (failingPickup) SchedulePickup(context.Context, string) (*model.PickupRecord, error) {
	return nil, errors.New("courier unavailable")
}

var pickupNow = time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)

func setupOrderService(t *testing.T) (*OrderService, *memory.Store, *recordingPublisher) {
	t.Helper()
	store := memory.NewStore()
	pub := &recordingPublisher{}
	courier := NewSimulatedCourier()
	courier.now = func() time.Time { return pickupNow }
	return NewOrderService(store.Orders(), courier, pub), store, pub
}

func seedOrder(t *testing.T, store *memory.Store, userID primitive.ObjectID, status model.OrderStatus) *model.Order {
	t.Helper()
	order := &model.Order{
		UserID:      userID,
		ProductName: "Phone",
		Status:      status,
		Price:       100,
		Date:        "2024-03-01",
	}
	require.NoError(t, store.Orders().Create(context.Background(), order))
	return order
}

func TestListOrders(t *testing.T) {
	svc, store, _ := setupOrderService(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	first := seedOrder(t, store, owner, model.OrderStatusPlaced)
	seedOrder(t, store, primitive.NewObjectID(), model.OrderStatusPlaced)
	second := seedOrder(t, store, owner, model.OrderStatusShipped)

	orders, err := svc.ListOrders(ctx, owner.Hex())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, second.ID, orders[1].ID)

	orders, err = svc.ListOrders(ctx, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestApplyAction(t *testing.T) {
	tests := []struct {
		action     string
		wantStatus model.OrderStatus
		wantEvent  events.Type
	}{
		{action: "escalate", wantStatus: model.OrderStatusShipped, wantEvent: events.OrderEscalated},
		{action: "cancel", wantStatus: model.OrderStatusCancelled, wantEvent: events.OrderCancelled},
		{action: "return", wantStatus: model.OrderStatusReturnRequested, wantEvent: events.ReturnMarked},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			svc, store, pub := setupOrderService(t)
			ctx := context.Background()
			owner := primitive.NewObjectID()
			order := seedOrder(t, store, owner, model.OrderStatusShipped)

			require.NoError(t, svc.ApplyAction(ctx, owner.Hex(), order.ID.Hex(), tt.action))

			stored, err := store.Orders().GetByID(ctx, order.ID.Hex())
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, stored.Status)
			assert.False(t, stored.ReturnRequested)
			assert.Equal(t, []events.Type{tt.wantEvent}, pub.types())
		})
	}
}

func TestApplyAction_Rejections(t *testing.T) {
	svc, store, pub := setupOrderService(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	order := seedOrder(t, store, owner, model.OrderStatusPlaced)

	err := svc.ApplyAction(ctx, owner.Hex(), order.ID.Hex(), "refund")
	assert.ErrorIs(t, err, customErrors.UnknownAction)

	err = svc.ApplyAction(ctx, owner.Hex(), primitive.NewObjectID().Hex(), "cancel")
	assert.ErrorIs(t, err, customErrors.OrderNotFound)

	err = svc.ApplyAction(ctx, owner.Hex(), "bogus", "cancel")
	assert.ErrorIs(t, err, customErrors.OrderNotFound)

	err = svc.ApplyAction(ctx, primitive.NewObjectID().Hex(), order.ID.Hex(), "cancel")
	assert.ErrorIs(t, err, customErrors.OrderNotFound)

	stored, err := store.Orders().GetByID(ctx, order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPlaced, stored.Status)
	assert.Empty(t, pub.types())
}

func TestRequestReturn(t *testing.T) {
	svc, store, pub := setupOrderService(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	order := seedOrder(t, store, owner, model.OrderStatusDelivered)

	updated, pickup, err := svc.RequestReturn(ctx, owner.Hex(), order.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, DefaultCourier, pickup.Courier)
	assert.Equal(t, PickupStatusBooked, pickup.Status)
	assert.Equal(t, pickupNow.Add(48*time.Hour), pickup.ScheduledDate)
	assert.NotEmpty(t, pickup.TrackingID)

	assert.True(t, updated.ReturnRequested)
	assert.Equal(t, model.OrderStatusDelivered, updated.Status)
	assert.Equal(t, &model.ReturnInfo{Status: "Pickup Scheduled", PickupDate: "2024-03-12", Courier: "Delhivery"}, updated.ReturnInfo)

	stored, err := store.Orders().GetByID(ctx, order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
	assert.Equal(t, []events.Type{events.ReturnRequested}, pub.types())

	_, _, err = svc.RequestReturn(ctx, owner.Hex(), order.ID.Hex())
	assert.ErrorIs(t, err, customErrors.ReturnAlreadyRequested)
}

func TestRequestReturn_Rejections(t *testing.T) {
	svc, store, _ := setupOrderService(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	for _, status := range []model.OrderStatus{
		model.OrderStatusPlaced,
		model.OrderStatusShipped,
		model.OrderStatusCancelled,
		model.OrderStatusReturnRequested,
	} {
		order := seedOrder(t, store, owner, status)
		_, _, err := svc.RequestReturn(ctx, owner.Hex(), order.ID.Hex())
		assert.ErrorIs(t, err, customErrors.ReturnNotAllowed, status)
	}

	delivered := seedOrder(t, store, owner, model.OrderStatusDelivered)
	_, _, err := svc.RequestReturn(ctx, primitive.NewObjectID().Hex(), delivered.ID.Hex())
	assert.ErrorIs(t, err, customErrors.OrderNotFound)

	_, _, err = svc.RequestReturn(ctx, owner.Hex(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, customErrors.OrderNotFound)
}

func TestRequestReturn_PickupFailureLeavesOrderUntouched(t *testing.T) {
	store := memory.NewStore()
	svc := NewOrderService(store.Orders(), failingPickup{}, events.Nop{})
	ctx := context.Background()
	owner := primitive.NewObjectID()
	order := seedOrder(t, store, owner, model.OrderStatusDelivered)

	_, _, err := svc.RequestReturn(ctx, owner.Hex(), order.ID.Hex())
	require.Error(t, err)

	stored, err := store.Orders().GetByID(ctx, order.ID.Hex())
	require.NoError(t, err)
	assert.False(t, stored.ReturnRequested)
	assert.Nil(t, stored.ReturnInfo)
}
