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
	"github.com/sawant8123/storefront-service/internal/repository"
	"github.com/sawant8123/storefront-service/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

// racingUsers lets another writer slip in before the first Save.
type racingUsers struct {
	repository.UserRepository
	once sync.Once
}

func (r *racingUsers) Save(ctx context.Context, user *model.User) error {
	r.once.Do(func() {
		other, err := r.UserRepository.GetByID(ctx, user.ID.Hex())
		if err == nil {
			other.Wishlist = append(other.Wishlist, model.WishlistItem{ProductID: 99})
			_ = r.UserRepository.Save(ctx, other)
		}
	})
	return r.UserRepository.Save(ctx, user)
}

var fixedNow = time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)

func setupCheckout(t *testing.T) (*CheckoutService, *CartService, *memory.Store, *recordingPublisher, string) {
	t.Helper()
	store := memory.NewStore()
	pub := &recordingPublisher{}
	checkout := NewCheckoutService(store.Users(), store.Orders(), store.Transactor(), pub)
	checkout.now = func() time.Time { return fixedNow }
	return checkout, NewCartService(store.Users(), store.Transactor()), store, pub, seedUser(t, store)
}

func TestCheckoutAll(t *testing.T) {
	checkout, cart, store, pub, userID := setupCheckout(t)
	ctx := context.Background()

	_, err := cart.AddToCart(ctx, userID, model.AddCartItemInput{ProductID: 1, Title: "Phone", Price: 100, Quantity: 2})
	require.NoError(t, err)
	_, err = cart.AddToCart(ctx, userID, model.AddCartItemInput{ProductID: 2, Title: "Cable", Price: 0.1, Quantity: 3})
	require.NoError(t, err)

	orders, err := checkout.CheckoutAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "Phone", orders[0].ProductName)
	assert.Equal(t, 200.0, orders[0].Price)
	assert.Equal(t, 0.3, orders[1].Price)
	for _, o := range orders {
		assert.Equal(t, model.OrderStatusPlaced, o.Status)
		assert.Equal(t, "2024-03-10", o.Date)
		assert.Nil(t, o.DeliveryDate)
		assert.False(t, o.ReturnRequested)
	}

	user, err := store.Users().GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, user.Cart)
	assert.Equal(t, []string{orders[0].ID.Hex(), orders[1].ID.Hex()}, user.Orders)

	stored, err := store.Orders().FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	require.Len(t, pub.events, 2)
	assert.Equal(t, events.OrderPlaced, pub.events[0].Type)
	assert.Equal(t, orders[0].ID.Hex(), pub.events[0].OrderID)
}

func TestCheckoutAll_EmptyCart(t *testing.T) {
	checkout, _, _, pub, userID := setupCheckout(t)

	_, err := checkout.CheckoutAll(context.Background(), userID)
	assert.ErrorIs(t, err, customErrors.CartEmpty)
	assert.Empty(t, pub.events)
}

func TestCheckoutAll_PublishFailureDoesNotFail(t *testing.T) {
	checkout, cart, _, pub, userID := setupCheckout(t)
	ctx := context.Background()
	pub.err = errors.New("redis down")

	_, err := cart.AddToCart(ctx, userID, model.AddCartItemInput{ProductID: 1, Title: "Phone", Price: 100})
	require.NoError(t, err)

	orders, err := checkout.CheckoutAll(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCheckoutAll_RetriesOnConcurrentWrite(t *testing.T) {
	store := memory.NewStore()
	userID := seedUser(t, store)
	ctx := context.Background()

	cart := NewCartService(store.Users(), store.Transactor())
	_, err := cart.AddToCart(ctx, userID, model.AddCartItemInput{ProductID: 1, Title: "Phone", Price: 100})
	require.NoError(t, err)

	racing := &racingUsers{UserRepository: store.Users()}
	checkout := NewCheckoutService(racing, store.Orders(), store.Transactor(), events.Nop{})

	orders, err := checkout.CheckoutAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	user, err := store.Users().GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, user.Cart)
	assert.Len(t, user.Wishlist, 1, "concurrent write must survive")
	assert.Equal(t, []string{orders[0].ID.Hex()}, user.Orders)

	stored, err := store.Orders().FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, stored, 1, "losing attempt must not insert orders")
}

func TestCheckoutOne(t *testing.T) {
	checkout, cart, store, pub, userID := setupCheckout(t)
	ctx := context.Background()

	_, err := cart.AddToCart(ctx, userID, model.AddCartItemInput{ProductID: 1, Title: "Phone", Price: 100, Quantity: 2})
	require.NoError(t, err)
	_, err = cart.AddToCart(ctx, userID, model.AddCartItemInput{ProductID: 2, Title: "Case", Price: 10})
	require.NoError(t, err)

	order, err := checkout.CheckoutOne(ctx, userID, "1")
	require.NoError(t, err)
	assert.Equal(t, 200.0, order.Price)
	assert.Equal(t, model.OrderStatusPlaced, order.Status)
	require.NotNil(t, order.DeliveryDate)
	assert.Equal(t, "2024-03-13", *order.DeliveryDate)

	user, err := store.Users().GetByID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, user.Cart, 1)
	assert.Equal(t, 2, user.Cart[0].ProductID)
	assert.Equal(t, []string{order.ID.Hex()}, user.Orders)
	assert.Len(t, pub.events, 1)

	_, err = checkout.CheckoutOne(ctx, userID, "1")
	assert.ErrorIs(t, err, customErrors.ProductNotInCart)
}
