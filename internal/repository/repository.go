package repository

import (
	"context"
	"errors"

	"github.com/sawant8123/storefront-service/internal/model"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrVersionConflict = errors.New("document was modified concurrently")
	ErrInvalidStatus   = errors.New("invalid order status")
)

const (
	UsersCollection  = "users"
	OrdersCollection = "orders"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*model.User, error)
	// Save persists the user if its Version still matches the stored one and
	// bumps Version on success. A stale copy yields ErrVersionConflict.
	Save(ctx context.Context, user *model.User) error
	FindAll(ctx context.Context) ([]*model.User, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Order, error)
	Save(ctx context.Context, order *model.Order) error
}

// Transactor runs fn so that repository calls made with the ctx it receives
// commit or roll back together, when the backing store supports it.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NormalizeUser replaces nil collections so they persist and serialize as empty arrays.
func NormalizeUser(u *model.User) {
	if u.Orders == nil {
		u.Orders = []string{}
	}
	if u.Cart == nil {
		u.Cart = []model.CartItem{}
	}
	if u.Wishlist == nil {
		u.Wishlist = []model.WishlistItem{}
	}
}
