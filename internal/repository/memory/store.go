// Package memory is an in-process document store with the same contracts as
// the MongoDB repositories. It backs tests and the "memory" database driver.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sawant8123/storefront-service/internal/model"
	"github.com/sawant8123/storefront-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu         sync.RWMutex
	users      map[primitive.ObjectID]*model.User
	userIDs    []primitive.ObjectID
	orders     map[primitive.ObjectID]*model.Order
	orderIDs   []primitive.ObjectID
	usersRepo  *userStore
	ordersRepo *orderStore
}

func NewStore() *Store {
	s := &Store{
		users:  make(map[primitive.ObjectID]*model.User),
		orders: make(map[primitive.ObjectID]*model.Order),
	}
	s.usersRepo = &userStore{s: s}
	s.ordersRepo = &orderStore{s: s}
	return s
}

func (s *Store) Users() repository.UserRepository   { return s.usersRepo }
func (s *Store) Orders() repository.OrderRepository { return s.ordersRepo }

// Transactor runs the callback directly; the memory store has no rollback.
func (s *Store) Transactor() repository.Transactor { return passthrough{} }

type passthrough struct{}

func (passthrough) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type userStore struct {
	s *Store
}

var _ repository.UserRepository = (*userStore)(nil)

func (r *userStore) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	repository.NormalizeUser(user)
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	r.s.users[user.ID] = copyUser(user)
	r.s.userIDs = append(r.s.userIDs, user.ID)
	return nil
}

func (r *userStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *userStore) FindByEmailOrPhone(ctx context.Context, email, phone string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range r.s.userIDs {
		u := r.s.users[id]
		if u.Email == email || u.Phone == phone {
			return copyUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userStore) Save(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.users[user.ID]
	if !ok || stored.Version != user.Version {
		return repository.ErrVersionConflict
	}

	repository.NormalizeUser(user)
	user.Version++
	r.s.users[user.ID] = copyUser(user)
	return nil
}

func (r *userStore) FindAll(ctx context.Context) ([]*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*model.User, 0, len(r.s.userIDs))
	for _, id := range r.s.userIDs {
		users = append(users, copyUser(r.s.users[id]))
	}
	return users, nil
}

type orderStore struct {
	s *Store
}

var _ repository.OrderRepository = (*orderStore)(nil)

func (r *orderStore) Create(ctx context.Context, order *model.Order) error {
	if !order.Status.IsValid() {
		return fmt.Errorf("%w: %q", repository.ErrInvalidStatus, order.Status)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	r.s.orders[order.ID] = copyOrder(order)
	r.s.orderIDs = append(r.s.orderIDs, order.ID)
	return nil
}

func (r *orderStore) GetByID(ctx context.Context, id string) (*model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyOrder(o), nil
}

func (r *orderStore) FindByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	orders := []*model.Order{}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return orders, nil
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range r.s.orderIDs {
		if o := r.s.orders[id]; o.UserID == oid {
			orders = append(orders, copyOrder(o))
		}
	}
	return orders, nil
}

func (r *orderStore) Save(ctx context.Context, order *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[order.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.orders[order.ID] = copyOrder(order)
	return nil
}

func copyUser(u *model.User) *model.User {
	c := *u
	c.Orders = append([]string{}, u.Orders...)
	c.Cart = append([]model.CartItem{}, u.Cart...)
	c.Wishlist = append([]model.WishlistItem{}, u.Wishlist...)
	return &c
}

func copyOrder(o *model.Order) *model.Order {
	c := *o
	if o.DeliveryDate != nil {
		d := *o.DeliveryDate
		c.DeliveryDate = &d
	}
	if o.ReturnInfo != nil {
		ri := *o.ReturnInfo
		c.ReturnInfo = &ri
	}
	return &c
}
