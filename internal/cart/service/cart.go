package service

import (
	"context"
	"errors"
	"strconv"

	customErrors "github.com/sawant8123/storefront-service/internal/errors"
	"github.com/sawant8123/storefront-service/internal/model"
	"github.com/sawant8123/storefront-service/internal/repository"
)

type CartService struct {
	users repository.UserRepository
	tx    repository.Transactor
}

func NewCartService(users repository.UserRepository, tx repository.Transactor) *CartService {
	return &CartService{users: users, tx: tx}
}

// AddToCart merges the item into an existing line with the same product id
// or appends a new line. A zero quantity counts as one.
func (s *CartService) AddToCart(ctx context.Context, userID string, input model.AddCartItemInput) ([]model.CartItem, error) {
	productID := int(input.ProductID)
	quantity := int(input.Quantity)
	if quantity == 0 {
		quantity = 1
	}

	user, err := mutateUser(ctx, s.users, s.tx, userID, func(_ context.Context, u *model.User) (bool, error) {
		for i := range u.Cart {
			if u.Cart[i].ProductID == productID {
				u.Cart[i].Quantity += quantity
				return true, nil
			}
		}

		u.Cart = append(u.Cart, model.CartItem{
			ProductID: productID,
			Title:     input.Title,
			Price:     input.Price,
			Thumbnail: input.Thumbnail,
			Quantity:  quantity,
		})
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return user.Cart, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID string) ([]model.CartItem, error) {
	user, err := mutateUser(ctx, s.users, s.tx, userID, func(_ context.Context, u *model.User) (bool, error) {
		idx := findCartLine(u.Cart, productID)
		if idx == -1 {
			return false, customErrors.ProductNotInCart
		}
		u.Cart = append(u.Cart[:idx], u.Cart[idx+1:]...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return user.Cart, nil
}

// AddToWishlist is idempotent per product id.
func (s *CartService) AddToWishlist(ctx context.Context, userID string, input model.AddWishlistItemInput) ([]model.WishlistItem, error) {
	productID := int(input.ProductID)
	user, err := mutateUser(ctx, s.users, s.tx, userID, func(_ context.Context, u *model.User) (bool, error) {
		for _, item := range u.Wishlist {
			if item.ProductID == productID {
				return false, nil
			}
		}

		u.Wishlist = append(u.Wishlist, model.WishlistItem{
			ProductID: productID,
			Title:     input.Title,
			Price:     input.Price,
			Thumbnail: input.Thumbnail,
		})
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return user.Wishlist, nil
}

func (s *CartService) GetCart(ctx context.Context, userID string) ([]model.CartItem, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Cart, nil
}

func (s *CartService) GetWishlist(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Wishlist, nil
}

func (s *CartService) loadUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, customErrors.UserNotFound
	}
	return user, err
}

// findCartLine matches on the decimal form of the product id, since path
// parameters arrive as strings.
func findCartLine(cart []model.CartItem, productID string) int {
	for i, item := range cart {
		if strconv.Itoa(item.ProductID) == productID {
			return i
		}
	}
	return -1
}
