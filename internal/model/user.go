package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"phone" json:"phone"`
	PasswordDigest string             `bson:"password" json:"-"`
	Orders         []string           `bson:"orders" json:"orders"`
	Cart           []CartItem         `bson:"cart" json:"cart"`
	Wishlist       []WishlistItem     `bson:"wishlist" json:"wishlist"`
	Version        int64              `bson:"version" json:"-"`
	CreatedAt      time.Time          `bson:"createdAt" json:"-"`
}

// CartItem is one cart line, unique by ProductID within a cart.
type CartItem struct {
	ProductID int     `bson:"productId" json:"productId"`
	Title     string  `bson:"title" json:"title"`
	Price     float64 `bson:"price" json:"price"`
	Thumbnail string  `bson:"thumbnail" json:"thumbnail"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

type WishlistItem struct {
	ProductID int     `bson:"productId" json:"productId"`
	Title     string  `bson:"title" json:"title"`
	Price     float64 `bson:"price" json:"price"`
	Thumbnail string  `bson:"thumbnail" json:"thumbnail"`
}

type PublicUser struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UserSummary is the debug listing shape: identity plus order references.
type UserSummary struct {
	ID     string   `json:"id"`
	Email  string   `json:"email"`
	Phone  string   `json:"phone"`
	Orders []string `json:"orders"`
}

func (u *User) HasOrder(orderID string) bool {
	for _, id := range u.Orders {
		if id == orderID {
			return true
		}
	}
	return false
}

func (u *User) Summary() UserSummary {
	orders := u.Orders
	if orders == nil {
		orders = []string{}
	}
	return UserSummary{
		ID:     u.ID.Hex(),
		Email:  u.Email,
		Phone:  u.Phone,
		Orders: orders,
	}
}
