package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// WholeNumber decodes any integral JSON number, so 5 and 5.0 are both
// accepted. Fractional values are rejected.
type WholeNumber int

func (n *WholeNumber) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("expected a whole number, got %s", data)
	}
	*n = WholeNumber(f)
	return nil
}

type SignupInput struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	OrderID    string `json:"orderId"`
}

type AddCartItemInput struct {
	ProductID WholeNumber `json:"productId"`
	Title     string      `json:"title"`
	Price     float64     `json:"price"`
	Thumbnail string      `json:"thumbnail"`
	Quantity  WholeNumber `json:"quantity"`
}

type AddWishlistItemInput struct {
	ProductID WholeNumber `json:"productId"`
	Title     string      `json:"title"`
	Price     float64     `json:"price"`
	Thumbnail string      `json:"thumbnail"`
}

type OrderActionInput struct {
	OrderID string `json:"orderId"`
	Action  string `json:"action"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type CartResponse struct {
	Msg  string     `json:"msg"`
	Cart []CartItem `json:"cart"`
}

type WishlistResponse struct {
	Msg      string         `json:"msg"`
	Wishlist []WishlistItem `json:"wishlist"`
}

type CheckoutResponse struct {
	Msg    string   `json:"msg"`
	Orders []*Order `json:"orders"`
}

type OrderPlacedResponse struct {
	Msg   string `json:"msg"`
	Order *Order `json:"order"`
}

type ReturnResponse struct {
	Msg    string        `json:"msg"`
	Order  *Order        `json:"order"`
	Pickup *PickupRecord `json:"pickup"`
}

type MessageResponse struct {
	Msg string `json:"msg"`
}
