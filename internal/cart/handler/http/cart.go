package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sawant8123/storefront-service/internal/auth"
	"github.com/sawant8123/storefront-service/internal/cart/service"
	customErrors "github.com/sawant8123/storefront-service/internal/errors"
	"github.com/sawant8123/storefront-service/internal/model"
)

type CartHandler struct {
	cartService     *service.CartService
	checkoutService *service.CheckoutService
}

func NewCartHandler(cartService *service.CartService, checkoutService *service.CheckoutService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

// RegisterRoutes mounts cart, wishlist and checkout endpoints. Every route
// requires an authenticated user.
func (h *CartHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	router.Get("/cart", requireAuth, h.GetCart)
	router.Post("/cart", requireAuth, h.AddToCart)
	router.Delete("/cart/:productId", requireAuth, h.RemoveFromCart)

	router.Get("/wishlist", requireAuth, h.GetWishlist)
	router.Post("/wishlist", requireAuth, h.AddToWishlist)

	router.Post("/checkout", requireAuth, h.CheckoutAll)
	router.Post("/checkout/:productId", requireAuth, h.CheckoutOne)
}

func (h *CartHandler) AddToCart(c *fiber.Ctx) error {
	var input model.AddCartItemInput
	if err := c.BodyParser(&input); err != nil {
		return customErrors.InvalidRequestBody
	}

	cart, err := h.cartService.AddToCart(c.UserContext(), auth.CurrentUserID(c), input)
	if err != nil {
		return err
	}

	return c.JSON(model.CartResponse{Msg: "Added to cart", Cart: cart})
}

func (h *CartHandler) RemoveFromCart(c *fiber.Ctx) error {
	cart, err := h.cartService.RemoveFromCart(c.UserContext(), auth.CurrentUserID(c), c.Params("productId"))
	if err != nil {
		return err
	}

	return c.JSON(model.CartResponse{Msg: "Removed from cart", Cart: cart})
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	cart, err := h.cartService.GetCart(c.UserContext(), auth.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(cart)
}

func (h *CartHandler) AddToWishlist(c *fiber.Ctx) error {
	var input model.AddWishlistItemInput
	if err := c.BodyParser(&input); err != nil {
		return customErrors.InvalidRequestBody
	}

	wishlist, err := h.cartService.AddToWishlist(c.UserContext(), auth.CurrentUserID(c), input)
	if err != nil {
		return err
	}

	return c.JSON(model.WishlistResponse{Msg: "Added to wishlist", Wishlist: wishlist})
}

func (h *CartHandler) GetWishlist(c *fiber.Ctx) error {
	wishlist, err := h.cartService.GetWishlist(c.UserContext(), auth.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(wishlist)
}

func (h *CartHandler) CheckoutAll(c *fiber.Ctx) error {
	orders, err := h.checkoutService.CheckoutAll(c.UserContext(), auth.CurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(model.CheckoutResponse{Msg: "Checkout successful", Orders: orders})
}

func (h *CartHandler) CheckoutOne(c *fiber.Ctx) error {
	order, err := h.checkoutService.CheckoutOne(c.UserContext(), auth.CurrentUserID(c), c.Params("productId"))
	if err != nil {
		return err
	}

	return c.JSON(model.OrderPlacedResponse{Msg: "Order placed", Order: order})
}
