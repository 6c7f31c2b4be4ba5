package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sawant8123/storefront-service/internal/auth"
	customErrors "github.com/sawant8123/storefront-service/internal/errors"
	"github.com/sawant8123/storefront-service/internal/model"
	"github.com/sawant8123/storefront-service/internal/orders/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	router.Get("/", requireAuth, h.ListOrders)
	router.Post("/action", requireAuth, h.ApplyAction)
	router.Post("/:orderId/return", requireAuth, h.RequestReturn)
}

func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.ListOrders(c.UserContext(), auth.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

func (h *OrderHandler) ApplyAction(c *fiber.Ctx) error {
	var input model.OrderActionInput
	if err := c.BodyParser(&input); err != nil {
		return customErrors.InvalidRequestBody
	}

	if err := h.orderService.ApplyAction(c.UserContext(), auth.CurrentUserID(c), input.OrderID, input.Action); err != nil {
		return err
	}

	return c.JSON(model.MessageResponse{Msg: fmt.Sprintf("Action %s completed.", input.Action)})
}

func (h *OrderHandler) RequestReturn(c *fiber.Ctx) error {
	order, pickup, err := h.orderService.RequestReturn(c.UserContext(), auth.CurrentUserID(c), c.Params("orderId"))
	if err != nil {
		return err
	}

	return c.JSON(model.ReturnResponse{Msg: "Return requested", Order: order, Pickup: pickup})
}
