package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sawant8123/storefront-service/internal/auth/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes mounts the public auth endpoints on router. limit guards
// signup and login; requireAuth guards the profile endpoint.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, limit, requireAuth fiber.Handler, debugRoutes bool) {
	router.Post("/signup", limit, h.Signup)
	router.Post("/login", limit, h.Login)
	router.Get("/me", requireAuth, h.Me)

	if debugRoutes {
		router.Get("/users", h.ListUsers)
	}
}
