package middleware

import (
	"context"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sawant8123/storefront-service/internal/auth"
	customErrors "github.com/sawant8123/storefront-service/internal/errors"
)

// RateLimiter counts a hit for key and reports whether it went over limit
// within window.
type RateLimiter interface {
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type SecurityConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	TrustedProxies []string
}

type SecurityMiddleware struct {
	config      SecurityConfig
	limiter     RateLimiter
	trustedNets []*net.IPNet
}

// NewSecurityMiddleware builds the middleware. A nil limiter disables rate
// limiting but keeps the security headers.
func NewSecurityMiddleware(config SecurityConfig, limiter RateLimiter) *SecurityMiddleware {
	return &SecurityMiddleware{
		config:      config,
		limiter:     limiter,
		trustedNets: parseNetworks(config.TrustedProxies),
	}
}

// Headers sets the standard hardening headers on every response.
func (sm *SecurityMiddleware) Headers() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	}
}

// RateLimit limits requests per client IP and route. Redis errors let the
// request through.
func (sm *SecurityMiddleware) RateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sm.limiter == nil || sm.config.RateLimit <= 0 {
			return c.Next()
		}

		clientIP := auth.GetIPFromContext(c.UserContext())
		if clientIP == "" {
			clientIP = sm.getClientIP(c)
		}

		key := clientIP + ":" + c.Path()
		limited, err := sm.limiter.IsRateLimited(c.UserContext(), key, sm.config.RateLimit, sm.config.RateWindow)
		if err != nil {
			log.Printf("Redis error in rate limiter: %v", err)
			return c.Next()
		}

		if limited {
			log.Printf("Rate limit exceeded: %s", key)
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(sm.config.RateWindow.Seconds())))
			return customErrors.RateLimitExceeded
		}

		return c.Next()
	}
}

// getClientIP trusts X-Forwarded-For and X-Real-IP only when the direct peer
// is a configured proxy.
func (sm *SecurityMiddleware) getClientIP(c *fiber.Ctx) string {
	remoteIP := c.IP()
	if !sm.isTrustedProxy(remoteIP) {
		return remoteIP
	}

	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		if clientIP := strings.TrimSpace(strings.Split(xff, ",")[0]); clientIP != "" {
			return clientIP
		}
	}

	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return remoteIP
}

func (sm *SecurityMiddleware) isTrustedProxy(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}

	for _, network := range sm.trustedNets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// parseNetworks parses a list of IP addresses/CIDR ranges
func parseNetworks(cidrs []string) []*net.IPNet {
	var networks []*net.IPNet

	for _, cidr := range cidrs {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}

		if !strings.Contains(cidr, "/") {
			ip := net.ParseIP(cidr)
			if ip != nil {
				if ip.To4() != nil {
					cidr += "/32"
				} else {
					cidr += "/128"
				}
			}
		}

		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			log.Printf("Invalid CIDR range: %s - %v", cidr, err)
			continue
		}
		networks = append(networks, network)
	}

	return networks
}
