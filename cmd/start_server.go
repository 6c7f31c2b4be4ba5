package server

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/joho/godotenv"
	authHTTP "github.com/sawant8123/storefront-service/internal/auth/handler/http"
	authService "github.com/sawant8123/storefront-service/internal/auth/service"
	cartHTTP "github.com/sawant8123/storefront-service/internal/cart/handler/http"
	cartService "github.com/sawant8123/storefront-service/internal/cart/service"
	"github.com/sawant8123/storefront-service/internal/configs"
	"github.com/sawant8123/storefront-service/internal/database"
	"github.com/sawant8123/storefront-service/internal/events"
	"github.com/sawant8123/storefront-service/internal/middleware"
	ordersHTTP "github.com/sawant8123/storefront-service/internal/orders/handler/http"
	orderService "github.com/sawant8123/storefront-service/internal/orders/service"
	"github.com/sawant8123/storefront-service/internal/repository"
	"github.com/sawant8123/storefront-service/internal/repository/memory"
)

const defaultPort = 8080

type AppConfig struct {
	AppEnv     string
	ListenAddr string
}

func InitConfig() (*configs.Config, *AppConfig, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := configs.Load(os.Getenv("APP_ENV"))
	if err != nil {
		return nil, nil, err
	}

	appEnv := os.Getenv("APP_ENV")
	appConfig := &AppConfig{
		AppEnv:     appEnv,
		ListenAddr: listenAddress(os.Getenv("PORT"), appEnv),
	}

	return cfg, appConfig, nil
}

// listenAddress falls back to the default port when PORT is unset or
// unusable. Production binds every interface explicitly.
func listenAddress(rawPort, env string) string {
	port := defaultPort
	if rawPort != "" {
		p, err := strconv.Atoi(rawPort)
		switch {
		case err != nil:
			log.Printf("⚠️ Invalid port '%s', defaulting to %d", rawPort, defaultPort)
		case p < 10 || p > 65535:
			log.Printf("⚠️ Port %d out of range (10-65535), defaulting to %d", p, defaultPort)
		default:
			port = p
		}
	}

	if env == "production" {
		return fmt.Sprintf("0.0.0.0:%d", port)
	}
	return fmt.Sprintf(":%d", port)
}

// Store is the persistence backend the services run on.
type Store struct {
	Users       repository.UserRepository
	Orders      repository.OrderRepository
	Transactor  repository.Transactor
	HealthCheck func(ctx context.Context) error
	Close       func(ctx context.Context) error
}

func SetupDatabase(ctx context.Context, cfg *configs.Config) (*Store, error) {
	if cfg.DB.Driver == configs.DriverMemory {
		log.Println("🧪 Using in-memory store, data is lost on restart")
		return NewMemoryStore(), nil
	}

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Store{
		Users:       db.Users(),
		Orders:      db.Orders(),
		Transactor:  db.Transactor(),
		HealthCheck: db.HealthCheck,
		Close:       db.Close,
	}, nil
}

func NewMemoryStore() *Store {
	mem := memory.NewStore()
	noop := func(context.Context) error { return nil }
	return &Store{
		Users:       mem.Users(),
		Orders:      mem.Orders(),
		Transactor:  mem.Transactor(),
		HealthCheck: noop,
		Close:       noop,
	}
}

// SetupRedis connects when an address is configured. No address yields a nil
// cache, which turns off profile caching, rate limiting and event publishing.
func SetupRedis(ctx context.Context, cfg *configs.Config) (*database.RedisCache, error) {
	if cfg.Redis.Addr == "" {
		log.Println("⚠️ No Redis address configured, running without cache and event stream")
		return nil, nil
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return database.InitRedis(ctxWithTimeout, cfg)
}

type Services struct {
	Auth     *authService.AuthService
	Cart     *cartService.CartService
	Checkout *cartService.CheckoutService
	Orders   *orderService.OrderService
	Limiter  middleware.RateLimiter
}

func SetupServices(store *Store, cache *database.RedisCache, cfg *configs.Config) *Services {
	var (
		profileCache authService.CacheService
		limiter      middleware.RateLimiter
		publisher    events.Publisher = events.Nop{}
	)
	if cache != nil {
		profileCache = cache
		limiter = cache
		publisher = cache
	}

	return &Services{
		Auth:     authService.NewAuthService(store.Users, cfg, profileCache),
		Cart:     cartService.NewCartService(store.Users, store.Transactor),
		Checkout: cartService.NewCheckoutService(store.Users, store.Orders, store.Transactor, publisher),
		Orders:   orderService.NewOrderService(store.Orders, orderService.NewSimulatedCourier(), publisher),
		Limiter:  limiter,
	}
}

func SetupFiberApp(cfg *configs.Config, store *Store, services *Services) *fiber.App {
	fiberCfg := fiber.Config{
		AppName:      "Storefront Service",
		ErrorHandler: middleware.ErrorHandler,
	}
	if len(cfg.Server.TrustedProxy) > 0 {
		fiberCfg.EnableTrustedProxyCheck = true
		fiberCfg.TrustedProxies = cfg.Server.TrustedProxy
	}
	app := fiber.New(fiberCfg)

	security := middleware.NewSecurityMiddleware(middleware.SecurityConfig{
		RateLimit:      cfg.RateLimit.Requests,
		RateWindow:     cfg.RateLimit.Window,
		TrustedProxies: cfg.Server.TrustedProxy,
	}, services.Limiter)

	app.Use(security.ClientContext())
	app.Use(middleware.Metrics())
	app.Use(middleware.RequestLogger())
	app.Use(security.Headers())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Use(healthcheck.New(healthcheck.Config{
		LivenessProbe: func(c *fiber.Ctx) bool {
			return true
		},
		LivenessEndpoint: "/live",
		ReadinessProbe: func(c *fiber.Ctx) bool {
			return store.HealthCheck(c.UserContext()) == nil
		},
		ReadinessEndpoint: "/ready",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := store.HealthCheck(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("UNHEALTHY")
		}
		return c.SendString("OK")
	})
	app.Get("/metrics", middleware.MetricsHandler())

	requireAuth := middleware.RequireAuth()

	authRoutes := app.Group("/api/auth")
	authHTTP.NewAuthHandler(services.Auth).RegisterRoutes(authRoutes, security.RateLimit(), requireAuth, cfg.Server.DebugRoutes)
	cartHTTP.NewCartHandler(services.Cart, services.Checkout).RegisterRoutes(authRoutes, requireAuth)

	ordersHTTP.NewOrderHandler(services.Orders).RegisterRoutes(app.Group("/api/orders"), requireAuth)

	return app
}
