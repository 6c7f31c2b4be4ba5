package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sawant8123/storefront-service/internal/configs"
	"github.com/sawant8123/storefront-service/internal/database"
	"github.com/sawant8123/storefront-service/internal/model"
	"github.com/sawant8123/storefront-service/internal/repository"
	"github.com/sawant8123/storefront-service/pkg/password"
)

const (
	seedEmail    = "test@example.com"
	seedPhone    = "9999999999"
	seedPassword = "123456"
)

type mockOrder struct {
	ProductName string
	Price       float64
	Status      model.OrderStatus
	DaysAgo     int
}

var mockOrders = []mockOrder{
	{ProductName: "Wireless Earbuds", Price: 2499, Status: model.OrderStatusShipped, DaysAgo: 2},
	{ProductName: "Cotton T-Shirt", Price: 799, Status: model.OrderStatusDelivered, DaysAgo: 10},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := configs.Load(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(context.Background())

	users := db.Users()
	orders := db.Orders()

	_, err = users.FindByEmailOrPhone(ctx, seedEmail, seedPhone)
	if err == nil {
		log.Printf("⚠️  %s already exists. Skipping seed...", seedEmail)
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Fatalf("Failed to look up seed user: %v", err)
	}

	hashedPassword, err := password.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	log.Println("🌱 Starting to seed test user...")

	user := &model.User{
		Email:          seedEmail,
		Phone:          seedPhone,
		PasswordDigest: hashedPassword,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	now := time.Now().UTC()
	for _, mo := range mockOrders {
		placed := now.AddDate(0, 0, -mo.DaysAgo)
		delivery := placed.AddDate(0, 0, 3).Format(model.DateLayout)

		order := &model.Order{
			UserID:       user.ID,
			ProductName:  mo.ProductName,
			Status:       mo.Status,
			Price:        mo.Price,
			Date:         placed.Format(model.DateLayout),
			DeliveryDate: &delivery,
		}
		if err := orders.Create(ctx, order); err != nil {
			log.Fatalf("Failed to create order %q: %v", mo.ProductName, err)
		}
		user.Orders = append(user.Orders, order.ID.Hex())
		log.Printf("✓ Created %s order %s (%s)", mo.Status, order.ID.Hex(), mo.ProductName)
	}

	if err := users.Save(ctx, user); err != nil {
		log.Fatalf("Failed to link orders to user: %v", err)
	}

	log.Println("✨ Seeding completed!")
	log.Printf("📝 Login with %s or %s, password: %s", seedEmail, seedPhone, seedPassword)
}
