package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sawant8123/storefront-service/internal/configs"
	"github.com/sawant8123/storefront-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
	config *configs.Config
}

func Connect(ctx context.Context, cfg *configs.Config) (*Database, error) {
	if cfg.DB.URI == "" {
		return nil, fmt.Errorf("❌ database uri is not configured")
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.DB.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.DB.URI).
		SetMaxPoolSize(100).
		SetConnectTimeout(cfg.DB.Timeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("❌ Failed to open database connection: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("⚙️ Database ping failed: %w", err)
	}

	db := &Database{
		Client: client,
		DB:     client.Database(cfg.DB.Name),
		config: cfg,
	}

	if err := db.ensureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("🛠️ Index creation failed: %w", err)
	}

	log.Printf("🍃 Connected to MongoDB database %q", cfg.DB.Name)
	return db, nil
}

func (db *Database) Close(ctx context.Context) error {
	if db.Client == nil {
		return nil
	}
	if err := db.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

func (db *Database) HealthCheck(ctx context.Context) error {
	if db.Client == nil {
		return fmt.Errorf("mongo client is not initialized")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
	}
	return db.Client.Ping(ctx, readpref.Primary())
}

func (db *Database) Users() repository.UserRepository {
	return repository.NewUserRepository(db.DB)
}

func (db *Database) Orders() repository.OrderRepository {
	return repository.NewOrderRepository(db.DB)
}

func (db *Database) Transactor() repository.Transactor {
	return repository.NewTransactor(db.Client, db.config.DB.Transactions)
}

// Email and phone are lookup keys, not unique constraints.
func (db *Database) ensureIndexes(ctx context.Context) error {
	_, err := db.DB.Collection(repository.UsersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "phone", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.DB.Collection(repository.OrdersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	return err
}
