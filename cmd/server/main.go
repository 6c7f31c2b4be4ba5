package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	server "github.com/sawant8123/storefront-service/cmd"
	"github.com/sawant8123/storefront-service/internal/worker"
)

func main() {
	appCfgLoader, appCfg, err := server.InitConfig()
	if err != nil {
		log.Fatalf("❌ Failed to initialize configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := server.SetupDatabase(ctx, appCfgLoader)
	if err != nil {
		log.Fatalf("❌ Failed to setup database: %v", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	redisCache, err := server.SetupRedis(ctx, appCfgLoader)
	if err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	if redisCache != nil {
		defer redisCache.Close()
		go worker.NewOrderEventWorker(redisCache.RawClient()).Start(ctx)
	}

	services := server.SetupServices(store, redisCache, appCfgLoader)
	app := server.SetupFiberApp(appCfgLoader, store, services)

	log.Printf("🛒 Storefront service listening 🚀::: at %s", appCfg.ListenAddr)
	log.Printf("〒 App Current Environment %s ㉿:", appCfg.AppEnv)

	go func() {
		if err := app.Listen(appCfg.ListenAddr); err != nil {
			log.Printf("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
