package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"CartStoreAPI/internal/config"
	"CartStoreAPI/internal/db"
	"CartStoreAPI/internal/logger"
	"CartStoreAPI/internal/repository"
	"CartStoreAPI/internal/scheduler"
	"CartStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	slogger := logger.New(logger.Options{
		Service: "cart-store-api",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal(err)
	}

	// ======================
	// REPOSITORIES
	// ======================
	productRepo := repository.NewProductRepository(pool)
	cartRepo := repository.NewCartRepository(pool)

	// ======================
	// SERVICES
	// ======================
	productSvc := services.NewProductService(productRepo)
	cartSvc := services.NewCartService(cartRepo, productRepo)
	sessionSvc := services.NewSessionService(cartRepo)
	sweeperSvc := services.NewSweeperService(cartRepo, slogger, cfg.CartIdleAfter, cfg.CartPurgeAfter)

	// ======================
	// SWEEP SCHEDULER
	// ======================
	scheduler.New(sweeperSvc, cfg.SweepInterval, slogger).Start(ctx)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerProductRoutes(api, productSvc)
	registerCartRoutes(api, cartSvc, sessionSvc)

	// ======================
	// SERVER
	// ======================
	go func() {
		<-ctx.Done()
		e.Shutdown(context.Background())
	}()

	if err := e.Start(":" + cfg.Port); err != nil {
		slogger.Info("server stopped", "reason", err.Error())
	}
}
