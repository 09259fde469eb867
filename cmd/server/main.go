package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/jitsupply/order-api/internal/auth"
	"github.com/jitsupply/order-api/internal/config"
	"github.com/jitsupply/order-api/internal/database"
	"github.com/jitsupply/order-api/internal/handler"
	"github.com/jitsupply/order-api/internal/queue"
	"github.com/jitsupply/order-api/internal/repository"
	"github.com/jitsupply/order-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	admins := repository.NewAdminRepo(db)
	suppliers := repository.NewSupplierRepo(db)
	orders := repository.NewOrderRepo(db)
	cards := repository.NewKanbanRepo(db)

	sessions := auth.NewSessionService(admins, suppliers, cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost)

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(sessions),
		Supplier: handler.NewSupplierHandler(cfg, suppliers),
		Order:    handler.NewOrderHandler(orders, suppliers),
		Kanban:   handler.NewKanbanHandler(cards),
		User:     handler.NewUserHandler(cfg, admins, suppliers),
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting disabled")
	}

	// Order events land in logs/orders.log; the consumer reconnects
	// on its own if the broker drops.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, h, cfg, config.LoadRateLimitConfig(), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
