package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"artmart-core/internal/config"
	"artmart-core/internal/db"
	"artmart-core/internal/httpserver"
	"artmart-core/internal/promo"
	"artmart-core/internal/repository/slot"
	cartsvc "artmart-core/internal/service/cart"
	checkoutsvc "artmart-core/internal/service/checkout"
	ordersvc "artmart-core/internal/service/order"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var pool *pgxpool.Pool
	var slotRepo slot.Repository
	if cfg.DBConnString == "memory" {
		logger.Printf("running on in-memory slot storage")
		slotRepo = slot.NewMemory()
	} else {
		var err error
		pool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		slotRepo = slot.NewPostgres(pool)
	}

	cartStore := cartsvc.NewStore(ctx, slotRepo, cfg.CartSlotKey)
	orderStore := ordersvc.NewStore(slotRepo, cfg.OrdersSlotKey)
	promos := promo.NewStatic()
	checkout := checkoutsvc.New(cartStore, orderStore, promos, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, pool, httpserver.Deps{
		Cart:     cartStore,
		Orders:   orderStore,
		Checkout: checkout,
		Promos:   promos,
	}, cfg.CORSOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
