package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"order-board/internal/controllers/http"
	"order-board/internal/domain"
	"order-board/internal/infra"
	mmysql "order-board/internal/infra/mysql"
	"order-board/internal/infra/rabbitmq"
	mysqlrepo "order-board/internal/repository/mysql"
	"order-board/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

func main() {
	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	repo := mysqlrepo.NewOrderRepository(db)

	notifier := infra.NewWebhookNotifier(os.Getenv("NOTIFY_WEBHOOK_URL"), 2*time.Second)

	identity := identityFromEnv()

	subscriber, err := rabbitmq.NewSubscriber(os.Getenv("RABBITMQ_URL"), "orders.changes")
	if err != nil {
		log.Fatalf("failed to init change feed subscriber: %v", err)
	}
	defer subscriber.Close()

	board := services.NewBoard(repo, notifier, identity)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := board.Bootstrap(ctx); err != nil {
		log.Fatalf("board: bootstrap: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	handler := http.NewHandler(board, redisClient)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return board.Run(ctx, subscriber.Events())
	})

	g.Go(func() error {
		log.Printf("Starting order board on port %s (role=%s)", port, identity.Role)
		return http.Serve(ctx, r, ":"+port)
	})

	g.Go(func() error {
		<-ctx.Done()
		subscriber.Close()
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Fatalf("server run: %v", err)
	}
}

// identityFromEnv reads the role and store scope handed down by the session
// provider. They are inputs only; nothing here ever writes them back.
func identityFromEnv() domain.Identity {
	role := domain.Role(os.Getenv("BOARD_ROLE"))
	if role != domain.RoleStoreScoped {
		role = domain.RoleGlobalAdmin
	}
	return domain.Identity{
		Role:    role,
		StoreID: os.Getenv("BOARD_STORE_ID"),
	}
}
