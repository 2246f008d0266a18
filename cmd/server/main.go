package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/config"
	"storefront/internal/account"
	"storefront/internal/api"
	"storefront/internal/broker"
	"storefront/internal/redisclient"
	"storefront/internal/seed"
	"storefront/internal/service"
	"storefront/internal/util"
	"storefront/internal/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := util.InitLogger(cfg.Server.Env, false); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting storefront")

	tp, err := util.InitTracer("storefront", cfg.Observ.JaegerEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	ctx := context.Background()

	data, source, err := seed.Load(ctx, cfg.Seed)
	if err != nil {
		logger.Fatal("Failed to load seed", zap.String("source", source), zap.Error(err))
	}
	cat, accounts, err := seed.Build(data, account.Options{
		HashCost:         cfg.Business.PasswordHashCost,
		StrictMergeStock: cfg.Business.StrictMergeStock,
	})
	if err != nil {
		logger.Fatal("Failed to build shop", zap.Error(err))
	}
	logger.Info("Seed loaded",
		zap.String("source", source),
		zap.Int("products", len(data.Products)),
		zap.Int("accounts", len(data.Accounts)))

	opts := service.Options{StrictPaymentStock: cfg.Business.StrictPaymentStock}

	var redisClient *redisclient.Client
	if cfg.RedisEnabled() {
		redisClient, err = redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		opts.StockMirror = redisClient
		logger.Info("Redis connected")
	}

	var producer broker.Producer
	if cfg.KafkaEnabled() {
		producer = broker.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info("Kafka producer initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
	} else {
		producer = broker.NewLogProducer(logger)
	}
	defer producer.Close()
	opts.EventPublisher = broker.NewEventPublisher(producer)

	shop := service.NewShop(cat, accounts, opts)

	if err := shop.Inventory.SyncInventory(ctx); err != nil {
		logger.Error("Failed to sync inventory", zap.Error(err))
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var salesWorker *worker.SalesWorker
	if cfg.KafkaEnabled() {
		var deduper service.EventDeduper
		if redisClient != nil {
			deduper = redisClient
		}
		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.ConsumerGroup)
		salesWorker = worker.NewSalesWorker(consumer, service.NewSalesProjection(deduper))
		go func() {
			if err := salesWorker.Start(workerCtx); err != nil {
				logger.Error("Sales worker error", zap.Error(err))
			}
		}()
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(shop)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	workerCancel()
	if salesWorker != nil {
		if err := salesWorker.Stop(); err != nil {
			logger.Error("Failed to stop sales worker", zap.Error(err))
		}
		summary := salesWorker.Summary()
		logger.Info("Sales summary",
			zap.Int("orders_paid", summary.OrdersPaid),
			zap.String("revenue", summary.Revenue.StringFixed(2)))
	}

	logger.Info("Server exited")
}
