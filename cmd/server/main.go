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
	"storefront/internal/api"
	"storefront/internal/broker"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/i18n"
	"storefront/internal/redisclient"
	"storefront/internal/service"
	"storefront/internal/store"
	"storefront/internal/util"
	"storefront/internal/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env, cfg.Server.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting storefront")

	tp, err := util.InitTracer(util.ServiceName, util.TracingOptions{
		Environment:    cfg.Server.Env,
		JaegerEndpoint: cfg.Observ.JaegerEndpoint,
		SampleRatio:    cfg.Observ.TraceSampleRatio,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Warn("Error shutting down tracer", zap.Error(err))
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Migrate(migrateCtx); err != nil {
		migrateCancel()
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}
	migrateCancel()
	logger.Info("Database connected")

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents)
	defer producer.Close()
	eventPublisher := broker.NewEventPublisher(producer)
	logger.Info("Kafka producer initialized", zap.String("topic", cfg.Kafka.TopicEvents))

	currency, err := catalog.LookupCurrency(cfg.Store.CurrencyCode)
	if err != nil {
		logger.Fatal("Unsupported currency", zap.String("currency", cfg.Store.CurrencyCode), zap.Error(err))
	}
	translator, err := i18n.Load(cfg.Store.DefaultLocale)
	if err != nil {
		logger.Fatal("Failed to load translations", zap.Error(err))
	}
	products, err := catalog.NewDefault(currency, catalog.WithResolver(translator))
	if err != nil {
		logger.Fatal("Failed to build catalog", zap.Error(err))
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	carts := cart.NewManager(cart.NewRedisStorage(redisClient), cfg.Store.CartKeyPrefix)
	mirror := cart.NewMirror(eventPublisher, 256)
	carts.OnChange(mirror.Listen)
	go mirror.Run(workerCtx)

	initiator, err := newInitiator(cfg.Checkout)
	if err != nil {
		logger.Fatal("Failed to configure checkout provider",
			zap.String("provider", cfg.Checkout.Provider), zap.Error(err))
	}
	logger.Info("Checkout provider configured", zap.String("provider", initiator.Name()))

	checkoutService := service.NewCheckoutService(
		carts,
		products,
		initiator,
		db,
		redisClient,
		eventPublisher,
		translator,
		service.Settings{
			StoreName:       cfg.Store.Name,
			BaseURL:         cfg.Checkout.BaseURL,
			MinAmount:       cfg.Checkout.MinAmount,
			LockTTL:         cfg.Checkout.LockTTL,
			DonationPresets: cfg.Checkout.DonationPresets,
		},
	)

	signalConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents, cfg.Kafka.ConsumerGroup)
	signalWorker := worker.NewSignalWorker(signalConsumer, checkoutService)
	go func() {
		if err := signalWorker.Start(workerCtx); err != nil {
			logger.Error("Signal worker error", zap.Error(err))
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(products, translator, carts, checkoutService, map[string]api.ReadinessCheck{
		"postgres": db.Ping,
		"redis":    redisClient.Ping,
	})
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

	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Server forced to shutdown", zap.Error(err))
	}

	workerCancel()
	if err := signalWorker.Stop(); err != nil {
		logger.Warn("Error stopping signal worker", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newInitiator selects the hosted checkout provider. Demo mode serves local
// Sika sessions without calling the API.
func newInitiator(cfg config.CheckoutConfig) (checkout.Initiator, error) {
	switch cfg.Provider {
	case "", "sika":
		apiURL := cfg.APIURL
		if cfg.Demo {
			apiURL = ""
		}
		return checkout.NewSikaClient(checkout.SikaConfig{
			APIURL:      apiURL,
			CheckoutURL: cfg.CheckoutURL,
			SecretKey:   cfg.SecretKey,
			MinAmount:   cfg.MinAmount,
			Timeout:     cfg.Timeout,
		}), nil
	case "stripe":
		client, err := checkout.NewStripeClient(checkout.StripeConfig{
			APIKey:    cfg.StripeSecretKey,
			MinAmount: cfg.MinAmount,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown checkout provider %q", cfg.Provider)
	}
}
