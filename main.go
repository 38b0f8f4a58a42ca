package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/cache"
	apperrors "storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/common/middleware"
	"storefront-service/common/validation"
	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/events"
	awspkg "storefront-service/pkg/aws"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/services"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const serviceName = "storefront-service"

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic("config load failed: " + err.Error())
	}

	// --- AWS setup (only when a component needs it) ---
	var awsCfg sdkaws.Config
	if cfg.NeedsAWS() {
		awsCfg, err = awspkg.LoadAWSConfig(context.Background())
		if err != nil {
			panic("failed to load AWS config: " + err.Error())
		}
	}

	// --- Logger ---
	var sinks []io.Writer
	var cwLogs *awspkg.CloudWatchLogsClient
	if cfg.CloudWatchEnabled {
		cwLogs, err = awspkg.NewCloudWatchLogsClient(context.Background(), awsCfg, cfg.CloudWatchLogGroup, serviceName)
		if err != nil {
			os.Stderr.WriteString("CloudWatch Logs disabled: " + err.Error() + "\n")
			cwLogs = nil
		} else {
			sinks = append(sinks, cwLogs)
		}
	}
	log, err := logger.Initialize(cfg.Env, sinks...)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	if err := validation.Register(); err != nil {
		log.Fatal("Validator setup failed", zap.Error(err))
	}

	// --- Database (non-fatal) ---
	store := connectStore(cfg, log)

	// --- Cache (non-fatal) ---
	var productCache *cache.ProductCache
	if cfg.RedisURL != "" {
		productCache, err = cache.NewFromURL(cfg.RedisURL, cfg.CacheTTL, log)
		if err != nil {
			log.Warn("Product cache disabled", zap.Error(err))
		}
	}

	// --- Events ---
	publisher := newPublisher(cfg, awsCfg)
	log.Info("Event publisher configured", zap.String("backend", cfg.EventsBackend))

	// --- CloudWatch metrics ---
	var metricsClient *awspkg.MetricsClient
	var recorder services.MetricsRecorder
	if cfg.CloudWatchEnabled {
		metricsClient = awspkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, true)
		recorder = metricsClient
	}

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS())
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Metrics(metricsClient, serviceName))
	r.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
	r.Use(apperrors.ErrorMiddleware())

	// --- Dependency injection ---
	productService := services.NewProductService(repository.NewProductRepository(store), productCache, publisher, recorder, log)
	orderService := services.NewOrderService(repository.NewOrderRepository(store), publisher, recorder, log)
	diagnosticsService := services.NewDiagnosticsService(store, productCache, cfg.DatabaseURL != "", log)

	routes.RegisterSystemRoutes(r, controllers.NewSystemController(diagnosticsService))
	routes.RegisterProductRoutes(r, controllers.NewProductController(productService))
	routes.RegisterOrderRoutes(r, controllers.NewOrderController(orderService))

	// --- HTTP server ---
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("Storefront service started", zap.String("addr", srv.Addr), zap.Bool("database", store.Connected()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		log.Error("Event publisher close error", zap.Error(err))
	}
	if err := productCache.Close(); err != nil {
		log.Error("Cache close error", zap.Error(err))
	}
	if err := store.Close(ctx); err != nil {
		log.Error("Database close error", zap.Error(err))
	}

	log.Info("Storefront service stopped gracefully")
	if cwLogs != nil {
		_ = cwLogs.Close()
	}
}

// connectStore returns a connected store, or a disconnected one when no
// connection string is set or the client cannot be built.
func connectStore(cfg *Config, log *zap.Logger) *database.Store {
	store, err := database.Connect(context.Background(), cfg.DatabaseURL, cfg.DatabaseName, cfg.DatabaseTimeout)
	if err != nil {
		log.Warn("Database not available, serving without storage", zap.Error(err))
		return store
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DatabaseTimeout)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		log.Warn("Database ping failed, continuing", zap.Error(err))
	} else {
		log.Info("Connected to MongoDB", zap.String("database", store.Name()))
	}
	return store
}

func newPublisher(cfg *Config, awsCfg sdkaws.Config) events.Publisher {
	switch cfg.EventsBackend {
	case events.BackendSNS:
		return events.NewSNSPublisher(awspkg.NewSNSClient(awsCfg), cfg.OrderEventsTopicARN)
	case events.BackendSQS:
		return events.NewSQSPublisher(awspkg.NewSQSClient(awsCfg), cfg.OrderEventsQueueURL)
	case events.BackendKafka:
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	default:
		return events.NoopPublisher{}
	}
}
