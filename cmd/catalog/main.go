package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/marketplace/internal/catalog/application"
	"github.com/wyfcoding/marketplace/internal/catalog/domain"
	"github.com/wyfcoding/marketplace/internal/catalog/infrastructure/persistence"
	mysqlrepo "github.com/wyfcoding/marketplace/internal/catalog/infrastructure/persistence/mysql"
	redisrepo "github.com/wyfcoding/marketplace/internal/catalog/infrastructure/persistence/redis"
	"github.com/wyfcoding/marketplace/internal/catalog/interfaces/consumer"
	cataloghttp "github.com/wyfcoding/marketplace/internal/catalog/interfaces/http"
	"github.com/wyfcoding/marketplace/pkg/cache"
	"github.com/wyfcoding/marketplace/pkg/config"
	"github.com/wyfcoding/marketplace/pkg/db"
	"github.com/wyfcoding/marketplace/pkg/logger"
	"github.com/wyfcoding/marketplace/pkg/metrics"
	"github.com/wyfcoding/marketplace/pkg/middleware"
	"github.com/wyfcoding/marketplace/pkg/mq"
	"github.com/wyfcoding/marketplace/pkg/ratelimit"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/catalog/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config failed: %v", err))
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New("catalog")
	if cfg.Metrics.Enabled {
		if err := m.Register(); err != nil {
			logger.Fatal(ctx, "Register metrics failed", "error", err)
		}
		_ = metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "Connect database failed", "error", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(
		&mysqlrepo.UserModel{},
		&mysqlrepo.ListingModel{},
		&mysqlrepo.LikeModel{},
		&mysqlrepo.FollowModel{},
		&mysqlrepo.CategoryModel{},
		&mysqlrepo.CategorySubscriptionModel{},
		&mysqlrepo.ProcurementTypeModel{},
		&mysqlrepo.PaymentTypeModel{},
	); err != nil {
		logger.Fatal(ctx, "Migrate database failed", "error", err)
	}

	redisCache, err := cache.New(cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		logger.Fatal(ctx, "Connect redis failed", "error", err)
	}
	defer redisCache.Close()

	directory := mysqlrepo.NewSellerDirectory(database.DB)
	partition := mysqlrepo.NewListingPartition(database.DB)
	engagement := persistence.NewCompositeEngagementRepository(
		redisrepo.NewEngagementReadModel(redisCache),
		mysqlrepo.NewEngagementRepository(database.DB),
	)
	categories := mysqlrepo.NewCategoryRepository(database.DB)
	reference := mysqlrepo.NewReferenceRepository(database.DB)
	snapshots := redisrepo.NewSnapshotStore(redisCache)

	fetcher := application.NewPartitionFetcher(partition, engagement,
		time.Duration(cfg.Catalog.PartitionTimeoutSeconds)*time.Second)
	aggregator := application.NewAggregator(directory, categories, fetcher,
		cfg.Catalog.MaxConcurrentFetches, m)

	catalogCache := application.NewSnapshotCache(func(ctx context.Context) (*domain.CatalogSnapshot, error) {
		start := time.Now()
		m.SnapshotRebuildsTotal.WithLabelValues("catalog").Inc()
		snap, err := aggregator.BuildCatalog(ctx)
		if err != nil {
			m.SnapshotRebuildFailures.WithLabelValues("catalog").Inc()
			return nil, err
		}
		m.SnapshotRebuildDuration.Observe(time.Since(start).Seconds())
		m.SnapshotListings.Set(float64(len(snap.Listings)))
		if err := snapshots.SaveCatalog(ctx, snap); err != nil {
			logger.Warn(ctx, "Persist catalog snapshot failed", "error", err)
		}
		return snap, nil
	})
	categoryCache := application.NewSnapshotCache(func(ctx context.Context) (*domain.CategorySnapshot, error) {
		m.SnapshotRebuildsTotal.WithLabelValues("categories").Inc()
		snap, err := aggregator.BuildCategories(ctx)
		if err != nil {
			m.SnapshotRebuildFailures.WithLabelValues("categories").Inc()
			return nil, err
		}
		if err := snapshots.SaveCategories(ctx, snap); err != nil {
			logger.Warn(ctx, "Persist category snapshot failed", "error", err)
		}
		return snap, nil
	})

	// 热启动：重启后先用上一次的快照顶住读流量，首次重建照常进行
	if snap, err := snapshots.LoadCatalog(ctx); err == nil && snap != nil {
		catalogCache.Seed(snap)
		logger.Info(ctx, "Catalog snapshot warm start", "listings", len(snap.Listings), "built_at", snap.BuiltAt)
	}
	if snap, err := snapshots.LoadCategories(ctx); err == nil && snap != nil {
		categoryCache.Seed(snap)
	}

	kafkaCfg := mq.KafkaConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		SessionTimeout: cfg.Kafka.SessionTimeout,
	}
	listingConsumer, err := mq.NewConsumer(kafkaCfg, cfg.Kafka.ListingTopic)
	if err != nil {
		logger.Fatal(ctx, "Create listing consumer failed", "error", err)
	}
	defer listingConsumer.Close()
	categoryConsumer, err := mq.NewConsumer(kafkaCfg, cfg.Kafka.CategoryTopic)
	if err != nil {
		logger.Fatal(ctx, "Create category consumer failed", "error", err)
	}
	defer categoryConsumer.Close()
	engagementConsumer, err := mq.NewConsumer(kafkaCfg, cfg.Kafka.EngagementTopic)
	if err != nil {
		logger.Fatal(ctx, "Create engagement consumer failed", "error", err)
	}
	defer engagementConsumer.Close()

	watcher := application.NewChangeWatcher(listingConsumer, categoryConsumer,
		catalogCache, categoryCache, cfg.Catalog.ProactiveRebuild, m)
	watcher.Start(ctx)

	engagementHandler := consumer.NewEngagementEventHandler(redisCache)
	go engagementHandler.Run(ctx, engagementConsumer)

	overlay := application.NewLikeOverlay(engagement)
	query := application.NewCatalogQueryService(catalogCache, categoryCache, overlay, directory, engagement, reference)

	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.GinLoggingMiddleware(),
		middleware.GinRecoveryMiddleware(),
		middleware.GinCORSMiddleware(),
		middleware.GinMetricsMiddleware(m),
	)
	if cfg.RateLimit.Enabled {
		limiter := ratelimit.NewRedisLimiter(redisCache.GetClient())
		engine.Use(middleware.RateLimitMiddleware(limiter, cfg.RateLimit))
	}
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	cataloghttp.NewCatalogHandler(query).RegisterRoutes(engine.Group("/api"))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info(ctx, "HTTP server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "HTTP server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info(context.Background(), "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "HTTP server shutdown failed", "error", err)
	}
}
