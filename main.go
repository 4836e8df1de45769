package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/technova/portfolio-api/handlers"
	"github.com/technova/portfolio-api/internal/admin"
	"github.com/technova/portfolio-api/internal/config"
	"github.com/technova/portfolio-api/internal/database"
	"github.com/technova/portfolio-api/internal/notify"
	"github.com/technova/portfolio-api/internal/storage"
	"github.com/technova/portfolio-api/internal/store"
	"github.com/technova/portfolio-api/pkg/logger"
	"github.com/technova/portfolio-api/pkg/metrics"
	"github.com/technova/portfolio-api/pkg/middleware"
)

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: backend=%s redis=%v smtp=%v rate_limit=%v",
		cfg.Store.Backend, cfg.Redis.Host != "", cfg.SMTP.Enabled(), cfg.RateLimit.Enabled)

	ctx := context.Background()

	// Redis serves both the redis store backend and the shared rate limiter.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
		defer redisClient.Close()
	}

	backend, closeBackend, err := openBackend(ctx, cfg, redisClient)
	if err != nil {
		logger.Fatalf("failed to open %s store: %v", cfg.Store.Backend, err)
	}
	defer closeBackend()

	st := store.New(backend)
	if err := st.Init(ctx); err != nil {
		logger.Fatalf("failed to initialize store: %v", err)
	}
	logger.Infof("store ready: backend=%s", st.Backend())

	gate := admin.NewGate(cfg.Admin.Key)
	if w := gate.Warning(); w != "" {
		logger.Warn(w)
	}

	dispatcher := notify.FromConfig(cfg.SMTP)
	if !dispatcher.Enabled() {
		logger.Infof("contact notifications disabled: SMTP_HOST, SMTP_USER, SMTP_PASS and CONTACT_DEST are required")
	}

	var guards []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			guards = append(guards, middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
			logger.Infof("contact rate limiter: redis (burst=%d window=%s)", cfg.RateLimit.Burst, win)
		} else {
			guards = append(guards, middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
			logger.Infof("contact rate limiter: memory (rps=%.2f burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	var readyRedis *redis.Client
	if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
		readyRedis = redisClient
	}
	r := handlers.NewRouter(handlers.RouterDeps{
		Store:         st,
		Gate:          gate,
		Notifier:      dispatcher,
		Redis:         readyRedis,
		ContactGuards: guards,
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("Starting portfolio API on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Infof("received %s, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
	// pending notifications are bounded by NOTIFY_TIMEOUT
	dispatcher.Wait()
	logger.Infof("server stopped")
}

// openBackend builds the configured store backend. The returned func
// releases whatever connection the backend holds.
func openBackend(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (store.Backend, func(), error) {
	noop := func() {}
	switch cfg.Store.Backend {
	case config.BackendFile:
		logger.Infof("using file store at %s", cfg.Store.Path)
		return store.NewFileBackend(cfg.Store.Path), noop, nil

	case config.BackendMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoDB, database.DefaultRetry)
		if err != nil {
			return nil, nil, err
		}
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		logger.Infof("using mongo store %s.%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
		return store.NewMongoBackend(col), func() { _ = client.Disconnect(context.Background()) }, nil

	case config.BackendRedis:
		if redisClient == nil {
			return nil, nil, errors.New("redis client not configured")
		}
		logger.Infof("using redis store key %s", cfg.Redis.Key)
		return store.NewRedisBackend(redisClient, cfg.Redis.Key), noop, nil

	case config.BackendMinIO:
		objects, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("using minio store %s/%s", cfg.MinIO.Bucket, cfg.MinIO.Object)
		return store.NewMinIOBackend(objects, cfg.MinIO.Object), noop, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
