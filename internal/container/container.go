package container

import (
	"context"
	"fmt"

	"ibraflix/internal/cache"
	"ibraflix/internal/config"
	"ibraflix/internal/database"
	"ibraflix/internal/logger"
	"ibraflix/internal/metrics"
	"ibraflix/internal/models"
	"ibraflix/internal/repository"
	"ibraflix/internal/services"
	"ibraflix/internal/storage"
	"ibraflix/internal/watchlist"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Container struct {
	DB           *pgxpool.Pool
	Redis        *redis.Client
	Logger       *logrus.Logger
	Catalog      *services.Client
	Watchlist    *watchlist.Store
	MediaService *services.MediaService

	unsubscribe func()
}

func New(ctx context.Context) (*Container, error) {
	log := logger.Get()
	c := &Container{Logger: log}

	redisClient, err := cache.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	c.Redis = redisClient
	if redisClient == nil {
		log.Info("R_HOST not set, catalog cache disabled")
	}

	adapter, err := c.newAdapter(ctx, config.Storage())
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	tmdb := config.TMDb()
	if tmdb.ReadAccessToken == "" {
		log.Warn("TMDB_READ_ACCESS_TOKEN not set, catalog requests will be rejected")
	}
	c.Catalog = services.NewClientWithConfig(&services.ClientConfig{
		BaseURL:     tmdb.APIURL,
		ImageURL:    tmdb.ImageURL,
		AccessToken: tmdb.ReadAccessToken,
		Timeout:     tmdb.Timeout,
		RateLimit:   tmdb.RequestsPerSec,
		MaxRetries:  tmdb.MaxRetries,
		RetryDelay:  tmdb.RetryDelay,
		Logger:      log,
		Redis:       redisClient,
	})

	c.Watchlist = watchlist.New(ctx, adapter, watchlist.WithLogger(log))
	metrics.WatchlistEntries.Set(float64(c.Watchlist.Count()))
	c.unsubscribe = c.Watchlist.Subscribe(func(entries []models.WatchlistEntry) {
		metrics.WatchlistEntries.Set(float64(len(entries)))
	})

	c.MediaService = services.NewMediaService(c.Catalog, services.NewGenreService(c.Catalog, log), c.Watchlist, log)
	return c, nil
}

// newAdapter picks the watchlist backend named by STORAGE_DRIVER.
func (c *Container) newAdapter(ctx context.Context, cfg config.StorageConfig) (storage.Adapter, error) {
	c.Logger.WithField("driver", cfg.Driver).Info("Initializing watchlist storage")

	switch cfg.Driver {
	case "memory":
		return storage.NewMemory(), nil
	case "file":
		return storage.NewFile(cfg.DataDir)
	case "redis":
		if c.Redis == nil {
			return nil, fmt.Errorf("redis storage driver needs R_HOST")
		}
		return storage.NewRedis(c.Redis, cfg.RedisPrefix), nil
	case "postgres":
		pool, err := database.NewPool(ctx)
		if err != nil {
			return nil, err
		}
		c.DB = pool
		repo := repository.NewKVRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func (c *Container) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	if c.Redis != nil {
		c.Redis.Close()
		c.Logger.Info("Redis connection closed")
	}
	if c.DB != nil {
		c.DB.Close()
		c.Logger.Info("Database connection closed")
	}
}
