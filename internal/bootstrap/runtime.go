// Package bootstrap opens the runtime dependencies shared by the server and
// the command-line tools.
package bootstrap

import (
	"fmt"
	"log/slog"

	"comunidad/internal/cache"
	"comunidad/internal/config"
	"comunidad/internal/database"
	"comunidad/internal/middleware"
	"comunidad/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo loads a small demo dataset when the database has no users.
	SeedDemo bool
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
// A nil Redis client means Redis was unreachable; callers run without cache,
// rate limits and cross-instance realtime.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemo {
		if err := seedDemoIfEmpty(cfg, db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

func seedDemoIfEmpty(cfg *config.Config, db *gorm.DB) error {
	if cfg.IsProduction() {
		middleware.Logger.Warn("demo seeding skipped in production")
		return nil
	}

	empty, err := seed.IsEmpty(db)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	summary, err := seed.NewFactory(db, 0).Demo(seed.DemoOptions{Users: 5, PostsPerUser: 3})
	if err != nil {
		return err
	}
	middleware.Logger.Info("demo data seeded",
		slog.Int("users", summary.Users),
		slog.Int("posts", summary.Posts),
	)
	return nil
}
