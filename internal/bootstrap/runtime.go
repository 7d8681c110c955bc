// Package bootstrap wires up runtime dependencies shared by the server and
// auxiliary commands.
package bootstrap

import (
	"fmt"

	"bayaaz/internal/cache"
	"bayaaz/internal/config"
	"bayaaz/internal/database"
	"bayaaz/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedBuiltIns upserts the permanent poet catalog after connecting.
	SeedBuiltIns bool
}

// InitRuntime connects to DB and Redis and optionally runs built-in seeding.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Redis is optional; GetClient returns nil when unreachable and the
	// cache and notification layers degrade gracefully.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedBuiltIns {
		if err := seed.Poets(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed built-in poets: %w", err)
		}
	}

	return db, r, nil
}
