// Package bootstrap wires process-level runtime dependencies for the
// executables: database, Redis, tracing, and optional demo seeding.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"skillswap/internal/cache"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/observability"
	"skillswap/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Runtime holds process-wide dependencies shared by the executables.
type Runtime struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client

	tracingShutdown func(context.Context) error
}

// InitRuntime connects the database and Redis, starts tracing when enabled,
// and seeds demo data when SEED_ON_BOOT is set outside production.
func InitRuntime(cfg *config.Config) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	rt := &Runtime{
		Config: cfg,
		DB:     db,
		Redis:  cache.GetClient(),
	}

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(observability.TracingConfig{
			ServiceName:    "skillswap-api",
			ServiceVersion: "1.0.0",
			Environment:    cfg.Env,
			Enabled:        true,
			Exporter:       cfg.TracingExporter,
			OTLPEndpoint:   cfg.OTLPEndpoint,
			SamplerRatio:   cfg.TracingSamplerRatio,
		})
		if err != nil {
			return nil, fmt.Errorf("tracing setup failed: %w", err)
		}
		rt.tracingShutdown = shutdown
	}

	if cfg.SeedOnBoot {
		if cfg.Env == "production" || cfg.Env == "prod" {
			log.Println("SEED_ON_BOOT ignored in production")
		} else {
			opts := seed.DefaultOptions()
			opts.CatalogPath = cfg.SkillCatalog
			if err := seed.Seed(db, opts); err != nil {
				return nil, fmt.Errorf("boot seeding failed: %w", err)
			}
		}
	}

	return rt, nil
}

// Close releases runtime resources not owned by the server.
func (rt *Runtime) Close(ctx context.Context) {
	if rt.tracingShutdown != nil {
		if err := rt.tracingShutdown(ctx); err != nil {
			log.Printf("error shutting down tracing: %v", err)
		}
	}
}
