package server

import (
	"time"

	"github.com/caarlos0/env/v11"

	appenv "github.com/garrettladley/dealdesk/internal/env"
	xredis "github.com/garrettladley/dealdesk/internal/redis"
)

type Config struct {
	Port     string             `env:"PORT" envDefault:"8000"`
	Env      appenv.Environment `env:"ENV" envDefault:"development"`
	Database Database           `envPrefix:"DATABASE_"`
	Redis    xredis.Config      `envPrefix:"REDIS_"`
	// CacheTTL is how long an assembled snapshot is served from cache.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"15s"`
}

// Database is optional in development, where the demo data set is served.
type Database struct {
	URL string `env:"URL"`
}

func ReadConfig() (Config, error) {
	return env.ParseAs[Config]()
}
