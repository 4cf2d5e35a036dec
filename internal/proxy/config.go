package proxy

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"

	appenv "github.com/garrettladley/dealdesk/internal/env"
	xredis "github.com/garrettladley/dealdesk/internal/redis"
)

const (
	DevelopmentOrigin = "http://localhost:8000"
	ProductionOrigin  = "https://api.dealdesk.app"
)

type Config struct {
	Port string             `env:"PORT" envDefault:"8080"`
	Env  appenv.Environment `env:"ENV" envDefault:"development"`
	// BackendURL overrides the environment's default origin.
	BackendURL string        `env:"BACKEND_URL"`
	RateLimit  RateLimit     `envPrefix:"RATE_"`
	Redis      xredis.Config `envPrefix:"REDIS_"`
}

type RateLimit struct {
	Limit float64 `env:"LIMIT" envDefault:"10"`
	Burst int     `env:"BURST" envDefault:"20"`
}

// Origin is the backend every /api request is forwarded to.
func (c Config) Origin() (*url.URL, error) {
	raw := c.BackendURL
	if raw == "" {
		raw = DevelopmentOrigin
		if c.Env.IsProduction() {
			raw = ProductionOrigin
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: missing host", raw)
	}
	return u, nil
}

func ReadConfig() (Config, error) {
	return env.ParseAs[Config]()
}
