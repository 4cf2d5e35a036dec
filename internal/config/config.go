package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

const DefaultAPIURL = "http://localhost:8080"

// Config is the TUI client's configuration, read from the environment.
type Config struct {
	APIURL       string        `env:"API_URL" envDefault:"http://localhost:8080"`
	OrgID        string        `env:"ORG_ID" envDefault:"demo"`
	Locale       string        `env:"LOCALE" envDefault:"en"`
	LayoutPath   string        `env:"LAYOUT_PATH"`
	FPS          int           `env:"FPS" envDefault:"60"`
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"30s"`
	// ReducedMotion skips every animation and shows final values.
	ReducedMotion bool `env:"REDUCED_MOTION" envDefault:"false"`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}
