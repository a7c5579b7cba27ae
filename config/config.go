package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Server struct {
		// Port the HTTP server listens on
		Port string `env:"PORT" envDefault:"5250"`

		// gin mode: debug, release or test
		GinMode string `env:"GIN_MODE" envDefault:"release"`

		// Comma separated origins allowed to call the JSON API
		CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	}

	Logging struct {
		Level string `env:"LOG_LEVEL" envDefault:"info"`

		// json or text
		Format string `env:"LOG_FORMAT" envDefault:"json"`
	}

	Contact struct {
		// How long a submission stays pending before it is reported as sent
		DelayMS int `env:"CONTACT_DELAY_MS" envDefault:"1500"`

		// Maximum number of submissions waiting to be processed
		QueueSize int `env:"CONTACT_QUEUE_SIZE" envDefault:"64"`

		// Number of concurrent submission workers
		Workers int `env:"CONTACT_WORKERS" envDefault:"2"`

		// Finished submissions are kept this long for status polling
		Retention time.Duration `env:"CONTACT_RETENTION" envDefault:"1h"`

		// How often finished submissions are swept; 0 disables the sweep
		SweepInterval time.Duration `env:"CONTACT_SWEEP_INTERVAL" envDefault:"1m"`
	}

	Scene struct {
		// Viewport width assumed when a scene request does not send one
		DefaultWidth int `env:"SCENE_DEFAULT_WIDTH" envDefault:"1280"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ContactDelay is the simulated submission delay as a duration
func (c *Config) ContactDelay() time.Duration {
	return time.Duration(c.Contact.DelayMS) * time.Millisecond
}

// AllowAllOrigins reports whether CORS should accept any origin
func (c *Config) AllowAllOrigins() bool {
	for _, o := range c.Server.CORSOrigins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return len(c.Server.CORSOrigins) == 0
}
