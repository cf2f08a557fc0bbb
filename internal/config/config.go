// Package config loads runtime settings from the environment, an optional
// .env file and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEndpoint is the hosted Atlas embed endpoint.
const DefaultEndpoint = "https://buildvision-atlas.vercel.app/api/embed/chat"

// ErrMissingToken is returned when no embed token is configured.
var ErrMissingToken = errors.New("config: ATLAS_EMBED_TOKEN is not set")

// Config holds all settings for both binaries.
type Config struct {
	Atlas   AtlasConfig
	Website WebsiteConfig
	Log     LogConfig
}

// AtlasConfig points at the chat endpoint.
type AtlasConfig struct {
	Endpoint string        `env:"ATLAS_ENDPOINT"`
	Token    string        `env:"ATLAS_EMBED_TOKEN"`
	Timeout  time.Duration `env:"ATLAS_TIMEOUT" envDefault:"60s"`
}

// WebsiteConfig configures the landing page server.
type WebsiteConfig struct {
	Port            string        `env:"WEBSITE_PORT" envDefault:"4002"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	MaxSessions     int           `env:"MAX_SESSIONS" envDefault:"10000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
	File   string `env:"LOG_FILE"`
}

// Overrides carries command-line values; empty fields leave the
// environment value untouched.
type Overrides struct {
	Endpoint string
	Token    string
	Port     string
	LogFile  string
}

// Load reads envFile when it exists, then parses the environment. A
// missing envFile is not an error; the second return value reports
// whether it was loaded.
func Load(envFile string) (*Config, bool, error) {
	loaded := false
	if envFile != "" {
		if err := godotenv.Load(envFile); err == nil {
			loaded = true
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, false, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, loaded, fmt.Errorf("failed to parse config: %w", err)
	}
	if strings.TrimSpace(cfg.Atlas.Endpoint) == "" {
		cfg.Atlas.Endpoint = DefaultEndpoint
	}
	cfg.Website.Port = normalizePort(cfg.Website.Port)
	return cfg, loaded, nil
}

// Override applies non-empty command-line values.
func (c *Config) Override(o Overrides) {
	if v := strings.TrimSpace(o.Endpoint); v != "" {
		c.Atlas.Endpoint = v
	}
	if v := strings.TrimSpace(o.Token); v != "" {
		c.Atlas.Token = v
	}
	if v := strings.TrimSpace(o.Port); v != "" {
		c.Website.Port = normalizePort(v)
	}
	if v := strings.TrimSpace(o.LogFile); v != "" {
		c.Log.File = v
	}
}

// Validate checks the settings required to talk to Atlas.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Atlas.Endpoint) == "" {
		return errors.New("config: ATLAS_ENDPOINT is empty")
	}
	if strings.TrimSpace(c.Atlas.Token) == "" {
		return ErrMissingToken
	}
	return nil
}

func normalizePort(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "4002"
	}
	if port[0] != ':' && !strings.Contains(port, ":") {
		port = ":" + port
	}
	return port
}
