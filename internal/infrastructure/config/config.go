package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Auth  AuthConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=kotonoha"`
}

type AuthConfig struct {
	// TokenTTL is the bearer token validity window.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=720h"`

	// LoginDelayMin/Max bound the randomized delay applied to every failed
	// credential verification. Tunables, not security constants: the point
	// is that "unknown email" and "wrong password" share one distribution.
	LoginDelayMin time.Duration `env:"LOGIN_DELAY_MIN, default=5ms"`
	LoginDelayMax time.Duration `env:"LOGIN_DELAY_MAX, default=50ms"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
