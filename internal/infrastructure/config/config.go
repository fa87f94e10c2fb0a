package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every process-start value. Each entry has a hard-coded
// fallback so the process is runnable with zero external configuration.
type Config struct {
	Port     string `env:"PORT,      default=3000"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	AppName     string `env:"APP_NAME,     default=User Management System"`
	MaxUsers    int    `env:"MAX_USERS,    default=100"`
	DefaultRole string `env:"DEFAULT_ROLE, default=user"`
	Environment string `env:"ENVIRONMENT,  default=development"`
	Version     string `env:"APP_VERSION,  default=1.0.0"`

	// APIKey is the value mutating requests must present in x-api-key.
	APIKey string `env:"API_KEY, default=default-api-key"`
	// DBPassword is a shared-secret placeholder carried for deployment
	// parity; no route reads it.
	DBPassword string `env:"DB_PASSWORD, default=defaultpassword"`

	Mongo MongoConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=userdb"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
