package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET"`

	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`

	// The internal channel uses its own secret so service tokens can never
	// double as end-user tokens.
	InternalJWTSecret       string   `env:"INTERNAL_JWT_SECRET"`
	InternalAllowedServices []string `env:"INTERNAL_ALLOWED_SERVICES, default=billing,orders,notifications"`

	Login LoginConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type LoginConfig struct {
	MaxFailures   int           `env:"LOGIN_MAX_FAILURES,   default=10"`
	FailureWindow time.Duration `env:"LOGIN_FAILURE_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
