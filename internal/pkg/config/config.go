package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=1h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Admin   AdminConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
}

// AdminConfig holds the bootstrap admin credentials seeded at startup.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME, default=admin"`
	Password string `env:"ADMIN_PASSWORD, default=admin123"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=inventory"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type StorageConfig struct {
	Dir string `env:"STORAGE_DIR, default=uploads"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
