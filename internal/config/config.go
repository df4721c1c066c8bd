// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/cors"
)

// Config holds every setting of the server.
type Config struct {
	// Storage
	DBPath string `envconfig:"DB_PATH" default:"./data/familytable.db"`

	// Network
	HTTPAddr    string   `envconfig:"HTTP_ADDR" default:":8080"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	// Auth
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"168h"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Activity broker; publishing is disabled when AMQPURL is empty.
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"familytable.activity"`

	// Fetch caps
	RecipeFetchLimit       int `envconfig:"RECIPE_FETCH_LIMIT" default:"100"`
	NotificationFetchLimit int `envconfig:"NOTIFICATION_FETCH_LIMIT" default:"50"`
}

// Load reads an optional env file (ENV_FILE, default .env) and then the
// process environment. Variables already set in the environment win over
// the file.
func Load() (Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("failed to process environment: %w", err)
	}
	if c.RecipeFetchLimit <= 0 || c.NotificationFetchLimit <= 0 {
		return Config{}, fmt.Errorf("fetch limits must be positive")
	}
	return c, nil
}

// CORS returns the CORS options for the configured origins.
func (c Config) CORS() cors.Options {
	origins := make([]string, 0, len(c.CORSOrigins))
	for _, o := range c.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Grpc-Status", "Grpc-Message", "Grpc-Status-Details-Bin"},
	}
}
