package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	MongoDBURI      string `envconfig:"MONGODB_URI" required:"true"`
	MongoDBPassword string `envconfig:"MONGODB_PASSWORD"`

	// Token verification: JWKS endpoint when set, HS256 secret otherwise.
	JWKSURL   string `envconfig:"JWKS_URL"`
	JWTSecret string `envconfig:"JWT_SECRET"`

	// Optional infrastructure; empty values disable the integration.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	AMQPURL       string `envconfig:"AMQP_URL"`

	AllowOrigins []string `envconfig:"ALLOW_ORIGINS" default:"http://localhost:3000"`

	// Per-IP budget on booking mutation routes.
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWKSURL == "" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("either JWKS_URL or JWT_SECRET is required")
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
