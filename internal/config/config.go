package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port       int    `env:"PORT" envDefault:"3000"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	EnableHSTS bool   `env:"ENABLE_HSTS" envDefault:"false"`
	DB         DB
	Reviews    Reviews
}

type DB struct {
	Host         string        `env:"DB_HOST" envDefault:"localhost"`
	Port         int           `env:"DB_PORT" envDefault:"5432"`
	Name         string        `env:"DB_NAME" envDefault:"books"`
	User         string        `env:"DB_USER" envDefault:"postgres"`
	Password     string        `env:"DB_PASSWORD"`
	MaxConns     int32         `env:"DB_MAX_CONNS" envDefault:"4"`
	QueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT" envDefault:"5s"`
}

type Reviews struct {
	APIKey  string        `env:"PUB_API_KEY"`
	BaseURL string        `env:"REVIEWS_BASE_URL" envDefault:"https://api.nytimes.com/svc/books/v3/reviews.json"`
	Timeout time.Duration `env:"REVIEWS_TIMEOUT" envDefault:"10s"`
}

// Load reads .env files, parses the environment and applies the port
// override from the first command-line argument when it is a number.
func Load(args []string) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if len(args) > 0 {
		if port, err := strconv.Atoi(args[0]); err == nil && port > 0 {
			cfg.Port = port
		}
	}

	if cfg.DB.MaxConns < 1 {
		cfg.DB.MaxConns = 4
	}
	return cfg, nil
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// DatabaseURL builds the pgx connection string.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.DB.Host, strconv.Itoa(c.DB.Port)),
		Path:   "/" + c.DB.Name,
	}
	if c.DB.Password != "" {
		u.User = url.UserPassword(c.DB.User, c.DB.Password)
	} else if c.DB.User != "" {
		u.User = url.User(c.DB.User)
	}
	q := url.Values{}
	q.Set("pool_max_conns", strconv.Itoa(int(c.DB.MaxConns)))
	u.RawQuery = q.Encode()
	return u.String()
}
