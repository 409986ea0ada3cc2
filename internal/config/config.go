package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"InventoryPro"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"inventorypro"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		Secret   string        `envconfig:"AUTH_SECRET" required:"true"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
		// AdminEmail/AdminPassword seed the admin account on startup when
		// no user with that email exists yet. Leave empty to skip seeding.
		AdminEmail    string `envconfig:"ADMIN_EMAIL" default:""`
		AdminPassword string `envconfig:"ADMIN_PASSWORD" default:""`
	}

	// Stock holds the fallback minimum stock levels used for products
	// that do not carry their own.
	Stock struct {
		FinishedMin    int64 `envconfig:"MIN_STOCK_FINISHED" default:"10"`
		RawMaterialMin int64 `envconfig:"MIN_STOCK_RAW_MATERIAL" default:"5"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
