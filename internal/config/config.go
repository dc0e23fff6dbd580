package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"tippy-tappy/internal/tipping"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Addr        string `envconfig:"ADDR" default:":8080"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9095"`

	// StoreDriver selects the snapshot backend. An empty StorePath with the
	// file driver keeps the store in memory.
	StoreDriver string `envconfig:"STORE_DRIVER" default:"file"`
	StorePath   string `envconfig:"STORE_PATH"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	Timezone string `envconfig:"TIMEZONE" default:"UTC"`

	PointsExact        int `envconfig:"POINTS_EXACT" default:"3"`
	PointsDifferential int `envconfig:"POINTS_DIFFERENTIAL" default:"2"`
	PointsDirection    int `envconfig:"POINTS_DIRECTION" default:"1"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"false"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS"`
}

func Default() Config {
	points := tipping.DefaultPoints()
	return Config{
		Addr:               ":8080",
		MetricsAddr:        ":9095",
		StoreDriver:        DriverFile,
		Timezone:           "UTC",
		PointsExact:        points.Exact,
		PointsDifferential: points.Differential,
		PointsDirection:    points.Direction,
		LogLevel:           "info",
	}
}

// Load reads TIPPY_* variables on top of the defaults.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("tippy", &cfg); err != nil {
		return Config{}, err
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	return cfg, nil
}

func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c Config) Points() tipping.Points {
	return tipping.Points{
		Exact:        c.PointsExact,
		Differential: c.PointsDifferential,
		Direction:    c.PointsDirection,
	}
}
