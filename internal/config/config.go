// Package config loads service settings from defaults, an optional YAML file and the environment.
package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"

	EnvProduction = "production"
)

type Config struct {
	ServiceName string   `yaml:"service_name" envconfig:"SERVICE_NAME"`
	Env         string   `yaml:"env" envconfig:"ENV"`
	Port        int      `yaml:"port" envconfig:"PORT"`
	LogFile     string   `yaml:"log_file" envconfig:"LOG_FILE"`
	LogLevel    string   `yaml:"log_level" envconfig:"LOG_LEVEL"`
	CORSOrigins []string `yaml:"cors_origins" envconfig:"CORS_ORIGINS"`

	StoreDriver string `yaml:"store_driver" envconfig:"STORE_DRIVER"`
	MongoURI    string `yaml:"mongodb_uri" envconfig:"MONGODB_URI"`
	Database    string `yaml:"db_name" envconfig:"DB_NAME"`

	SessionSecret string        `yaml:"access_token_secret" envconfig:"ACCESS_TOKEN_SECRET"`
	SessionTTL    time.Duration `yaml:"session_ttl" envconfig:"SESSION_TTL"`
}

func Default() Config {
	return Config{
		ServiceName: "plantbay",
		Env:         "development",
		Port:        5000,
		LogLevel:    "info",
		CORSOrigins: []string{"http://localhost:5173", "http://localhost:5174"},
		StoreDriver: DriverMongo,
		MongoURI:    "mongodb://localhost:27017",
		Database:    "PlantBayDB",
		SessionTTL:  365 * 24 * time.Hour,
	}
}

// Load applies path (if non-empty) over the defaults, then environment variables, then validates.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "config: read %s", path)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "config: parse %s", path)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("config: ACCESS_TOKEN_SECRET is required")
	}
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("config: MONGODB_URI is required for the mongo driver")
		}
	case DriverMemory:
	default:
		return errors.Errorf("config: unknown store driver %q", c.StoreDriver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("config: invalid port %d", c.Port)
	}
	return nil
}

func (c Config) Production() bool { return c.Env == EnvProduction }
