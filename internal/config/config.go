// Package config loads the gateway settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	Env                  string        `mapstructure:"app_env"`
	Port                 string        `mapstructure:"port"`
	StoreDriver          string        `mapstructure:"store_driver"`
	MongoURI             string        `mapstructure:"mongodb_uri"`
	MongoDatabase        string        `mapstructure:"mongodb_database"`
	DatabaseURL          string        `mapstructure:"database_url"`
	JWTSecret            string        `mapstructure:"jwt_secret"`
	GoogleClientID       string        `mapstructure:"google_client_id_web"`
	GoogleClientSecret   string        `mapstructure:"google_client_secret_web"`
	PublicBaseURL        string        `mapstructure:"public_base_url"`
	QRCodeAPIURL         string        `mapstructure:"qr_code_api_url"`
	CORSAllowedOrigins   string        `mapstructure:"cors_allowed_origins"`
	LogLevel             string        `mapstructure:"log_level"`
	LogFile              string        `mapstructure:"log_file"`
	StatsSchedule        string        `mapstructure:"stats_schedule"`
	PublicSurveyCacheTTL time.Duration `mapstructure:"public_survey_cache_ttl"`
}

// setDefaults registers every key so AutomaticEnv picks it up on Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("port", "3000")
	v.SetDefault("store_driver", DriverMongo)
	v.SetDefault("mongodb_uri", "")
	v.SetDefault("mongodb_database", "just_ask_v1")
	v.SetDefault("database_url", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("google_client_id_web", "")
	v.SetDefault("google_client_secret_web", "")
	v.SetDefault("public_base_url", "https://justask.app")
	v.SetDefault("qr_code_api_url", "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("stats_schedule", "@hourly")
	v.SetDefault("public_survey_cache_ttl", "5m")
}

// Load reads envFiles (".env" when none are given) into the process
// environment and decodes the configuration. Missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var errs []error
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}

	switch c.StoreDriver {
	case DriverMongo:
		require("MONGODB_URI", c.MongoURI)
	case DriverPostgres:
		require("DATABASE_URL", c.DatabaseURL)
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	require("JWT_SECRET", c.JWTSecret)
	require("GOOGLE_CLIENT_ID_WEB", c.GoogleClientID)
	require("GOOGLE_CLIENT_SECRET_WEB", c.GoogleClientSecret)

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
