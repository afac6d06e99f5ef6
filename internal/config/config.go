package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "HRDESK"

type Config struct {
	Server struct {
		Addr         string        `mapstructure:"addr"`
		Mode         string        `mapstructure:"mode"`
		ReadTimeout  time.Duration `mapstructure:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
	} `mapstructure:"server"`

	API struct {
		// BaseURL is the external HR API root, e.g. http://localhost:8000/api/v1.
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"api"`

	Session struct {
		RedisURL     string        `mapstructure:"redis_url"`
		PoolSize     int           `mapstructure:"pool_size"`
		KeyPrefix    string        `mapstructure:"key_prefix"`
		CookieName   string        `mapstructure:"cookie_name"`
		TTL          time.Duration `mapstructure:"ttl"`
		SecureCookie bool          `mapstructure:"secure_cookie"`
	} `mapstructure:"session"`

	CLI struct {
		// TokenPath overrides the location of the hrdeskctl credential file.
		TokenPath string `mapstructure:"token_path"`
	} `mapstructure:"cli"`

	Observability struct {
		MetricsEnabled     bool   `mapstructure:"metrics_enabled"`
		TraceEnabled       bool   `mapstructure:"trace_enabled"`
		TracingEndpointURL string `mapstructure:"tracing_endpoint_url"`
		LogLevel           string `mapstructure:"log_level"`
		Format             string `mapstructure:"log_format"`
		LogSource          bool   `mapstructure:"log_source"`
	} `mapstructure:"observability"`

	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("api.base_url", "http://localhost:8000/api/v1")

	v.SetDefault("session.pool_size", 10)
	v.SetDefault("session.key_prefix", "hrdesk:session:")
	v.SetDefault("session.cookie_name", "hrdesk_session")
	v.SetDefault("session.ttl", 12*time.Hour)

	v.SetDefault("observability.metrics_enabled", true)
	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.log_format", "text")
}

// Load reads ./config/config.yaml (or ./config.yaml), an optional
// config.$APP_ENV.yaml overlay and HRDESK_* environment variables.
// A missing base file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	logger := slog.Default()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		logger.Debug("No config file found, using defaults and environment")
	}

	if env := os.Getenv("APP_ENV"); env != "" {
		v.SetConfigName(fmt.Sprintf("config.%s", env))
		if err := v.MergeInConfig(); err != nil {
			logger.Info("No environment-specific config (optional)", slog.String("env", env))
		} else {
			logger.Info("Environment-specific config loaded", slog.String("env", env))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		slog.Default().Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}
