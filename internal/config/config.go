package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Environment string `toml:"environment" validate:"required"`
	Host        string `toml:"host"`
	Port        int    `toml:"port" validate:"required,min=1,max=65535"`
	MetricsPort int    `toml:"metrics_port" validate:"omitempty,min=1,max=65535"`
	// logging
	LogLevel      string `toml:"log_level" validate:"omitempty,oneof=trace debug info warn error fatal"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// redis
	RedisHost string `toml:"redis_host" validate:"required"`
	RedisPort string `toml:"redis_port" validate:"required"`
	// postgres
	PostgresHost   string `toml:"postgres_host" validate:"required"`
	PostgresPort   string `toml:"postgres_port" validate:"required"`
	PostgresDBName string `toml:"postgres_db_name" validate:"required"`
	// suggestions
	GeminiBaseURL      string            `toml:"gemini_base_url" validate:"omitempty,url"`
	DefaultModel       string            `toml:"default_model"`
	FlowModels         map[string]string `toml:"flow_models"`
	InferenceTimeout   Duration          `toml:"inference_timeout"`
	SuggestRateLimit   int               `toml:"suggest_rate_limit" validate:"min=0"`
	WorkoutsCacheBytes int               `toml:"workouts_cache_bytes" validate:"min=0"`
	AllowedOrigins     []string          `toml:"allowed_origins"`
}

// Duration reads TOML strings like "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", env, err)
	}

	return cfg, nil
}
