package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/fitra/internal/advisory"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// scoring
	MaxVolume int64 `toml:"max_volume"`
	// advisory service
	AdvisoryProvider       string `toml:"advisory_provider"`
	AdvisoryModel          string `toml:"advisory_model"`
	AdvisoryBaseURL        string `toml:"advisory_base_url"`
	AdvisoryTimeoutSeconds int    `toml:"advisory_timeout_seconds"`
	AdvisoryMaxTokens      int    `toml:"advisory_max_tokens"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// redis
	RedisHost         string `toml:"redis_host"`
	RedisPort         string `toml:"redis_port"`
	LatestTTLMinutes  int    `toml:"latest_ttl_minutes"`
	AnalyzeRatePerMin int    `toml:"analyze_rate_per_min"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
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

// Load reads the TOML file, picks the env section, applies defaults and validates it.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for an in-memory TOML document.
func Parse(env, content string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(content, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid [%s] config: %w", env, err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.MaxVolume == 0 {
		c.MaxVolume = 22500
	}
	if c.AdvisoryProvider == "" {
		c.AdvisoryProvider = advisory.ProviderOpenAI
	}
	if c.AdvisoryTimeoutSeconds == 0 {
		c.AdvisoryTimeoutSeconds = 30
	}
	if c.LatestTTLMinutes == 0 {
		c.LatestTTLMinutes = 24 * 60
	}
	if c.AnalyzeRatePerMin == 0 {
		c.AnalyzeRatePerMin = 10
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	if c.MaxVolume <= 0 {
		errs = append(errs, fmt.Errorf("max_volume must be positive, got %d", c.MaxVolume))
	}
	if !advisory.IsKnownProvider(c.AdvisoryProvider) {
		errs = append(errs, fmt.Errorf("unknown advisory provider: %s", c.AdvisoryProvider))
	}
	if c.AdvisoryTimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("advisory_timeout_seconds cannot be negative"))
	}
	if c.AnalyzeRatePerMin < 0 {
		errs = append(errs, fmt.Errorf("analyze_rate_per_min cannot be negative"))
	}
	return errors.Join(errs...)
}
