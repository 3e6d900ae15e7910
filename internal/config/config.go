package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	ArticlesSourceDisk   = "disk"
	ArticlesSourceRemote = "remote"
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
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// rate limiting, redis holds only the limiter counters
	RedisHost           string `toml:"redis_host"`
	RedisPort           string `toml:"redis_port"`
	RateLimitEnabled    bool   `toml:"rate_limit_enabled"`
	CalcRateLimitPerMin int    `toml:"calc_rate_limit_per_min"`
	// cors
	AllowedOrigins []string `toml:"allowed_origins"`
	// articles
	ArticlesSource  string `toml:"articles_source"`
	ArticlesDir     string `toml:"articles_dir"`
	ArticlesBaseURL string `toml:"articles_base_url"`
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

// Load reads the TOML file at path and returns the section for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}

	switch c.ArticlesSource {
	case "", ArticlesSourceDisk:
		c.ArticlesSource = ArticlesSourceDisk
		if c.ArticlesDir == "" {
			return fmt.Errorf("articles_dir is required for the disk articles source")
		}
	case ArticlesSourceRemote:
		if c.ArticlesBaseURL == "" {
			return fmt.Errorf("articles_base_url is required for the remote articles source")
		}
	default:
		return fmt.Errorf("unknown articles source: %s", c.ArticlesSource)
	}

	if c.RateLimitEnabled && c.CalcRateLimitPerMin <= 0 {
		return fmt.Errorf("calc_rate_limit_per_min must be positive when rate limiting is enabled")
	}

	return nil
}
