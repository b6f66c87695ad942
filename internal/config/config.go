// Package config loads application configuration from a YAML file and
// environment variables and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	SERP       SERPConfig       `yaml:"serp" mapstructure:"serp"`
	Wiki       WikiConfig       `yaml:"wiki" mapstructure:"wiki"`
	Registry   RegistryConfig   `yaml:"registry" mapstructure:"registry"`
	MarketData MarketDataConfig `yaml:"marketdata" mapstructure:"marketdata"`
	Enrich     EnrichConfig     `yaml:"enrich" mapstructure:"enrich"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Taxonomy   TaxonomyConfig   `yaml:"taxonomy" mapstructure:"taxonomy"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// SERPConfig holds search results API settings.
type SERPConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// WikiConfig holds encyclopedia REST API settings.
type WikiConfig struct {
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// RegistryConfig holds company registry API settings.
type RegistryConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// MarketDataConfig holds financial data API settings.
type MarketDataConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// EnrichConfig tunes the enrichment run.
type EnrichConfig struct {
	TimeoutSecs        int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	AdapterTimeoutSecs int `yaml:"adapter_timeout_secs" mapstructure:"adapter_timeout_secs"`
}

// BatchConfig configures batch enrichment over stored companies.
type BatchConfig struct {
	Limit   int `yaml:"limit" mapstructure:"limit"`
	DelayMS int `yaml:"delay_ms" mapstructure:"delay_ms"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// TaxonomyConfig points at an optional industry table override.
type TaxonomyConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ENRICH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("serp.base_url", "https://api.scaleserp.com")
	v.SetDefault("wiki.base_url", "https://en.wikipedia.org/api/rest_v1")
	v.SetDefault("wiki.user_agent", "wastemetrics-enrich-cli (ops@wastemetrics.io)")
	v.SetDefault("registry.base_url", "https://api.company-information.service.gov.uk")
	v.SetDefault("marketdata.base_url", "https://financialmodelingprep.com/api/v3")
	v.SetDefault("enrich.timeout_secs", 20)
	v.SetDefault("enrich.adapter_timeout_secs", 10)
	v.SetDefault("batch.limit", 100)
	v.SetDefault("batch.delay_ms", 1500)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration needed for the given command mode.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "enrich":
		// No hard requirements: adapters without credentials are
		// simply not applicable.
	case "batch", "import", "migrate":
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required")
		}
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Enrich.TimeoutSecs <= 0 {
		problems = append(problems, "enrich.timeout_secs must be > 0")
	}
	if c.Enrich.AdapterTimeoutSecs <= 0 {
		problems = append(problems, "enrich.adapter_timeout_secs must be > 0")
	}
	if c.Batch.DelayMS < 0 {
		problems = append(problems, "batch.delay_ms must be >= 0")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid for %s: %s", mode, strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
