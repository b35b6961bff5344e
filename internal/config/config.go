// Package config loads application configuration and the keyword/alias
// dictionaries the pipeline stages depend on.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Outscraper OutscraperConfig `yaml:"outscraper" mapstructure:"outscraper"`
	Scrape     ScrapeConfig     `yaml:"scrape" mapstructure:"scrape"`
	Enrich     EnrichConfig     `yaml:"enrich" mapstructure:"enrich"`
	Verify     VerifyConfig     `yaml:"verify" mapstructure:"verify"`
	Export     ExportConfig     `yaml:"export" mapstructure:"export"`
	Keywords   KeywordsConfig   `yaml:"keywords" mapstructure:"keywords"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the checkpoint database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// OutscraperConfig holds maps-search API settings.
type OutscraperConfig struct {
	Key            string `yaml:"key" mapstructure:"key"`
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	Limit          int    `yaml:"limit" mapstructure:"limit"`
	Language       string `yaml:"language" mapstructure:"language"`
	Region         string `yaml:"region" mapstructure:"region"`
	QueryDelaySecs int    `yaml:"query_delay_secs" mapstructure:"query_delay_secs"`
}

// ScrapeConfig configures website text retrieval.
type ScrapeConfig struct {
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	DelayMs      int    `yaml:"delay_ms" mapstructure:"delay_ms"`
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// EnrichConfig configures the enrichment batch.
type EnrichConfig struct {
	Concurrency     int `yaml:"concurrency" mapstructure:"concurrency"`
	CheckpointEvery int `yaml:"checkpoint_every" mapstructure:"checkpoint_every"`
}

// VerifyConfig configures license board lookups.
type VerifyConfig struct {
	DelaySecs   int `yaml:"delay_secs" mapstructure:"delay_secs"`
	TimeoutSecs int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ExportConfig configures the destination CSV export.
type ExportConfig struct {
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size"`
}

// KeywordsConfig points at the directory of keyword/alias YAML files.
type KeywordsConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ServerConfig configures the status server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, config file, and environment.
func Load() (*Config, error) {
	// .env is optional; API keys usually live there.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("THERAPISTINDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "directory.db")
	v.SetDefault("outscraper.base_url", "https://api.app.outscraper.com")
	v.SetDefault("outscraper.limit", 100)
	v.SetDefault("outscraper.language", "en")
	v.SetDefault("outscraper.region", "US")
	v.SetDefault("outscraper.query_delay_secs", 5)
	v.SetDefault("scrape.timeout_secs", 15)
	v.SetDefault("scrape.delay_ms", 1000)
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (compatible; TherapistIndexBot/1.0)")
	v.SetDefault("scrape.max_body_bytes", 512*1024)
	v.SetDefault("enrich.concurrency", 4)
	v.SetDefault("enrich.checkpoint_every", 50)
	v.SetDefault("verify.delay_secs", 2)
	v.SetDefault("verify.timeout_secs", 15)
	v.SetDefault("export.batch_size", 500)
	v.SetDefault("keywords.dir", "config")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
