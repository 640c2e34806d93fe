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
	Twitter TwitterConfig `yaml:"twitter" mapstructure:"twitter"`
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// TwitterConfig holds Twitter API credentials and settings. The two
// secrets are optional; without them requests use bearer-token auth.
type TwitterConfig struct {
	ConsumerKey    string  `yaml:"consumer_key" mapstructure:"consumer_key"`
	ConsumerSecret string  `yaml:"consumer_secret" mapstructure:"consumer_secret"`
	AccessToken    string  `yaml:"access_token" mapstructure:"access_token"`
	AccessSecret   string  `yaml:"access_secret" mapstructure:"access_secret"`
	BaseURL        string  `yaml:"base_url" mapstructure:"base_url"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
}

// FetchConfig configures the fetch pipeline.
type FetchConfig struct {
	// MaxPages caps the search calls per fetch. Twitter allows 450
	// queries every 15 minutes.
	MaxPages    int    `yaml:"max_pages" mapstructure:"max_pages"`
	Strict      bool   `yaml:"strict" mapstructure:"strict"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("GEOFETCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Credentials default to empty so environment overrides
	// bind during Unmarshal.
	v.SetDefault("twitter.consumer_key", "")
	v.SetDefault("twitter.consumer_secret", "")
	v.SetDefault("twitter.access_token", "")
	v.SetDefault("twitter.access_secret", "")
	v.SetDefault("twitter.base_url", "https://api.twitter.com/1.1")
	v.SetDefault("twitter.rate_limit_rps", 0.5)
	v.SetDefault("fetch.max_pages", 450)
	v.SetDefault("fetch.strict", false)
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.user_agent", "geofetch/1.0")
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
