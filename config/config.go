package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	devAPIBaseURL      = "http://localhost:8000"
	devAdminPathSecret = "manage"
	devMediaBaseURL    = "http://localhost:8000/media"
)

type Config struct {
	Environment     string   `mapstructure:"environment" json:"environment"`
	Port            string   `mapstructure:"port" json:"port"`
	APIBaseURL      string   `mapstructure:"api_base_url" json:"api_base_url"`
	AdminPathSecret string   `mapstructure:"admin_path_secret" json:"admin_path_secret"`
	MediaBaseURL    string   `mapstructure:"media_base_url" json:"media_base_url"`
	LogLevel        LogLevel `mapstructure:"log_level" json:"log_level"`
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// LoadConfig reads config.yaml and environment overrides once at startup.
// The three backend coordinates are hard requirements in production and fall
// back to fixed development values otherwise.
func LoadConfig() Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("adminsdk")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	cfg.APIBaseURL = requireOrDefault(cfg, "api_base_url", cfg.APIBaseURL, devAPIBaseURL)
	cfg.AdminPathSecret = requireOrDefault(cfg, "admin_path_secret", cfg.AdminPathSecret, devAdminPathSecret)
	cfg.MediaBaseURL = requireOrDefault(cfg, "media_base_url", cfg.MediaBaseURL, devMediaBaseURL)
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.MediaBaseURL = strings.TrimRight(cfg.MediaBaseURL, "/")

	return cfg
}

func requireOrDefault(cfg Config, key, value, devDefault string) string {
	if value != "" {
		return value
	}
	if cfg.IsProduction() {
		panic(fmt.Errorf("fatal error config: %s is required in production", key))
	}
	return devDefault
}

type LogLevel string

const (
	logLevelDebug LogLevel = "debug"
	logLevelInfo  LogLevel = "info"
	logLevelWarn  LogLevel = "warn"
	logLevelError LogLevel = "error"
)

func (l LogLevel) ZeroLog() zerolog.Level {
	switch l {
	case logLevelDebug:
		return zerolog.DebugLevel
	case logLevelInfo:
		return zerolog.InfoLevel
	case logLevelWarn:
		return zerolog.WarnLevel
	case logLevelError:
		return zerolog.ErrorLevel

	default:
		return zerolog.InfoLevel
	}
}
