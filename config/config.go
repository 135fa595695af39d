package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultConfigYAML is the built-in configuration every deployment starts from.
//
//go:embed default.yaml
var DefaultConfigYAML []byte

// Config application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Email    EmailConfig    `mapstructure:"email"`
	Log      LogConfig      `mapstructure:"log"`
	Stats    StatsConfig    `mapstructure:"stats"`
	Alerts   AlertsConfig   `mapstructure:"alerts"`
	Login    LoginConfig    `mapstructure:"login"`
}

// ServerConfig HTTP server
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

// DatabaseConfig MySQL connection
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
}

// JWTConfig token signing
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

// EmailConfig SMTP settings for budget alerts
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// LogConfig logrus level and formatter ("json" or "text")
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StatsConfig defaults for the statistics views
type StatsConfig struct {
	DefaultPeriod string   `mapstructure:"default_period"`
	Currency      string   `mapstructure:"currency"`
	Locale        string   `mapstructure:"locale"`
	Palette       []string `mapstructure:"palette"`
}

// AlertsConfig budget over-limit notifications
type AlertsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoginConfig login rate limiting
type LoginConfig struct {
	MaxAttempts   int `mapstructure:"max_attempts"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// Window returns the rate limit window.
func (l LoginConfig) Window() time.Duration {
	if l.WindowMinutes <= 0 {
		return time.Minute
	}
	return time.Duration(l.WindowMinutes) * time.Minute
}

var (
	// GlobalConfig global configuration instance
	GlobalConfig *Config
)

// LoadConfig loads configuration.
// Priority: environment > external config file > embedded defaults.
// configPath is optional.
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional; values land in the process environment for viper to pick up
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("read embedded config: %w", err)
	}
	logrus.Debug("loaded embedded default config")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			logrus.WithError(err).Warnf("cannot read config file %s", configPath)
		} else {
			logrus.Infof("merged config file: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/fintrack")
		externalViper.AddConfigPath("$HOME/.fintrack")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				logrus.WithError(err).Warn("merge external config failed")
			} else {
				logrus.Infof("merged config file: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	v.SetEnvPrefix("FINTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.JWT.ExpireHours <= 0 {
		cfg.JWT.ExpireHours = 24
	}
	cfg.JWT.ExpireTime = time.Duration(cfg.JWT.ExpireHours) * time.Hour
	if cfg.Stats.DefaultPeriod == "" {
		cfg.Stats.DefaultPeriod = "month"
	}
	if cfg.Login.MaxAttempts <= 0 {
		cfg.Login.MaxAttempts = 10
	}

	GlobalConfig = &cfg

	return &cfg, nil
}

// MustLoadConfig loads configuration or panics
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}

// GetConfig returns the global configuration
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("config not initialized, call LoadConfig first")
	}
	return GlobalConfig
}

// IsRelease reports whether the server runs in gin release mode.
func IsRelease() bool {
	return GlobalConfig != nil && GlobalConfig.Server.Mode == "release"
}

// SafeErrorMessage hides internal error details from clients in release mode
func SafeErrorMessage(err error, fallback string) string {
	if err == nil || IsRelease() {
		return fallback
	}
	return err.Error()
}

// PrintConfig logs the current configuration without secrets
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	logrus.WithFields(logrus.Fields{
		"port":     GlobalConfig.Server.Port,
		"mode":     GlobalConfig.Server.Mode,
		"database": fmt.Sprintf("%s@%s:%s/%s", GlobalConfig.Database.Username, GlobalConfig.Database.Host, GlobalConfig.Database.Port, GlobalConfig.Database.DBName),
		"email":    GlobalConfig.Email.Enabled,
		"alerts":   GlobalConfig.Alerts.Enabled,
		"period":   GlobalConfig.Stats.DefaultPeriod,
	}).Info("current config")
}
