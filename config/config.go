package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultAPIPort      = "8080"
	DefaultListenerPort = "4000"
)

// Config is read from the environment, optionally seeded by a .env file
type Config struct {
	// Port is the listening port of whichever binary reads it
	Port string `mapstructure:"PORT"`
	// ListenerPort overrides Port for the listener, so one .env can serve both
	ListenerPort string `mapstructure:"LISTENER_PORT"`

	WebhookSecret     string `mapstructure:"WEBHOOK_SECRET"`
	WebhookURL        string `mapstructure:"WEBHOOK_URL"`
	WebhookPolicyFile string `mapstructure:"WEBHOOK_POLICY_FILE"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	ReplayProtection          bool `mapstructure:"REPLAY_PROTECTION"`
	TimestampToleranceSeconds int  `mapstructure:"TIMESTAMP_TOLERANCE_SECONDS"`
}

var defaults = map[string]any{
	"PORT":                        "",
	"LISTENER_PORT":               "",
	"WEBHOOK_SECRET":              "",
	"WEBHOOK_URL":                 "",
	"WEBHOOK_POLICY_FILE":         "",
	"DATABASE_URL":                "",
	"REDIS_ADDR":                  "",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"REPLAY_PROTECTION":           false,
	"TIMESTAMP_TOLERANCE_SECONDS": 300,
}

// GetConfig reads ./.env if present, then the environment
func GetConfig() (*Config, error) {
	return Load(".")
}

// Load reads .env from the first of paths that has one, then the environment.
// A missing .env file is not an error; environment variables win over it.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}

// APIPort is PORT, or 8080
func (c *Config) APIPort() string {
	return firstSet(c.Port, DefaultAPIPort)
}

// ListenPort is LISTENER_PORT, then PORT, then 4000
func (c *Config) ListenPort() string {
	return firstSet(c.ListenerPort, c.Port, DefaultListenerPort)
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Tolerance returns the verifier's anti-replay window
func (c *Config) Tolerance() time.Duration {
	return time.Duration(c.TimestampToleranceSeconds) * time.Second
}

// ValidateListener reports configuration the listener cannot start without
func (c *Config) ValidateListener() error {
	if c.WebhookSecret == "" {
		return errors.New("WEBHOOK_SECRET is required")
	}
	if c.TimestampToleranceSeconds <= 0 {
		return fmt.Errorf("TIMESTAMP_TOLERANCE_SECONDS must be positive (got %d)", c.TimestampToleranceSeconds)
	}
	if c.ReplayProtection && c.RedisAddr == "" {
		return errors.New("REPLAY_PROTECTION requires REDIS_ADDR")
	}
	return nil
}
