package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Version     string

	DatabaseURL string
	DB          struct {
		MaxOpenConns int
		MaxIdleConns int
		MaxIdleTime  time.Duration
	}

	Secret               string
	TokenLifetime        time.Duration
	RequireOwnerOnUpdate bool

	LogLevel       slog.Level
	TrustedOrigins []string

	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int

	UserCacheTTL time.Duration

	RabbitMQURL string

	Mail struct {
		Host      string
		Port      int
		User      string
		Password  string
		Sender    string
		Recipient string
	}

	TLSCertFile string
	TLSKeyFile  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3003")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("VERSION", "1.0.0")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("TEST_DATABASE_URL", "")
	v.SetDefault("SECRET", "")
	v.SetDefault("TOKEN_LIFETIME", "1h")
	v.SetDefault("REQUIRE_OWNER_ON_UPDATE", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TRUSTED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_TIME", "15m")
	v.SetDefault("USER_CACHE_TTL", "5m")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("MAIL_HOST", "")
	v.SetDefault("MAIL_PORT", 25)
	v.SetDefault("MAIL_USER", "")
	v.SetDefault("MAIL_PASSWORD", "")
	v.SetDefault("MAIL_SENDER", "Bloglist <no-reply@bloglist.local>")
	v.SetDefault("MAIL_RECIPIENT", "")
	v.SetDefault("TLS_CERT_FILE", "")
	v.SetDefault("TLS_KEY_FILE", "")
}

// loadConfig reads the dotenv file at path, if there is one, and lets the
// process environment override it.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not read %s: %w", path, err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	cfg.Port = v.GetString("PORT")
	cfg.Environment = v.GetString("ENVIRONMENT")
	cfg.Version = v.GetString("VERSION")

	cfg.DatabaseURL = v.GetString("DATABASE_URL")
	if cfg.Environment == "test" && v.GetString("TEST_DATABASE_URL") != "" {
		cfg.DatabaseURL = v.GetString("TEST_DATABASE_URL")
	}
	cfg.DB.MaxOpenConns = v.GetInt("DB_MAX_OPEN_CONNS")
	cfg.DB.MaxIdleConns = v.GetInt("DB_MAX_IDLE_CONNS")
	cfg.DB.MaxIdleTime = v.GetDuration("DB_MAX_IDLE_TIME")

	cfg.Secret = v.GetString("SECRET")
	cfg.TokenLifetime = v.GetDuration("TOKEN_LIFETIME")
	cfg.RequireOwnerOnUpdate = v.GetBool("REQUIRE_OWNER_ON_UPDATE")

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	for _, origin := range strings.Split(v.GetString("TRUSTED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.TrustedOrigins = append(cfg.TrustedOrigins, origin)
		}
	}

	cfg.RateLimitEnabled = v.GetBool("RATE_LIMIT_ENABLED")
	cfg.RateLimitRPS = v.GetFloat64("RATE_LIMIT_RPS")
	cfg.RateLimitBurst = v.GetInt("RATE_LIMIT_BURST")

	cfg.UserCacheTTL = v.GetDuration("USER_CACHE_TTL")

	cfg.RabbitMQURL = v.GetString("RABBITMQ_URL")

	cfg.Mail.Host = v.GetString("MAIL_HOST")
	cfg.Mail.Port = v.GetInt("MAIL_PORT")
	cfg.Mail.User = v.GetString("MAIL_USER")
	cfg.Mail.Password = v.GetString("MAIL_PASSWORD")
	cfg.Mail.Sender = v.GetString("MAIL_SENDER")
	cfg.Mail.Recipient = v.GetString("MAIL_RECIPIENT")

	cfg.TLSCertFile = v.GetString("TLS_CERT_FILE")
	cfg.TLSKeyFile = v.GetString("TLS_KEY_FILE")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *Config) validate() error {
	switch {
	case cfg.Secret == "":
		return errors.New("SECRET must be set")
	case cfg.DatabaseURL == "":
		return errors.New("DATABASE_URL must be set")
	case cfg.Environment != "development" && cfg.Environment != "production" && cfg.Environment != "test":
		return fmt.Errorf("ENVIRONMENT must be development, production or test, got %q", cfg.Environment)
	case cfg.RateLimitEnabled && cfg.RateLimitRPS <= 0:
		return errors.New("RATE_LIMIT_RPS must be positive")
	}

	return nil
}

func (cfg *Config) mailEnabled() bool {
	return cfg.RabbitMQURL != "" && cfg.Mail.Host != "" && cfg.Mail.Recipient != ""
}
