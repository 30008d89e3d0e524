package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	TelegramToken       string        `env:"TELEGRAM_TOKEN,required,notEmpty"`
	RedisAddr           string        `env:"REDIS_ADDR"`
	RedisPassword       string        `env:"REDIS_PASSWORD"`
	RedisDB             int           `env:"REDIS_DB" envDefault:"0"`
	RedisConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"2m"`
	SessionTTL          time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	AdminIDs            []int64       `env:"ADMIN_IDS" envSeparator:","`
	RateLimit           int64         `env:"RATE_LIMIT" envDefault:"30"`
	RateLimitWindow     time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	BotDebug            bool          `env:"BOT_DEBUG" envDefault:"false"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session TTL must be positive, got %s", cfg.SessionTTL)
	}

	if cfg.RateLimit > 0 && cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("rate limit window must be positive, got %s", cfg.RateLimitWindow)
	}

	return &cfg, nil
}

// IsAdmin reports whether the Telegram user may run admin commands.
func (c *Config) IsAdmin(userID int64) bool {
	return slices.Contains(c.AdminIDs, userID)
}
