package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the process configuration. Every field can be set through
// the environment (APP_PORT, DATABASE_DSN, ...); defaults cover local
// development.
type Config struct {
	AppPort string

	SessionBackend   string // "postgres", "redis" or "memory"
	SessionWindow    time.Duration
	SessionRetention time.Duration // redis key retention, >> window

	DatabaseDSN string

	RedisAddr        string
	RedisPassword    string
	RedisPingTimeout time.Duration
}

func Load() Config {
	v := viper.New()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("SESSION_BACKEND", "postgres")
	v.SetDefault("SESSION_WINDOW_MINUTES", 15)
	v.SetDefault("SESSION_RETENTION_HOURS", 24)
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_PING_TIMEOUT_SECONDS", 2)

	v.AutomaticEnv()

	return Config{
		AppPort: v.GetString("APP_PORT"),

		SessionBackend:   v.GetString("SESSION_BACKEND"),
		SessionWindow:    time.Duration(v.GetInt("SESSION_WINDOW_MINUTES")) * time.Minute,
		SessionRetention: time.Duration(v.GetInt("SESSION_RETENTION_HOURS")) * time.Hour,

		DatabaseDSN: v.GetString("DATABASE_DSN"),

		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisPingTimeout: time.Duration(v.GetInt("REDIS_PING_TIMEOUT_SECONDS")) * time.Second,
	}
}
