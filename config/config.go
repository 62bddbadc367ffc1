package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Booking   BookingConfig
	RateLimit RateLimitConfig
	RabbitMQ  RabbitMQConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Port     string
	Env      string
	Timezone string
}

type DBConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	SSLMode       string
	Timezone      string
	MigrateOnBoot bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// BookingConfig controls the lifecycle sweeper. A zero SweepInterval keeps
// sweeping on booking reads only.
type BookingConfig struct {
	SweepInterval time.Duration
}

// RateLimitConfig keys buckets by peer address; forwarding headers count
// only when the peer is one of TrustedProxies.
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
	IdleTTL           time.Duration
	TrustedProxies    []string
}

// RabbitMQConfig with an empty URL disables event publishing.
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_TIMEZONE", "Asia/Manila")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("DB_MIGRATE_ON_BOOT", true)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	viper.SetDefault("RATE_LIMIT_BURST", 10)
	viper.SetDefault("RABBITMQ_EXCHANGE", "dailywag.bookings")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	limiterIdleTTL, err := time.ParseDuration(viper.GetString("RATE_LIMIT_IDLE_TTL"))
	if err != nil {
		limiterIdleTTL = 10 * time.Minute
	}

	sweepInterval, err := time.ParseDuration(viper.GetString("BOOKING_SWEEP_INTERVAL"))
	if err != nil {
		sweepInterval = 0
	}

	config := &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		DB: DBConfig{
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASSWORD"),
			Name:          viper.GetString("DB_NAME"),
			SSLMode:       viper.GetString("DB_SSLMODE"),
			Timezone:      viper.GetString("DB_TIMEZONE"),
			MigrateOnBoot: viper.GetBool("DB_MIGRATE_ON_BOOT"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Booking: BookingConfig{
			SweepInterval: sweepInterval,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
			IdleTTL:           limiterIdleTTL,
			TrustedProxies:    splitList(viper.GetString("RATE_LIMIT_TRUSTED_PROXIES")),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      viper.GetString("RABBITMQ_URL"),
			Exchange: viper.GetString("RABBITMQ_EXCHANGE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	return config, nil
}

// Location resolves the clinic timezone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
