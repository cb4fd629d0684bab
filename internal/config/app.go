package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Pretty bool   `yaml:"pretty"`
}

// AppConfig — настройки процесса: адреса, правила бронирования, секрет токенов.
type AppConfig struct {
	GRPCAddr string `yaml:"grpc_addr" validate:"required"`
	HTTPAddr string `yaml:"http_addr" validate:"required"`

	// IANA-имя пояса, в котором считаются час суток и календарная дата.
	TimeZone string `yaml:"timezone" validate:"required"`

	LockWindow      time.Duration `yaml:"lock_window" validate:"gte=0"`
	BookingLeadTime time.Duration `yaml:"booking_lead_time" validate:"gte=0"`

	JWTSecret string `yaml:"jwt_secret" validate:"required,min=16"`

	Log LogConfig `yaml:"log"`

	location *time.Location
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		GRPCAddr:        ":50051",
		HTTPAddr:        ":8080",
		TimeZone:        "UTC",
		LockWindow:      24 * time.Hour,
		BookingLeadTime: 24 * time.Hour,
		Log:             LogConfig{Level: "info"},
	}
}

// LoadAppConfig: значения по умолчанию -> YAML (если path не пуст и файл есть)
// -> .env (если есть) -> переменные окружения -> валидация.
func LoadAppConfig(path string) (*AppConfig, error) {
	cfg := defaultAppConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("unmarshal YAML: %w", err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.TimeZone, err)
	}
	cfg.location = loc

	return &cfg, nil
}

func applyEnv(cfg *AppConfig) error {
	cfg.GRPCAddr = getEnv("GRPC_ADDR", cfg.GRPCAddr)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.TimeZone = getEnv("APP_TIMEZONE", cfg.TimeZone)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	if v, ok := os.LookupEnv("LOG_PRETTY"); ok {
		cfg.Log.Pretty = v == "1" || v == "true"
	}

	var err error
	if cfg.LockWindow, err = getEnvDuration("LOCK_WINDOW", cfg.LockWindow); err != nil {
		return err
	}
	if cfg.BookingLeadTime, err = getEnvDuration("BOOKING_LEAD_TIME", cfg.BookingLeadTime); err != nil {
		return err
	}
	return nil
}

// Location — разобранный TimeZone; UTC, если конфиг собран вручную.
func (c *AppConfig) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
