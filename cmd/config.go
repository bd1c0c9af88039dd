package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"tracker/internal/adapters/out/postgres"
	"tracker/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort              = "8080"
	defaultDBPort                = "5432"
	defaultDBName                = "tracker"
	defaultDBSslMode             = "disable"
	defaultLogLevel              = "info"
	defaultSubscriberSendTimeout = 5 * time.Second
	defaultSubscriberMailboxSize = 64
	defaultReplayInterval        = time.Second
	defaultStatsInterval         = 30 * time.Second
)

// Config is read from the environment; the env tag names the variable.
type Config struct {
	HTTPPort string     `env:"HTTP_PORT" validate:"tcp_port"`
	LogLevel slog.Level `env:"LOG_LEVEL"`

	SubscriberSendTimeout time.Duration `env:"SUBSCRIBER_SEND_TIMEOUT" validate:"gt=0"`
	SubscriberMailboxSize int           `env:"SUBSCRIBER_MAILBOX_SIZE" validate:"gt=0"`

	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT" validate:"tcp_port"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" validate:"required"`
	DBSslMode  string `env:"DB_SSLMODE" validate:"oneof=disable allow prefer require verify-ca verify-full"`

	ReplayFile     string        `env:"REPLAY_FILE"`
	ReplayInterval time.Duration `env:"REPLAY_INTERVAL" validate:"gt=0"`
	StatsInterval  time.Duration `env:"STATS_INTERVAL" validate:"gt=0"`
}

// JournalEnabled reports whether update records are persisted to PostgreSQL.
func (c Config) JournalEnabled() bool {
	return c.DBHost != ""
}

// ReplayEnabled reports whether a replay file was configured.
func (c Config) ReplayEnabled() bool {
	return c.ReplayFile != ""
}

// DBSettings returns the journal database connection settings.
func (c Config) DBSettings() postgres.Settings {
	return postgres.Settings{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

// LoadConfig reads an optional .env file from the working directory and then
// builds the configuration from the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env file: %w", err)
	}
	return LoadConfigFromEnv(os.LookupEnv)
}

// LoadConfigFromEnv builds the configuration from lookup, applying defaults
// for unset variables. Every invalid value is reported as an
// errs.ValueIsInvalidError naming the variable.
func LoadConfigFromEnv(lookup func(string) (string, bool)) (Config, error) {
	env := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:   env("HTTP_PORT", defaultHTTPPort),
		DBHost:     env("DB_HOST", ""),
		DBPort:     env("DB_PORT", defaultDBPort),
		DBUser:     env("DB_USER", ""),
		DBPassword: env("DB_PASSWORD", ""),
		DBName:     env("DB_NAME", defaultDBName),
		DBSslMode:  env("DB_SSLMODE", defaultDBSslMode),
		ReplayFile: env("REPLAY_FILE", ""),
	}

	var err error
	if parseErr := cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", defaultLogLevel))); parseErr != nil {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", parseErr))
	}

	var parseErr error
	cfg.SubscriberSendTimeout, parseErr = parseDuration(
		"SUBSCRIBER_SEND_TIMEOUT", env("SUBSCRIBER_SEND_TIMEOUT", ""), defaultSubscriberSendTimeout)
	err = errors.Join(err, parseErr)
	cfg.ReplayInterval, parseErr = parseDuration("REPLAY_INTERVAL", env("REPLAY_INTERVAL", ""), defaultReplayInterval)
	err = errors.Join(err, parseErr)
	cfg.StatsInterval, parseErr = parseDuration("STATS_INTERVAL", env("STATS_INTERVAL", ""), defaultStatsInterval)
	err = errors.Join(err, parseErr)
	cfg.SubscriberMailboxSize, parseErr = parseInt(
		"SUBSCRIBER_MAILBOX_SIZE", env("SUBSCRIBER_MAILBOX_SIZE", ""), defaultSubscriberMailboxSize)
	err = errors.Join(err, parseErr)

	err = errors.Join(err, validateConfig(cfg))
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validateConfig applies the validate tags and reports violations by
// variable name.
func validateConfig(cfg Config) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("env")
	})
	if err := validate.RegisterValidation("tcp_port", isTCPPort); err != nil {
		return err
	}

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	joined := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause(
			fe.Field(),
			fmt.Errorf("failed %q check for value %q", fe.Tag(), fmt.Sprint(fe.Value())),
		))
	}
	return errors.Join(joined...)
}

func isTCPPort(fl validator.FieldLevel) bool {
	port, err := strconv.Atoi(fl.Field().String())
	return err == nil && port >= 1 && port <= 65535
}

func parseDuration(name, raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return d, nil
}

func parseInt(name, raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return n, nil
}
