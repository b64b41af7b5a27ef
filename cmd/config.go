package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	ServiceName     string        `mapstructure:"SERVICE_NAME"`
	Environment     string        `mapstructure:"ENVIRONMENT"`
	HTTPPort        string        `mapstructure:"HTTP_PORT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	LogLevel     string `mapstructure:"LOG_LEVEL"`
	LogEncoding  string `mapstructure:"LOG_ENCODING"`
	EchoLogLevel string `mapstructure:"ECHO_LOG_LEVEL"`

	Store         string `mapstructure:"STORE"`
	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBName        string `mapstructure:"DB_NAME"`
	DBSslMode     string `mapstructure:"DB_SSLMODE"`
	DBAutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`

	CacheDriver   string        `mapstructure:"CACHE_DRIVER"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	NotifyDriver      string        `mapstructure:"NOTIFY_DRIVER"`
	KafkaBrokers      []string      `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic        string        `mapstructure:"KAFKA_TOPIC"`
	KafkaClientID     string        `mapstructure:"KAFKA_CLIENT_ID"`
	KafkaWriteTimeout time.Duration `mapstructure:"KAFKA_WRITE_TIMEOUT"`

	TracingEnabled  bool   `mapstructure:"TRACING_ENABLED"`
	TracingExporter string `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string `mapstructure:"OTLP_ENDPOINT"`
	OTLPInsecure    bool   `mapstructure:"OTLP_INSECURE"`

	ReminderSchedule string `mapstructure:"REMINDER_SCHEDULE"`
}

var defaults = map[string]any{
	"SERVICE_NAME":     "procurement",
	"ENVIRONMENT":      "development",
	"HTTP_PORT":        "8080",
	"SHUTDOWN_TIMEOUT": "15s",

	"LOG_LEVEL":      "info",
	"LOG_ENCODING":   "json",
	"ECHO_LOG_LEVEL": "WARN",

	"STORE":           StoreMemory,
	"DB_HOST":         "localhost",
	"DB_PORT":         "5432",
	"DB_USER":         "postgres",
	"DB_PASSWORD":     "",
	"DB_NAME":         "procurement",
	"DB_SSLMODE":      "disable",
	"DB_AUTO_MIGRATE": false,

	"CACHE_DRIVER":   "noop",
	"REDIS_ADDR":     "localhost:6379",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       0,
	"CACHE_TTL":      "10m",

	"NOTIFY_DRIVER":       "log",
	"KAFKA_BROKERS":       "",
	"KAFKA_TOPIC":         "procurement.events",
	"KAFKA_CLIENT_ID":     "procurement",
	"KAFKA_WRITE_TIMEOUT": "5s",

	"TRACING_ENABLED":  false,
	"TRACING_EXPORTER": "stdout",
	"OTLP_ENDPOINT":    "localhost:4317",
	"OTLP_INSECURE":    true,

	"REMINDER_SCHEDULE": "",
}

// LoadConfig loads envFile into the process environment when it exists and binds every
// known key. Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.KafkaBrokers = compact(cfg.KafkaBrokers)

	return cfg, cfg.Validate()
}

// Validate checks the settings that would otherwise fail late at first use.
func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreMemory, StorePostgres:
	default:
		errs = append(errs, fmt.Errorf("STORE must be %q or %q, got %q", StoreMemory, StorePostgres, c.Store))
	}
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// PostgresDSN builds a libpq keyword/value connection string.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// EchoLevel maps ECHO_LOG_LEVEL to a gommon level; unknown values mean WARN.
func (c Config) EchoLevel() log.Lvl {
	switch strings.ToUpper(c.EchoLogLevel) {
	case "DEBUG":
		return log.DEBUG
	case "INFO":
		return log.INFO
	case "ERROR":
		return log.ERROR
	case "OFF":
		return log.OFF
	default:
		return log.WARN
	}
}

func compact(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
