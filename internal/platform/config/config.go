package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"scaffold/pkg/platform/strings"
)

// Storage drivers accepted in Storage.Driver.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config is the full process configuration. Precedence, lowest first:
// defaults, YAML file, .env file, process environment.
type Config struct {
	Server   Server      `yaml:"server"`
	Storage  Storage     `yaml:"storage"`
	Database Database    `yaml:"database"`
	Redis    RedisConfig `yaml:"redis"`
	Kafka    Kafka       `yaml:"kafka"`
	Logging  Logging     `yaml:"logging"`
	EventLog EventLog    `yaml:"event_log"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `yaml:"addr"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// JWTSigningKey enables bearer auth on write routes when set.
	JWTSigningKey string `yaml:"jwt_signing_key"`
	JWTIssuer     string `yaml:"jwt_issuer"`
	JWTAudience   string `yaml:"jwt_audience"`
}

// Storage selects the repository adapter.
type Storage struct {
	Driver string `yaml:"driver"`
}

// Database holds PostgreSQL connection settings.
type Database struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DSN renders a lib/pq connection URL.
func (d Database) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.Username, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// RedisConfig holds Redis client settings. An empty URL disables Redis.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	KeyPrefix    string        `yaml:"key_prefix"`
	// Channel receives event envelopes over pub/sub when set.
	Channel string `yaml:"channel"`
}

// Kafka enables the broker fan-out when Brokers is non-empty.
type Kafka struct {
	Brokers  []string `yaml:"brokers"`
	Topic    string   `yaml:"topic"`
	ClientID string   `yaml:"client_id"`
}

// Logging configures the slog handler.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// EventLog toggles the queryable event history.
type EventLog struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			AllowedOrigins:  []string{"http://localhost:3000"},
			RequestTimeout:  15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			JWTIssuer:       "scaffold",
			JWTAudience:     "scaffold-api",
		},
		Storage: Storage{Driver: DriverMemory},
		Database: Database{
			Host:            "localhost",
			Port:            5432,
			Username:        "postgres",
			Password:        "postgres",
			Name:            "app_db",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: Kafka{
			Topic:    "example-events",
			ClientID: "scaffold",
		},
		Logging:  Logging{Level: "info", Format: "json"},
		EventLog: EventLog{Enabled: true},
	}
}

// FromEnv builds a Config from defaults and environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg := Default()
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Load reads the optional YAML file at path, then an optional .env file, then
// the process environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations the process cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case DriverMemory, DriverPostgres:
	case DriverRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("storage driver redis requires redis.url"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Errorf("database.port %d out of range", c.Database.Port))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("kafka.topic is required when brokers are set"))
	}
	return errors.Join(errs...)
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Addr, "SERVER_ADDR")
	setList(&cfg.Server.AllowedOrigins, "CORS_ALLOWED_ORIGINS")
	setString(&cfg.Server.JWTSigningKey, "JWT_SIGNING_KEY")
	setString(&cfg.Server.JWTIssuer, "JWT_ISSUER")
	setString(&cfg.Server.JWTAudience, "JWT_AUDIENCE")
	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")

	setString(&cfg.Database.Host, "DATABASE_HOST")
	setString(&cfg.Database.Username, "DATABASE_USERNAME")
	setString(&cfg.Database.Password, "DATABASE_PASSWORD")
	setString(&cfg.Database.Name, "DATABASE_NAME")
	setString(&cfg.Database.SSLMode, "DATABASE_SSLMODE")

	setString(&cfg.Redis.URL, "REDIS_URL")
	setString(&cfg.Redis.KeyPrefix, "REDIS_KEY_PREFIX")
	setString(&cfg.Redis.Channel, "REDIS_CHANNEL")

	setList(&cfg.Kafka.Brokers, "KAFKA_BROKERS")
	setString(&cfg.Kafka.Topic, "KAFKA_TOPIC")

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")

	var errs []error
	errs = append(errs,
		setInt(&cfg.Database.Port, "DATABASE_PORT"),
		setDuration(&cfg.Server.RequestTimeout, "REQUEST_TIMEOUT"),
		setDuration(&cfg.Server.ShutdownTimeout, "SHUTDOWN_TIMEOUT"),
		setBool(&cfg.EventLog.Enabled, "EVENT_LOG_ENABLED"),
	)
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setList(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = strings.SplitList(v)
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
