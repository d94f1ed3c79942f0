package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

// URL renders the connection string for the given scheme: "postgres" for pgx, "pgx5" for migrations.
func (c DBConfig) URL(scheme string) string {
	u := url.URL{
		Scheme: scheme,
		User:   url.UserPassword(c.Username, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.DBName,
	}
	if c.SSLMode != "" {
		u.RawQuery = "sslmode=" + url.QueryEscape(c.SSLMode)
	}
	return u.String()
}

type RedisConfig struct {
	Addr    string
	DB      int
	UserTTL time.Duration
}

type EventsConfig struct {
	// Driver is one of "rabbitmq", "kafka" or "log".
	Driver       string
	RabbitMQURL  string
	Queue        string
	KafkaBrokers []string
	KafkaTopic   string
}

type OutboxConfig struct {
	Interval  time.Duration
	BatchSize int
}

type Config struct {
	Port         string
	LogPath      string
	AccessSecret string
	// Storage is "postgres" or "memory".
	Storage  string
	Postgres DBConfig
	Redis    RedisConfig
	Events   EventsConfig
	Outbox   OutboxConfig
}

var (
	errNoAccessSecret = errors.New("auth.access_secret is required")
	errUnknownStorage = errors.New("storage must be postgres or memory")
	errUnknownEvents  = errors.New("events.driver must be rabbitmq, kafka or log")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", ":8080")
	v.SetDefault("app.log_path", "./app.log")
	v.SetDefault("storage", "postgres")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.sslmode", "disable")

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.user_ttl", "10m")

	v.SetDefault("events.driver", "rabbitmq")
	v.SetDefault("events.queue", "follows")
	v.SetDefault("events.kafka_brokers", []string{"localhost:9092"})
	v.SetDefault("events.kafka_topic", "follows")

	v.SetDefault("outbox.interval", "5s")
	v.SetDefault("outbox.batch_size", 100)
}

// Load reads app.yaml (when present) and the environment. Nested keys map to
// env vars with dots replaced by underscores, e.g. POSTGRES_HOST.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:         v.GetString("app.port"),
		LogPath:      v.GetString("app.log_path"),
		AccessSecret: v.GetString("auth.access_secret"),
		Storage:      v.GetString("storage"),
		Postgres: DBConfig{
			Username: v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			DBName:   v.GetString("postgres.db"),
			SSLMode:  v.GetString("postgres.sslmode"),
		},
		Redis: RedisConfig{
			Addr:    v.GetString("redis.addr"),
			DB:      v.GetInt("redis.db"),
			UserTTL: v.GetDuration("redis.user_ttl"),
		},
		Events: EventsConfig{
			Driver:       v.GetString("events.driver"),
			RabbitMQURL:  v.GetString("rabbitmq.conn_string"),
			Queue:        v.GetString("events.queue"),
			KafkaBrokers: v.GetStringSlice("events.kafka_brokers"),
			KafkaTopic:   v.GetString("events.kafka_topic"),
		},
		Outbox: OutboxConfig{
			Interval:  v.GetDuration("outbox.interval"),
			BatchSize: v.GetInt("outbox.batch_size"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.AccessSecret == "" {
		return errNoAccessSecret
	}
	switch c.Storage {
	case "postgres", "memory":
	default:
		return errUnknownStorage
	}
	switch c.Events.Driver {
	case "rabbitmq", "kafka", "log":
	default:
		return errUnknownEvents
	}
	return nil
}
