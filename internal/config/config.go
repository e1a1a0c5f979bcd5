package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Store       StoreConfig       `mapstructure:"store"`
	Redis       RedisConfig       `mapstructure:"redis"`
	MySQL       MySQLConfig       `mapstructure:"mysql"`
	Fanout      FanoutConfig      `mapstructure:"fanout"`
	Coordinator CoordinatorConfig `mapstructure:"coordinator"`
	Subscriber  SubscriberConfig  `mapstructure:"subscriber"`
	Reporter    ReporterConfig    `mapstructure:"reporter"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// StoreConfig selects the key-value backend: "redis", "mysql" or "memory".
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MySQLConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type FanoutConfig struct {
	Concurrency int           `mapstructure:"concurrency"`
	CallTimeout time.Duration `mapstructure:"call_timeout"`
}

type CoordinatorConfig struct {
	ID string `mapstructure:"id"`
}

type SubscriberConfig struct {
	Port           int    `mapstructure:"port"`
	CoordinatorURL string `mapstructure:"coordinator_url"`
	AdvertiseURL   string `mapstructure:"advertise_url"`
}

type ReporterConfig struct {
	Schedule string `mapstructure:"schedule"`
}

func Load() (*Config, error) {
	// Set default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("store.backend", "redis")
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("mysql.dsn", "auction_user:auction_pass@tcp(localhost:3306)/auction_db?parseTime=true")
	viper.SetDefault("mysql.max_open_conns", 25)
	viper.SetDefault("mysql.max_idle_conns", 10)
	viper.SetDefault("mysql.conn_max_lifetime", 5*time.Minute)
	viper.SetDefault("fanout.concurrency", 8)
	viper.SetDefault("fanout.call_timeout", 5*time.Second)
	viper.SetDefault("coordinator.id", "auction-coordinator-1")
	viper.SetDefault("subscriber.port", 8090)
	viper.SetDefault("subscriber.coordinator_url", "http://localhost:8080")
	viper.SetDefault("subscriber.advertise_url", "http://localhost:8090")
	viper.SetDefault("reporter.schedule", "@every 1m")

	// Configuration file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/auction-coordinator/")

	// Environment variable support
	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("store.backend", "STORE_BACKEND")
	viper.BindEnv("redis.address", "REDIS_ADDRESS")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")
	viper.BindEnv("mysql.dsn", "MYSQL_DSN")
	viper.BindEnv("mysql.max_open_conns", "MYSQL_MAX_OPEN_CONNS")
	viper.BindEnv("mysql.max_idle_conns", "MYSQL_MAX_IDLE_CONNS")
	viper.BindEnv("mysql.conn_max_lifetime", "MYSQL_CONN_MAX_LIFETIME")
	viper.BindEnv("fanout.concurrency", "FANOUT_CONCURRENCY")
	viper.BindEnv("fanout.call_timeout", "FANOUT_CALL_TIMEOUT")
	viper.BindEnv("coordinator.id", "COORDINATOR_ID")
	viper.BindEnv("subscriber.port", "SUBSCRIBER_PORT")
	viper.BindEnv("subscriber.coordinator_url", "COORDINATOR_URL")
	viper.BindEnv("subscriber.advertise_url", "ADVERTISE_URL")
	viper.BindEnv("reporter.schedule", "REPORTER_SCHEDULE")

	// Read configuration file (optional - will use defaults/env vars if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found, continue with defaults and environment variables
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// GetConfigString returns a formatted string representation of the config
func (c *Config) GetConfigString() string {
	return fmt.Sprintf(
		"Server: %s:%d, Store: %s, Coordinator: %s",
		c.Server.Host,
		c.Server.Port,
		c.Store.Backend,
		c.Coordinator.ID,
	)
}
