package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "DOGS"

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig describes where the dogs table lives.
type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PostgresDSN builds a key/value connection string for the postgres driver.
func (c DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// KafkaConfig holds the change-event producer settings.
// Events are disabled when Brokers is empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Enabled reports whether any broker is configured.
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// ServiceConfig holds all configuration for the dog registry.
type ServiceConfig struct {
	AppEnv      string
	LogLevel    string
	DBConfig    DatabaseConfig
	KafkaConfig KafkaConfig
}

// Load reads configuration from DOGS_* environment variables and, when
// configFile is not empty, from that file. Environment values win.
func Load(configFile string) (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &ServiceConfig{
		AppEnv:   v.GetString("app_env"),
		LogLevel: v.GetString("log_level"),
		DBConfig: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("db.driver")),
			Path:     v.GetString("db.path"),
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		KafkaConfig: KafkaConfig{
			Brokers: splitList(v.GetStringSlice("kafka.brokers")),
			Topic:   v.GetString("kafka.topic"),
			GroupID: v.GetString("kafka.group_id"),
		},
	}

	switch cfg.DBConfig.Driver {
	case DriverSQLite:
		if cfg.DBConfig.Path == "" {
			return nil, fmt.Errorf("db.path is required for the %s driver", DriverSQLite)
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported db.driver %q", cfg.DBConfig.Driver)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")

	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "dogs.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "dogs")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "dog.events")
	v.SetDefault("kafka.group_id", "dog-registry-watch")
}

// splitList flattens comma separated entries, which is how a broker list
// arrives from a single environment variable.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
