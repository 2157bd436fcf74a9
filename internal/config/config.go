package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:staffstore?mode=memory&cache=shared"
	defaultPort      = 8080
)

type Config struct {
	Env      string         `yaml:"env"`      // Env is the current environment: local, development, production.
	Storage  StorageConfig  `yaml:"storage"`  // Storage selects the backend used by the repositories.
	Postgres PostgresConfig `yaml:"postgres"` // Postgres holds the database configuration
	SQLite   SQLiteConfig   `yaml:"sqlite"`   // SQLite holds the embedded database configuration
	Server   ServerConfig   `yaml:"server"`   // Server holds the monitoring server configuration
}

// StorageConfig selects the database driver.
type StorageConfig struct {
	Driver string `yaml:"driver"` // Driver is either "postgres" or "sqlite".
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Dbname   string `yaml:"db_name"`  // Dbname is the name of the database.
}

type SQLiteConfig struct {
	DSN string `yaml:"dsn"` // DSN is a modernc.org/sqlite data source, in-memory by default.
}

type ServerConfig struct {
	Port int `yaml:"port"` // Port is where /healthz and /metrics are served.
}

// MustLoad loads the configuration from the YAML file named by CONFIG_PATH and panics on failure.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		panic("config path is empty")
	}

	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		panic("config error: " + err.Error())
	}

	return cfg
}

// Load reads a YAML configuration file. Every key can be overridden by an
// environment variable such as STAFFSTORE_POSTGRES_HOST.
func Load(configPath string) (*Config, error) {
	vpr := viper.New()
	vpr.SetConfigFile(configPath)
	vpr.SetConfigType("yaml")
	vpr.SetEnvPrefix("STAFFSTORE")
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	vpr.SetDefault("env", "local")
	vpr.SetDefault("storage.driver", DriverPostgres)
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("sqlite.dsn", defaultSQLiteDSN)
	vpr.SetDefault("server.port", defaultPort)

	if err := vpr.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Env: vpr.GetString("env"),
		Storage: StorageConfig{
			Driver: strings.ToLower(vpr.GetString("storage.driver")),
		},
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
		},
		SQLite: SQLiteConfig{
			DSN: vpr.GetString("sqlite.dsn"),
		},
		Server: ServerConfig{
			Port: vpr.GetInt("server.port"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Postgres.Host == "" || c.Postgres.Dbname == "" {
			return errors.New("postgres.host and postgres.db_name are required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLite.DSN == "" {
			return errors.New("sqlite.dsn is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}

	return nil
}
