package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"dbname"`
	SSLMode         string        `yaml:"sslmode"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
}

// URL renders the config as a connection URL with the given scheme
// ("postgres" for database/sql drivers, "pgx5" for golang-migrate).
func (p PostgresConfig) URL(scheme string) string {
	return fmt.Sprintf("%s://%s:%s@%s:%s/%s?sslmode=%s",
		scheme, p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode)
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type Config struct {
	App struct {
		Port string `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"app"`
	Postgres PostgresConfig `yaml:"postgres"`
	Admin    AdminConfig    `yaml:"admin"`
}

// Load reads the YAML config at path, then applies environment overrides.
// A .env file next to the binary is loaded first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.App.Port = "8080"
	cfg.App.Env = "development"
	cfg.Postgres.SSLMode = "disable"
	cfg.Postgres.MaxConns = 10
	cfg.Postgres.MinConns = 2
	cfg.Postgres.MaxConnLifetime = 30 * time.Minute

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("invalid config file: %w", err)
		}
	}

	applyEnv(&cfg.App.Port, "APP_PORT")
	applyEnv(&cfg.App.Env, "APP_ENV")
	applyEnv(&cfg.Postgres.Host, "DB_HOST")
	applyEnv(&cfg.Postgres.Port, "DB_PORT")
	applyEnv(&cfg.Postgres.User, "DB_USER")
	applyEnv(&cfg.Postgres.Password, "DB_PASSWORD")
	applyEnv(&cfg.Postgres.DBName, "DB_NAME")
	applyEnv(&cfg.Postgres.SSLMode, "DB_SSLMODE")
	applyEnv(&cfg.Admin.Username, "ADMIN_USERNAME")
	applyEnv(&cfg.Admin.Password, "ADMIN_PASSWORD")
	applyEnv(&cfg.Admin.Name, "ADMIN_NAME")

	if cfg.Postgres.Host == "" {
		return nil, fmt.Errorf("postgres host is required (config file or DB_HOST)")
	}
	if cfg.Postgres.User == "" {
		return nil, fmt.Errorf("postgres user is required (config file or DB_USER)")
	}
	if cfg.Postgres.DBName == "" {
		return nil, fmt.Errorf("postgres dbname is required (config file or DB_NAME)")
	}
	if cfg.Postgres.Port == "" {
		cfg.Postgres.Port = "5432"
	}

	return cfg, nil
}

func applyEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
