package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"

	defaultRunAddress      = ":8080"
	defaultDatabaseURI     = "sqlite3://iotracker.db"
	defaultIngestOwner     = "alexis"
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Env    string
	DB     db
	Server server
	Logger logger
	Auth   auth
	Ingest ingest
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
}

type server struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type auth struct {
	StrongPasswords bool `env:"STRONG_PASSWORDS"`
}

type ingest struct {
	// все uplink записываются на этот логин
	Owner    string         `env:"INGEST_OWNER"`
	TZName   string         `env:"TZ_NAME"`
	Location *time.Location `env:"-"`
}

// Dialect определяет драйвер БД по схеме DATABASE_URI.
func (d db) Dialect() (string, error) {
	switch {
	case strings.HasPrefix(d.DatabaseURI, "postgres://"), strings.HasPrefix(d.DatabaseURI, "postgresql://"):
		return DialectPostgres, nil
	case strings.HasPrefix(d.DatabaseURI, "sqlite3://"):
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database uri scheme: %q", d.DatabaseURI)
	}
}

// SQLitePath путь к файлу БД без схемы.
func (d db) SQLitePath() string {
	return strings.TrimPrefix(d.DatabaseURI, "sqlite3://")
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Println("Не удалось прочитать .env:", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", defaultRunAddress)
	v.SetDefault("database_uri", defaultDatabaseURI)
	v.SetDefault("log_level", "info")
	v.SetDefault("ingest_owner", defaultIngestOwner)
	v.SetDefault("shutdown_timeout", defaultShutdownTimeout)

	cfg := &Config{
		Env:    v.GetString("app_env"),
		DB:     db{DatabaseURI: v.GetString("database_uri")},
		Logger: logger{LogLevel: v.GetString("log_level")},
		Server: server{
			RunAddress:      v.GetString("run_address"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Auth: auth{StrongPasswords: v.GetBool("strong_passwords")},
		Ingest: ingest{
			Owner:  v.GetString("ingest_owner"),
			TZName: v.GetString("tz_name"),
		},
	}

	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolve() error {
	if _, err := c.DB.Dialect(); err != nil {
		return err
	}

	if c.Ingest.Owner == "" {
		return fmt.Errorf("ingest_owner не может быть пустым")
	}

	c.Ingest.Location = time.Local
	if c.Ingest.TZName != "" {
		loc, err := time.LoadLocation(c.Ingest.TZName)
		if err != nil {
			return fmt.Errorf("tz_name: %w", err)
		}
		c.Ingest.Location = loc
	}

	return nil
}
