package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Security SecurityConfig
	Report   ReportConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins []string
}

// DatabaseConfig holds the store connection parameters. Name, User, Password
// and Host identify the database; the rest tune the pool and the migrator.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	MigrationsPath  string
	SeedsPath       string
	SeedDatabase    bool
}

type SecurityConfig struct {
	RateLimitPerSecond int
	RateLimitBurst     int
}

type ReportConfig struct {
	Currency string
}

// env reads typed values from the process environment. Unset, empty and
// unparsable values yield the fallback.
type env struct{}

func (env) str(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (e env) num(key string, fallback int) int {
	if n, err := strconv.Atoi(e.str(key, "")); err == nil {
		return n
	}
	return fallback
}

func (e env) flag(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(e.str(key, "")); err == nil {
		return b
	}
	return fallback
}

func (e env) dur(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(e.str(key, "")); err == nil {
		return d
	}
	return fallback
}

func (e env) list(key string) []string {
	raw := e.str(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Load reads an optional .env file and then builds the configuration from the
// environment. It is called once at start-up and the result is passed down.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("ignoring unreadable .env file", "error", err)
	}

	var e env
	cfg := &Config{
		Server: ServerConfig{
			Port:         e.str("SERVER_PORT", "8080"),
			Host:         e.str("SERVER_HOST", "localhost"),
			Environment:  e.str("APP_ENV", "development"),
			ReadTimeout:  e.dur("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: e.dur("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Host:            e.str("DB_HOST", "localhost"),
			Port:            e.str("DB_PORT", "5432"),
			User:            e.str("DB_USER", "postgres"),
			Password:        os.Getenv("DB_PASSWORD"),
			Name:            e.str("DB_NAME", "portfolio_tracker"),
			SSLMode:         e.str("DB_SSL_MODE", "disable"),
			MaxConnections:  e.num("DB_MAX_CONNECTIONS", 10),
			MaxIdleConns:    e.num("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: e.dur("DB_CONN_MAX_LIFETIME", time.Hour),
			AutoMigrate:     e.flag("AUTO_MIGRATE", false),
			MigrationsPath:  e.str("DB_MIGRATIONS_PATH", "db/migrations"),
			SeedsPath:       e.str("DB_SEEDS_PATH", "db/seeds"),
			SeedDatabase:    e.flag("SEED_DATABASE", false),
		},
		Security: SecurityConfig{
			RateLimitPerSecond: e.num("RATE_LIMIT_PER_SECOND", 20),
			RateLimitBurst:     e.num("RATE_LIMIT_BURST", 40),
		},
		Report: ReportConfig{
			Currency: strings.ToUpper(e.str("REPORT_CURRENCY", "USD")),
		},
	}

	cfg.Server.CORSAllowOrigins = e.list("CORS_ALLOW_ORIGINS")
	if len(cfg.Server.CORSAllowOrigins) == 0 {
		if cfg.IsProduction() {
			slog.Warn("CORS_ALLOW_ORIGINS unset in production, allowing every origin")
		}
		cfg.Server.CORSAllowOrigins = []string{"*"}
	}

	return cfg
}

// DSN returns a keyword/value connection string understood by both pgx and lib/pq.
func (c *DatabaseConfig) DSN() string {
	var b strings.Builder
	fmt.Fprintf(&b, "host=%s port=%s user=%s dbname='%s' sslmode=%s",
		c.Host, c.Port, c.User, quoteDSNValue(c.Name), c.SSLMode)
	if c.Password != "" {
		fmt.Fprintf(&b, " password='%s'", quoteDSNValue(c.Password))
	}
	return b.String()
}

// URL returns the connection parameters as a postgres:// URL, the form expected
// by golang-migrate.
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.User(c.User),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u.String()
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

// quoteDSNValue escapes a value for use inside single quotes in a keyword/value DSN.
func quoteDSNValue(v string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v)
}
