package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	CyclePolicyAllow  = "allow"
	CyclePolicyReject = "reject"
)

// Config is built once at startup and passed by value to whatever needs it.
type Config struct {
	Port      string
	Env       string
	APIPrefix string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	JWTSecret      string
	TokenTTL       time.Duration
	SessionSecret  string
	SessionName    string
	AllowedOrigins []string

	PrerequisiteCyclePolicy string

	FirstSuperuserEmail    string
	FirstSuperuserPassword string
}

func Load() Config {
	return Config{
		Port:      str("PORT", "8080"),
		Env:       str("APP_ENV", "dev"),
		APIPrefix: str("API_PREFIX", "/api/v1"),

		DBDriver:   strings.ToLower(str("DB_DRIVER", DriverPostgres)),
		DBHost:     str("DB_HOST", "localhost"),
		DBPort:     str("DB_PORT", "5432"),
		DBUser:     str("DB_USER", "postgres"),
		DBPassword: str("DB_PASSWORD", "password"),
		DBName:     str("DB_NAME", "app"),
		DBSSLMode:  str("DB_SSLMODE", "disable"),
		SQLitePath: str("SQLITE_PATH", "speclab.db"),

		DBMaxOpenConns:    integer("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    integer("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: time.Duration(integer("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,

		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       time.Duration(integer("ACCESS_TOKEN_EXPIRE_MINUTES", 60*24)) * time.Minute,
		SessionSecret:  str("SESSION_SECRET", "something-very-secret"),
		SessionName:    str("SESSION_NAME", "speclab-session"),
		AllowedOrigins: list("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		PrerequisiteCyclePolicy: strings.ToLower(str("PREREQUISITE_CYCLE_POLICY", CyclePolicyAllow)),

		FirstSuperuserEmail:    str("FIRST_SUPERUSER_EMAIL", "admin@speclab.kr"),
		FirstSuperuserPassword: str("FIRST_SUPERUSER_PASSWORD", "changeme"),
	}
}

func (c Config) IsDev() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development", "local", "test":
		return true
	}
	return false
}

func (c Config) RejectCycles() bool {
	return c.PrerequisiteCyclePolicy == CyclePolicyReject
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.PrerequisiteCyclePolicy {
	case CyclePolicyAllow, CyclePolicyReject:
	default:
		return fmt.Errorf("unsupported PREREQUISITE_CYCLE_POLICY %q", c.PrerequisiteCyclePolicy)
	}
	if c.JWTSecret == "" && !c.IsDev() {
		return fmt.Errorf("JWT_SECRET is required outside development")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	return nil
}

// SigningKey falls back to a fixed development key when JWT_SECRET is unset.
func (c Config) SigningKey() []byte {
	if c.JWTSecret == "" {
		return []byte("speclab-dev-secret")
	}
	return []byte(c.JWTSecret)
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func str(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func integer(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func list(name string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
