package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")
	t.Setenv("PREREQUISITE_CYCLE_POLICY", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_MAX_IDLE_CONNS", "")
	t.Setenv("DB_CONN_MAX_LIFETIME_MINUTES", "")

	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.RejectCycles())
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 5, cfg.DBMaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.DBConnMaxLifetime)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.kr, ,https://b.kr")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	t.Setenv("PREREQUISITE_CYCLE_POLICY", "reject")

	cfg := Load()

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, []string{"https://a.kr", "https://b.kr"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.True(t, cfg.RejectCycles())
}

func TestValidate(t *testing.T) {
	base := Config{DBDriver: DriverSQLite, PrerequisiteCyclePolicy: CyclePolicyAllow, Env: "dev", TokenTTL: time.Hour}
	require.NoError(t, base.Validate())

	bad := base
	bad.DBDriver = "mysql"
	assert.Error(t, bad.Validate())

	bad = base
	bad.PrerequisiteCyclePolicy = "maybe"
	assert.Error(t, bad.Validate())

	prod := base
	prod.Env = "production"
	assert.Error(t, prod.Validate(), "JWT secret required in production")
	prod.JWTSecret = "s3cret"
	assert.NoError(t, prod.Validate())
}

func TestSigningKeyFallback(t *testing.T) {
	assert.Equal(t, []byte("speclab-dev-secret"), Config{}.SigningKey())
	assert.Equal(t, []byte("k"), Config{JWTSecret: "k"}.SigningKey())
}

func TestOpenDBAppliesPoolLimits(t *testing.T) {
	cfg := Config{
		Env:               "test",
		DBDriver:          DriverSQLite,
		SQLitePath:        filepath.Join(t.TempDir(), "pool.db"),
		DBMaxOpenConns:    3,
		DBMaxIdleConns:    2,
		DBConnMaxLifetime: time.Minute,
	}
	db, err := OpenDB(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.Equal(t, 3, sqlDB.Stats().MaxOpenConnections)

	_, err = OpenDB(Config{DBDriver: "mysql"})
	assert.Error(t, err)
}
