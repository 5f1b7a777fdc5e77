package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"REDIS_HOST", "REDIS_PORT", "JWT_SECRET", "MEDIA_ROOT", "MIGRATIONS_PATH",
	} {
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "planetarium", cfg.Database.DBName)
	assert.Equal(t, "migrations", cfg.Database.MigrationsPath)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, "media", cfg.Media.Root)
}

func TestLoad_FromEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("DB_HOST", "db.example.com")
	os.Setenv("REDIS_DB", "2")
	os.Setenv("JWT_SECRET", "super-secret")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("DB_HOST")
		os.Unsetenv("REDIS_DB")
		os.Unsetenv("JWT_SECRET")
	}()

	cfg := Load()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "super-secret", cfg.Auth.JWTSecret)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "secret",
		DBName:   "planetarium",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=planetarium")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "localhost", Port: "6379"}

	assert.Equal(t, "localhost:6379", cfg.Addr())
}
