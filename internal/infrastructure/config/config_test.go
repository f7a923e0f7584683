package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"OMNICRM_APP_NAME":                 os.Getenv("OMNICRM_APP_NAME"),
		"OMNICRM_APP_ENV":                  os.Getenv("OMNICRM_APP_ENV"),
		"OMNICRM_APP_PORT":                 os.Getenv("OMNICRM_APP_PORT"),
		"OMNICRM_DATABASE_HOST":            os.Getenv("OMNICRM_DATABASE_HOST"),
		"OMNICRM_DATABASE_PORT":            os.Getenv("OMNICRM_DATABASE_PORT"),
		"OMNICRM_DATABASE_USER":            os.Getenv("OMNICRM_DATABASE_USER"),
		"OMNICRM_DATABASE_PASSWORD":        os.Getenv("OMNICRM_DATABASE_PASSWORD"),
		"OMNICRM_DATABASE_DBNAME":          os.Getenv("OMNICRM_DATABASE_DBNAME"),
		"OMNICRM_DATABASE_SSLMODE":         os.Getenv("OMNICRM_DATABASE_SSLMODE"),
		"OMNICRM_DATABASE_MAX_OPEN_CONNS":  os.Getenv("OMNICRM_DATABASE_MAX_OPEN_CONNS"),
		"OMNICRM_DATABASE_MAX_IDLE_CONNS":  os.Getenv("OMNICRM_DATABASE_MAX_IDLE_CONNS"),
		"OMNICRM_WHATSAPP_ENABLED":         os.Getenv("OMNICRM_WHATSAPP_ENABLED"),
		"OMNICRM_WHATSAPP_ACCESS_TOKEN":    os.Getenv("OMNICRM_WHATSAPP_ACCESS_TOKEN"),
		"OMNICRM_WHATSAPP_PHONE_NUMBER_ID": os.Getenv("OMNICRM_WHATSAPP_PHONE_NUMBER_ID"),
		"OMNICRM_CONVERSATION_DEFAULT_OWNER_ID": os.Getenv("OMNICRM_CONVERSATION_DEFAULT_OWNER_ID"),
		"APP_ENV":                          os.Getenv("APP_ENV"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "omnicrm-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "omnicrm", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "https://graph.facebook.com/v19.0", cfg.WhatsApp.APIBaseURL)
		assert.Equal(t, 5, cfg.Conversation.ProductListLimit)
		assert.True(t, cfg.Conversation.ApologizeOnError)
	})

	t.Run("loads values from environment variables with OMNICRM prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("OMNICRM_APP_NAME", "test-app")
		os.Setenv("OMNICRM_APP_ENV", "testing")
		os.Setenv("OMNICRM_APP_PORT", "9000")
		os.Setenv("OMNICRM_DATABASE_HOST", "testdb.local")
		os.Setenv("OMNICRM_DATABASE_PORT", "5433")
		os.Setenv("OMNICRM_DATABASE_USER", "testuser")
		os.Setenv("OMNICRM_DATABASE_PASSWORD", "testpass")
		os.Setenv("OMNICRM_DATABASE_DBNAME", "testdb")
		os.Setenv("OMNICRM_DATABASE_SSLMODE", "require")
		os.Setenv("OMNICRM_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("OMNICRM_DATABASE_MAX_IDLE_CONNS", "10")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("OMNICRM_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("OMNICRM_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("OMNICRM_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv()
		os.Setenv("OMNICRM_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("enabled whatsapp requires credentials", func(t *testing.T) {
		clearEnv()
		os.Setenv("OMNICRM_WHATSAPP_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "whatsapp.access_token is required")
	})

	t.Run("enabled whatsapp requires phone number id", func(t *testing.T) {
		clearEnv()
		os.Setenv("OMNICRM_WHATSAPP_ENABLED", "true")
		os.Setenv("OMNICRM_WHATSAPP_ACCESS_TOKEN", "EAAG-token")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "whatsapp.phone_number_id is required")
	})

	t.Run("default owner id must be a uuid when set", func(t *testing.T) {
		clearEnv()
		os.Setenv("OMNICRM_CONVERSATION_DEFAULT_OWNER_ID", "not-a-uuid")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config validation")
	})

	t.Run("default owner id accepts a uuid", func(t *testing.T) {
		clearEnv()
		os.Setenv("OMNICRM_CONVERSATION_DEFAULT_OWNER_ID", "7d444840-9dc0-11d1-b245-5ffdce74fad2")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "7d444840-9dc0-11d1-b245-5ffdce74fad2", cfg.Conversation.DefaultOwnerID)
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"OMNICRM_APP_ENV":                     os.Getenv("OMNICRM_APP_ENV"),
		"OMNICRM_DATABASE_PASSWORD":           os.Getenv("OMNICRM_DATABASE_PASSWORD"),
		"OMNICRM_DATABASE_SSLMODE":            os.Getenv("OMNICRM_DATABASE_SSLMODE"),
		"OMNICRM_WEBHOOK_VERIFY_TOKEN":        os.Getenv("OMNICRM_WEBHOOK_VERIFY_TOKEN"),
		"OMNICRM_WHATSAPP_ENABLED":            os.Getenv("OMNICRM_WHATSAPP_ENABLED"),
		"OMNICRM_WHATSAPP_ACCESS_TOKEN":       os.Getenv("OMNICRM_WHATSAPP_ACCESS_TOKEN"),
		"OMNICRM_WHATSAPP_PHONE_NUMBER_ID":    os.Getenv("OMNICRM_WHATSAPP_PHONE_NUMBER_ID"),
		"OMNICRM_MESSENGER_ENABLED":           os.Getenv("OMNICRM_MESSENGER_ENABLED"),
		"OMNICRM_MESSENGER_PAGE_ACCESS_TOKEN": os.Getenv("OMNICRM_MESSENGER_PAGE_ACCESS_TOKEN"),
		"APP_ENV":                             os.Getenv("APP_ENV"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	// Helper to set valid production base config
	setValidProductionBase := func() {
		os.Setenv("OMNICRM_APP_ENV", "production")
		os.Setenv("OMNICRM_DATABASE_PASSWORD", "secure-password")
		os.Setenv("OMNICRM_DATABASE_SSLMODE", "require")
		os.Setenv("OMNICRM_WEBHOOK_VERIFY_TOKEN", "verify-token-value")
		os.Setenv("OMNICRM_WHATSAPP_ENABLED", "true")
		os.Setenv("OMNICRM_WHATSAPP_ACCESS_TOKEN", "EAAG-token")
		os.Setenv("OMNICRM_WHATSAPP_PHONE_NUMBER_ID", "105551234567890")
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("OMNICRM_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("OMNICRM_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("requires webhook verify token in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("OMNICRM_WEBHOOK_VERIFY_TOKEN")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "webhook.verify_token is required in production")
	})

	t.Run("requires at least one enabled channel in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("OMNICRM_WHATSAPP_ENABLED", "false")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one channel must be enabled")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
		assert.True(t, cfg.WhatsApp.Enabled)
	})

	t.Run("messenger alone satisfies the channel requirement", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("OMNICRM_WHATSAPP_ENABLED", "false")
		os.Setenv("OMNICRM_MESSENGER_ENABLED", "true")
		os.Setenv("OMNICRM_MESSENGER_PAGE_ACCESS_TOKEN", "EAAG-page-token")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Messenger.Enabled)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})

	t.Run("handles empty password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.NotEmpty(t, dsn)
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "redis.local", Port: 6380}
	assert.Equal(t, "redis.local:6380", cfg.Addr())
}
