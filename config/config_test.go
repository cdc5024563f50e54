package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfigDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "HTTP_ADDR", "STORE_DRIVER", "HISTORY_LIMIT", "WRITER_RETRY_DELAY"} {
		t.Setenv(key, "")
	}

	conf := NewAppConfig()

	assert.Equal(t, EnvDev, conf.Env)
	assert.Equal(t, ":8080", conf.HTTPAddr)
	assert.Equal(t, StoreMemory, conf.StoreDriver)
	assert.Equal(t, 60, conf.HistoryLimit)
	assert.Equal(t, 200*time.Millisecond, conf.Writer.RetryDelay)
}

func TestNewAppConfigFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", EnvTest)
	t.Setenv("STORE_DRIVER", StoreRedis)
	t.Setenv("HISTORY_LIMIT", "5")
	t.Setenv("WRITER_MAX_ATTEMPTS", "not-a-number")
	t.Setenv("WRITER_RETRY_DELAY", "1s")

	conf := NewAppConfig()

	assert.Equal(t, EnvTest, conf.Env)
	assert.Equal(t, StoreRedis, conf.StoreDriver)
	assert.Equal(t, 5, conf.HistoryLimit)
	assert.Equal(t, 3, conf.Writer.MaxAttempts)
	assert.Equal(t, time.Second, conf.Writer.RetryDelay)
}

func TestLoadDotEnvFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DISPATCH_DOTENV_PROBE=loaded\n"), 0o600))

	t.Setenv("ENV_FILE", path)
	t.Setenv("DISPATCH_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("DISPATCH_DOTENV_PROBE"))

	LoadDotEnv()

	assert.Equal(t, "loaded", os.Getenv("DISPATCH_DOTENV_PROBE"))
	require.NoError(t, os.Unsetenv("DISPATCH_DOTENV_PROBE"))
}

func TestDatabaseConf(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "pg.internal")
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("REDIS_PREFIX", "board")

	conf := DatabaseConf()

	assert.Equal(t, "pg.internal", conf.Pgsql.Host)
	assert.Equal(t, 6543, conf.Pgsql.Port)
	assert.Equal(t, "board", conf.Redis.Prefix)
}
