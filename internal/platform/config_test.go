package platform_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/internal/platform"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults Without File", func(t *testing.T) {
		cfg, err := platform.LoadConfig("", t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "fs", cfg.Adapter)
		assert.Equal(t, "notes", cfg.Key)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
		assert.False(t, cfg.ReadOnly)
	})

	t.Run("Discovered File", func(t *testing.T) {
		dir := t.TempDir()
		content := "adapter: sqlite\nkey: inbox\nsqlite:\n  dsn: /tmp/jot.db\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "jot.yaml"), []byte(content), 0644))

		cfg, err := platform.LoadConfig("", dir)
		require.NoError(t, err)

		assert.Equal(t, "sqlite", cfg.Adapter)
		assert.Equal(t, "inbox", cfg.Key)
		assert.Equal(t, "/tmp/jot.db", cfg.URI())
	})

	t.Run("Explicit File Must Exist", func(t *testing.T) {
		_, err := platform.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("Environment Overrides File", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(file, []byte("adapter: fs\nredis:\n  addr: file:6379\n"), 0644))

		t.Setenv("JOT_ADAPTER", "redis")
		t.Setenv("JOT_REDIS_ADDR", "env:6380")

		cfg, err := platform.LoadConfig(file)
		require.NoError(t, err)

		assert.Equal(t, "redis", cfg.Adapter)
		assert.Equal(t, "env:6380", cfg.URI())
		assert.Len(t, cfg.Options(), 4)
	})
}

func TestConfig_URI(t *testing.T) {
	cfg := platform.Config{Adapter: "fs", Path: "/data"}
	assert.Equal(t, "/data", cfg.URI())

	cfg.Adapter = "memory"
	assert.Equal(t, "/data", cfg.URI())
}
