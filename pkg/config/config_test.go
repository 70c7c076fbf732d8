package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/membuf/internal/bytesize"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// ============================================================================
// Load Tests
// ============================================================================

func TestLoad(t *testing.T) {
	t.Run("MissingFileFallsBackToDefaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)

		assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
		assert.Equal(t, DefaultServerPort, cfg.Server.Port)
		assert.Equal(t, DefaultArenaCapacity, cfg.Alloc.ArenaCapacity)
	})

	t.Run("FileValuesOverrideDefaults", func(t *testing.T) {
		path := writeConfigFile(t, `
logging:
  level: debug
  format: json
server:
  port: 8080
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "DEBUG", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, 8080, cfg.Server.Port)

		// Untouched sections still get defaults.
		assert.Equal(t, DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
		assert.Equal(t, DefaultArenaCapacity, cfg.Alloc.ArenaCapacity)
	})

	t.Run("HumanReadableSizes", func(t *testing.T) {
		path := writeConfigFile(t, `
alloc:
  arena_capacity: 1Mi
  pool:
    small_size: 8Ki
    medium_size: 128Ki
    large_size: 2Mi
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, bytesize.MiB, cfg.Alloc.ArenaCapacity)
		assert.Equal(t, 8*bytesize.KiB, cfg.Alloc.Pool.SmallSize)
		assert.Equal(t, 128*bytesize.KiB, cfg.Alloc.Pool.MediumSize)
		assert.Equal(t, 2*bytesize.MiB, cfg.Alloc.Pool.LargeSize)
	})

	t.Run("NumericSizes", func(t *testing.T) {
		path := writeConfigFile(t, `
alloc:
  arena_capacity: 4096
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, bytesize.ByteSize(4096), cfg.Alloc.ArenaCapacity)
	})

	t.Run("DurationStrings", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  shutdown_timeout: 30s
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	})

	t.Run("InvalidLogLevelFailsValidation", func(t *testing.T) {
		path := writeConfigFile(t, `
logging:
  level: verbose
`)

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("InvalidPortFailsValidation", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  port: 70000
`)

		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("MalformedYAMLFails", func(t *testing.T) {
		path := writeConfigFile(t, "logging: [not: valid")

		_, err := Load(path)
		require.Error(t, err)
	})
}

// ============================================================================
// Validate Tests
// ============================================================================

func TestValidate(t *testing.T) {
	t.Run("DefaultConfigIsValid", func(t *testing.T) {
		assert.NoError(t, Validate(GetDefaultConfig()))
	})

	t.Run("BadFormatIsRejected", func(t *testing.T) {
		cfg := GetDefaultConfig()
		cfg.Logging.Format = "xml"

		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "format")
	})

	t.Run("ZeroShutdownTimeoutIsRejected", func(t *testing.T) {
		cfg := GetDefaultConfig()
		cfg.Server.ShutdownTimeout = 0

		assert.Error(t, Validate(cfg))
	})
}

// ============================================================================
// Save Tests
// ============================================================================

func TestSaveConfig(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.yaml")

		cfg := GetDefaultConfig()
		cfg.Server.Port = 7070
		cfg.Alloc.ArenaCapacity = 2 * bytesize.MiB
		require.NoError(t, SaveConfig(cfg, path))

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 7070, loaded.Server.Port)
		assert.Equal(t, 2*bytesize.MiB, loaded.Alloc.ArenaCapacity)
	})
}
