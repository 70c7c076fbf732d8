package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/marmos91/membuf/internal/bytesize"
	"github.com/marmos91/membuf/pkg/bufalloc"
)

// Default values for the membuf CLI configuration.
const (
	DefaultLogLevel        = "INFO"
	DefaultLogFormat       = "text"
	DefaultLogOutput       = "stderr"
	DefaultServerPort      = 9595
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultArenaCapacity bounds the arena allocator used by the demos.
	DefaultArenaCapacity = bytesize.ByteSize(64 * bytesize.KiB)
)

// GetDefaultConfig returns a fully-populated default configuration.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in any unset fields with their defaults.
// Zero values are replaced; explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyServerDefaults(&cfg.Server)
	applyAllocDefaults(&cfg.Alloc)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = DefaultLogLevel
	}
	// Normalized to uppercase for consistent internal representation.
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = DefaultLogFormat
	}
	if cfg.Output == "" {
		cfg.Output = DefaultLogOutput
	}
}

func applyServerDefaults(cfg *ServerConfig) {
	if cfg.Port == 0 {
		cfg.Port = DefaultServerPort
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
}

func applyAllocDefaults(cfg *AllocConfig) {
	if cfg.Pool.SmallSize == 0 {
		cfg.Pool.SmallSize = bytesize.ByteSize(bufalloc.DefaultSmallSize)
	}
	if cfg.Pool.MediumSize == 0 {
		cfg.Pool.MediumSize = bytesize.ByteSize(bufalloc.DefaultMediumSize)
	}
	if cfg.Pool.LargeSize == 0 {
		cfg.Pool.LargeSize = bytesize.ByteSize(bufalloc.DefaultLargeSize)
	}
	if cfg.ArenaCapacity == 0 {
		cfg.ArenaCapacity = DefaultArenaCapacity
	}
}

// PoolAllocConfig converts the configured size classes into a
// bufalloc.PoolConfig.
func (c *AllocConfig) PoolAllocConfig() *bufalloc.PoolConfig {
	return &bufalloc.PoolConfig{
		SmallSize:  int(c.Pool.SmallSize),
		MediumSize: int(c.Pool.MediumSize),
		LargeSize:  int(c.Pool.LargeSize),
	}
}

// InitConfig writes a default config file to the default location.
// Returns the path written. Fails if the file exists and force is false.
func InitConfig(force bool) (string, error) {
	return initConfigAt(GetDefaultConfigPath(), force)
}

// InitConfigToPath writes a default config file to the given path.
func InitConfigToPath(path string, force bool) error {
	_, err := initConfigAt(path, force)
	return err
}

func initConfigAt(path string, force bool) (string, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	if err := SaveConfig(GetDefaultConfig(), path); err != nil {
		return "", err
	}
	return path, nil
}
