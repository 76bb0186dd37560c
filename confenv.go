package confenv

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	mu      sync.RWMutex
	current *Snapshot
)

// LoadOption configures the behaviour of Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	configFile string
	envFile    string
	logger     *zap.Logger
}

// WithConfigFile points Load at a YAML option file, the middle precedence
// tier. The file must exist and parse; any failure aborts Load.
func WithConfigFile(path string) LoadOption {
	return func(cfg *loadConfig) {
		cfg.configFile = path
	}
}

// WithEnvFile seeds the process environment from a dotenv file before
// resolution runs. Seeded variables belong to the environment tier and lose
// to both the file and CLI tiers.
func WithEnvFile(path string) LoadOption {
	return func(cfg *loadConfig) {
		cfg.envFile = path
	}
}

// WithLogger enables resolution logging. Load is silent by default.
func WithLogger(logger *zap.Logger) LoadOption {
	return func(cfg *loadConfig) {
		cfg.logger = logger
	}
}

// Load resolves configuration with precedence CLI > file > environment,
// publishes every winning value into the process environment under
// PREFIX_OPTION keys (overwriting existing values), and captures an immutable
// Snapshot of all variables under the prefix. The snapshot is returned and
// also installed as the process-wide state read by Get and All; a later Load
// replaces that state entirely, it never merges with a prior snapshot.
//
// Load mutates the process environment and is expected to run once during
// start-up, before any concurrent readers exist.
func Load(cliOpts map[string]any, prefix string, opts ...LoadOption) (*Snapshot, error) {
	cfg := loadConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.envFile != "" {
		if err := loadEnvFile(cfg.envFile); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	var fileOpts map[string]any
	if cfg.configFile != "" {
		loaded, err := loadOptionFile(cfg.configFile)
		if err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
		fileOpts = loaded
	}

	resolved, err := Resolve(cliOpts, fileOpts, prefix)
	if err != nil {
		return nil, err
	}

	for key, value := range resolved {
		if err := os.Setenv(key, value); err != nil {
			return nil, fmt.Errorf("publish %s: %w", key, err)
		}
		cfg.logger.Debug("published option", zap.String("key", key))
	}

	snapshot := captureSnapshot(prefix)
	cfg.logger.Info("configuration loaded",
		zap.String("prefix", snapshot.Prefix()),
		zap.Int("options", snapshot.Len()),
	)

	mu.Lock()
	current = snapshot
	mu.Unlock()

	return snapshot, nil
}

// Get returns one resolved option from the snapshot captured by the most
// recent Load. Environment changes made after Load are never reflected.
func Get(name string) (any, error) {
	snapshot, err := loaded()
	if err != nil {
		return nil, err
	}
	return snapshot.Get(name)
}

// All returns the full resolved mapping from the most recent Load, keyed by
// lowercase option name.
func All() (map[string]any, error) {
	snapshot, err := loaded()
	if err != nil {
		return nil, err
	}
	return snapshot.All(), nil
}

// Current returns the process-wide snapshot installed by the most recent
// Load, or ErrNotLoaded before the first one.
func Current() (*Snapshot, error) {
	return loaded()
}

func loaded() (*Snapshot, error) {
	mu.RLock()
	snapshot := current
	mu.RUnlock()

	if snapshot == nil {
		return nil, ErrNotLoaded
	}
	return snapshot, nil
}
