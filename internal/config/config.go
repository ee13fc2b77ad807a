package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	ferrors "github.com/garymjr/forest/internal/errors"
	"github.com/garymjr/forest/internal/logger"
	"github.com/garymjr/forest/internal/validate"
)

// KeyDirectory is the only recognized configuration key.
const KeyDirectory = "directory"

// DefaultDirectory is where auto-generated worktree paths are rooted unless
// configured otherwise.
const DefaultDirectory = "~/.forest/worktrees"

// Config holds the persisted forest configuration.
type Config struct {
	Directory string `json:"directory"`

	// GitTimeout bounds every git subprocess call. Read from
	// FOREST_GIT_TIMEOUT, never persisted.
	GitTimeout time.Duration `json:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Directory:  validate.ExpandHome(DefaultDirectory),
		GitTimeout: gitTimeoutFromEnv(),
	}
}

// FilePath returns the location of the config file.
func FilePath() (string, error) {
	if p := os.Getenv("FOREST_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "forest", "config.json"), nil
}

// Load reads the config file. A missing, unreadable, malformed or invalid
// file yields the default configuration; Load never fails.
func Load() Config {
	path, err := FilePath()
	if err != nil {
		logger.Warn("config: cannot locate config file: %v", err)
		return Default()
	}
	return LoadFrom(path)
}

// LoadFrom is Load for an explicit file path.
func LoadFrom(path string) Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg
	}
	if err != nil {
		logger.Warn("config: reading %s: %v", path, err)
		return cfg
	}

	var onDisk Config
	if err := json.Unmarshal(data, &onDisk); err != nil {
		logger.Warn("config: %s is not valid JSON, using defaults: %v", path, err)
		return cfg
	}
	if res := validate.ConfigPath(onDisk.Directory); !res.Valid {
		logger.Warn("config: discarding directory %q from %s: %s", onDisk.Directory, path, res.Error)
		return cfg
	}

	cfg.Directory = validate.ExpandHome(onDisk.Directory)
	return cfg
}

// Get returns the value stored under key.
func (c Config) Get(key string) (string, error) {
	switch key {
	case KeyDirectory:
		return c.Directory, nil
	default:
		return "", unknownKey(key)
	}
}

// Set validates value, stores it under key and writes the file. The
// directory is saved home-expanded and absolute.
func Set(key, value string) (Config, error) {
	if key != KeyDirectory {
		return Config{}, unknownKey(key)
	}
	if res := validate.ConfigPath(value); !res.Valid {
		return Config{}, ferrors.ConfigInvalid(res.Error)
	}

	dir := validate.ExpandHome(value)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	// A relative value is only judged once it is anchored to the cwd.
	if res := validate.ConfigPath(dir); !res.Valid {
		return Config{}, ferrors.ConfigInvalid(res.Error)
	}

	cfg := Load()
	cfg.Directory = dir
	if err := Save(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to the config file, replacing it atomically.
func Save(cfg Config) error {
	path, err := FilePath()
	if err != nil {
		return ferrors.ConfigSaveFailed("config file", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return ferrors.ConfigSaveFailed(path, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return ferrors.ConfigSaveFailed(path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.json")
	if err != nil {
		return ferrors.ConfigSaveFailed(path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return ferrors.ConfigSaveFailed(path, err)
	}
	if err := tmp.Close(); err != nil {
		return ferrors.ConfigSaveFailed(path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return ferrors.ConfigSaveFailed(path, err)
	}
	return nil
}

// Reset removes the config file so the defaults apply again.
func Reset() (Config, error) {
	path, err := FilePath()
	if err != nil {
		return Config{}, ferrors.ConfigSaveFailed("config file", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return Config{}, ferrors.ConfigSaveFailed(path, err)
	}
	return Default(), nil
}

func gitTimeoutFromEnv() time.Duration {
	v := os.Getenv("FOREST_GIT_TIMEOUT")
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		logger.Warn("config: ignoring FOREST_GIT_TIMEOUT=%q", v)
		return 0
	}
	return d
}

func unknownKey(key string) error {
	return ferrors.E(ferrors.Op("config.Get"), ferrors.KindInvalid, ferrors.CodeUnknownKey,
		fmt.Sprintf("Unknown config key: %s", key),
		ferrors.Suggestion("Valid keys: "+KeyDirectory))
}
