// Package config resolves runtime settings from defaults, an optional TOML
// file and GUIA_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sandeepkv93/guia/internal/storage"
)

type Config struct {
	DataPath       string `toml:"data_path"`
	Backend        string `toml:"backend"`
	CorruptPolicy  string `toml:"corrupt_policy"`
	LogLevel       string `toml:"log_level"`
	LogPath        string `toml:"log_path"`
	ConfirmDeletes bool   `toml:"confirm_deletes"`
	OpenCommand    string `toml:"open_command"`
}

func Default() Config {
	return Config{
		DataPath:       filepath.Join(dataDir(), "guia.db"),
		Backend:        storage.BackendSQLite,
		CorruptPolicy:  string(storage.CorruptDiscard),
		LogLevel:       "warn",
		ConfirmDeletes: true,
	}
}

// DefaultPath is where Load looks for the config file when none is given.
func DefaultPath() string {
	if v := strings.TrimSpace(os.Getenv("GUIA_CONFIG")); v != "" {
		return v
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "guia.toml"
	}
	return filepath.Join(dir, "guia", "config.toml")
}

func dataDir() string {
	if v := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); v != "" {
		return filepath.Join(v, "guia")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "guia")
}

// LoadFile decodes path over base. A missing file leaves base unchanged.
func LoadFile(path string, base Config) (Config, error) {
	cfg := base
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return cfg, nil
	}
	if _, err := os.Stat(trimmed); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("stat config: %w", err)
	}
	if _, err := toml.DecodeFile(trimmed, &cfg); err != nil {
		return base, fmt.Errorf("decode config %s: %w", trimmed, err)
	}
	return cfg, nil
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("GUIA_DATA_PATH"); ok {
		cfg.DataPath = v
	}
	if v, ok := getEnvString("GUIA_BACKEND"); ok {
		cfg.Backend = v
	}
	if v, ok := getEnvString("GUIA_CORRUPT_POLICY"); ok {
		cfg.CorruptPolicy = v
	}
	if v, ok := getEnvString("GUIA_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("GUIA_LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvBool("GUIA_CONFIRM_DELETES"); ok {
		cfg.ConfirmDeletes = v
	}
	if v, ok := getEnvString("GUIA_OPEN_COMMAND"); ok {
		cfg.OpenCommand = v
	}
	return cfg
}

// Overrides holds command line values. Empty fields keep what the file and
// environment set.
type Overrides struct {
	DataPath string
	Backend  string
	LogLevel string
}

// Load layers defaults, the file at path, GUIA_* variables and o, in that
// order, and validates the result.
func Load(path string, o Overrides) (Config, error) {
	cfg, err := LoadFile(path, Default())
	if err != nil {
		return Config{}, err
	}
	cfg = FromEnv(cfg)
	if o.DataPath != "" {
		cfg.DataPath = o.DataPath
	}
	if o.Backend != "" {
		cfg.Backend = o.Backend
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Backend)) {
	case storage.BackendSQLite, storage.BackendFile:
		if strings.TrimSpace(c.DataPath) == "" {
			return errors.New("config: data_path is required")
		}
	case storage.BackendMemory:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if _, err := storage.ParseCorruptPolicy(c.CorruptPolicy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		if v, err := strconv.ParseBool(raw); err == nil {
			return v, true
		}
		return false, false
	}
}
