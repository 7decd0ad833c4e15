package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Storage drivers understood by the storage package.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config captures everything popcorn needs at startup.
type Config struct {
	APIKey     string
	APIBaseURL string
	LogLevel   string
	LogFormat  string
	LogDir     string
	Storage    Storage
}

// Storage selects and configures the durable key-value slot for the watched list.
type Storage struct {
	Driver  string
	DataDir string
	DSN     string
	Key     string
}

const (
	defaultConfigPath = "~/.config/popcorn/config.toml"
	defaultLogDir     = "~/.local/share/popcorn/logs"
	defaultDataDir    = "~/.local/share/popcorn"
	defaultAPIKey     = "32d86893"
	defaultAPIBaseURL = "https://www.omdbapi.com/"
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
	defaultDriver     = DriverFile
	defaultStorageKey = "watched"
)

// ErrUnknownDriver reports a storage driver that popcorn cannot open.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIKey:     defaultAPIKey,
		APIBaseURL: defaultAPIBaseURL,
		LogLevel:   defaultLogLevel,
		LogFormat:  defaultLogFormat,
		LogDir:     mustExpand(defaultLogDir),
		Storage: Storage{
			Driver:  defaultDriver,
			DataDir: mustExpand(defaultDataDir),
			Key:     defaultStorageKey,
		},
	}
}

type rawConfig struct {
	APIKey     string     `toml:"api_key"`
	APIBaseURL string     `toml:"api_base_url"`
	LogLevel   string     `toml:"log_level"`
	LogFormat  string     `toml:"log_format"`
	LogDir     string     `toml:"log_dir"`
	Storage    rawStorage `toml:"storage"`
}

type rawStorage struct {
	Driver  string `toml:"driver"`
	DataDir string `toml:"data_dir"`
	DSN     string `toml:"dsn"`
	Key     string `toml:"key"`
}

// Load locates and parses the popcorn config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Config{
		APIKey:     orDefault(raw.APIKey, defaultAPIKey),
		APIBaseURL: orDefault(raw.APIBaseURL, defaultAPIBaseURL),
		LogLevel:   strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel)),
		LogFormat:  strings.ToLower(orDefault(raw.LogFormat, defaultLogFormat)),
		LogDir:     mustExpand(orDefault(raw.LogDir, defaultLogDir)),
		Storage: Storage{
			Driver:  strings.ToLower(orDefault(raw.Storage.Driver, defaultDriver)),
			DataDir: mustExpand(orDefault(raw.Storage.DataDir, defaultDataDir)),
			DSN:     strings.TrimSpace(raw.Storage.DSN),
			Key:     orDefault(raw.Storage.Key, defaultStorageKey),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks fields that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverSQLite, DriverMemory:
	case DriverPostgres, DriverRedis:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage driver %q requires storage.dsn", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.Driver)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format: unsupported value %q", c.LogFormat)
	}
	return nil
}

// LogPath returns the path to the popcorn log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/popcorn.log")
	}
	return filepath.Join(c.LogDir, "popcorn.log")
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
