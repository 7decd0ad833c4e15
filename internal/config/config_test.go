package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != defaultAPIKey {
		t.Fatalf("APIKey = %q, want %q", cfg.APIKey, defaultAPIKey)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}

	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
	if cfg.Storage.Driver != DriverFile || cfg.Storage.Key != "watched" {
		t.Fatalf("Storage = %#v, want file driver with key watched", cfg.Storage)
	}
	if !strings.HasPrefix(cfg.Storage.DataDir, home) {
		t.Fatalf("DataDir = %q, want it under HOME %q", cfg.Storage.DataDir, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_key = "  abc123  "
api_base_url = " http://127.0.0.1:9999/ "
log_level = "DEBUG"
log_format = "json"
log_dir = "  ~/.popcorn/logs  "

[storage]
driver = " SQLite "
data_dir = "~/movies"
key = "seen"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "abc123" {
		t.Fatalf("APIKey = %q, want %q", cfg.APIKey, "abc123")
	}
	if cfg.APIBaseURL != "http://127.0.0.1:9999/" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("log settings = %q/%q, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
	if !strings.HasPrefix(cfg.LogDir, home) {
		t.Fatalf("LogDir = %q, want it under HOME %q", cfg.LogDir, home)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Fatalf("Driver = %q, want sqlite", cfg.Storage.Driver)
	}
	if cfg.Storage.DataDir != filepath.Join(home, "movies") {
		t.Fatalf("DataDir = %q, want %q", cfg.Storage.DataDir, filepath.Join(home, "movies"))
	}
	if cfg.Storage.Key != "seen" {
		t.Fatalf("Key = %q, want seen", cfg.Storage.Key)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_key = "   "
log_dir = ""
[storage]
driver = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != defaultAPIKey {
		t.Fatalf("APIKey = %q, want %q", cfg.APIKey, defaultAPIKey)
	}
	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
	if cfg.Storage.Driver != DriverFile {
		t.Fatalf("Driver = %q, want file", cfg.Storage.Driver)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_key = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_UnknownDriverFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[storage]\ndriver = \"floppy\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("Load error = %v, want ErrUnknownDriver", err)
	}
}

func TestValidate_NetworkDriversRequireDSN(t *testing.T) {
	for _, driver := range []string{DriverPostgres, DriverRedis} {
		cfg := Default()
		cfg.Storage.Driver = driver
		if err := cfg.Validate(); err == nil {
			t.Fatalf("Validate(%s without dsn) returned nil, want error", driver)
		}
		cfg.Storage.DSN = "redis://localhost:6379/0"
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate(%s with dsn) returned %v", driver, err)
		}
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestLogPath_DefaultsWhenLogDirEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.LogPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/popcorn.log")) {
		t.Fatalf("LogPath = %q, want it to end with /popcorn.log", got)
	}
}
