package logging_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/popcorn/internal/config"
	"github.com/five82/popcorn/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.LogDir = filepath.Join(t.TempDir(), "logs")

	logger, closer, err := logging.NewFromConfig(&cfg, logging.TargetFile)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	defer closer.Close()
	logger.Info("hello", slog.String("query", "bat"))

	content := readLog(t, cfg.LogPath())
	if !strings.Contains(content, "INFO hello query=bat") {
		t.Fatalf("log = %q, want INFO hello query=bat", content)
	}
}

func TestNewFromConfigCloserReleasesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.LogDir = filepath.Join(t.TempDir(), "logs")

	logger, closer, err := logging.NewFromConfig(&cfg, logging.TargetFile)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("before close")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
	logger.Info("after close")

	content := readLog(t, cfg.LogPath())
	if !strings.Contains(content, "before close") || strings.Contains(content, "after close") {
		t.Fatalf("log = %q, want only the record written before Close", content)
	}
}

func TestNewFromConfigWithoutOutputsIsClosable(t *testing.T) {
	cfg := config.Default()
	cfg.LogDir = ""

	_, closer, err := logging.NewFromConfig(&cfg, logging.TargetFile)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

func TestConsoleLoggerFormatsComponentAndQuotes(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.With(slog.String("component", "search")).Warn("request failed",
		slog.Any("error", errors.New("api returned status 500")),
		slog.Group("http", slog.Int("status", 500)),
	)

	content := readLog(t, logPath)
	if !strings.Contains(content, `WARN search: request failed error="api returned status 500" http.status=500`) {
		t.Fatalf("log = %q, want component prefix and quoted error", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("with caller")

	if content := readLog(t, logPath); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestJSONLoggerFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("detail loaded", slog.String("imdb_id", "tt0372784"))

	var payload map[string]any
	line := strings.TrimSpace(readLog(t, logPath))
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("unmarshal %q: %v", line, err)
	}
	if payload["level"] != "info" || payload["msg"] != "detail loaded" || payload["imdb_id"] != "tt0372784" {
		t.Fatalf("payload = %#v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("payload missing ts: %#v", payload)
	}
}

func TestLevelFiltering(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("quiet")
	logger.Warn("loud")

	content := readLog(t, logPath)
	if strings.Contains(content, "quiet") || !strings.Contains(content, "loud") {
		t.Fatalf("log = %q, want only warn records", content)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("New returned nil error for unsupported format")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := logging.ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWithRequestTagsLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "req.log")
	base, err := logging.New(logging.Options{OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger, id := logging.WithRequest(base, "detail")
	if id == "" {
		t.Fatal("WithRequest returned empty id")
	}
	logger.Info("fetching")

	content := readLog(t, logPath)
	if !strings.Contains(content, "detail: fetching request_id="+id) {
		t.Fatalf("log = %q, want component and request id %s", content, id)
	}
}
