package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "popcorn.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || lines != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", lines, err)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
		want  Line
	}{
		{name: "empty", input: "", ok: false},
		{name: "no timestamp", input: "hello world", ok: false},
		{name: "bad level", input: "2026-10-14T09:00:00Z LOUD hi", ok: false},
		{
			name:  "component and fields",
			input: `2026-10-14T09:00:00Z WARN search: search failed query=bat error="api returned status 503"`,
			ok:    true,
			want: Line{
				Level:     "WARN",
				Component: "search",
				Message:   "search failed",
				Fields:    `query=bat error="api returned status 503"`,
			},
		},
		{
			name:  "message only",
			input: "2026-10-14T09:00:00Z INFO popcorn ready",
			ok:    true,
			want:  Line{Level: "INFO", Message: "popcorn ready"},
		},
		{
			name:  "source suffix stays in message",
			input: "2026-10-14T09:00:00Z DEBUG detail: detail requested [loader.go:91] imdb_id=tt0372784",
			ok:    true,
			want: Line{
				Level:     "DEBUG",
				Component: "detail",
				Message:   "detail requested [loader.go:91]",
				Fields:    "imdb_id=tt0372784",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseLine ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			got.Time = tt.want.Time
			if got != tt.want {
				t.Errorf("ParseLine() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestColorizeLineLeavesUnparsedLines(t *testing.T) {
	for _, raw := range []string{"", "   ", "panic: boom"} {
		if got := ColorizeLine(raw); got != raw {
			t.Errorf("ColorizeLine(%q) = %q", raw, got)
		}
	}
	line := "2026-10-14T09:00:00Z INFO watchlist: movie added imdb_id=tt0372784"
	if got := ColorizeLine(line); !strings.Contains(got, "movie added") {
		t.Errorf("ColorizeLine dropped the message: %q", got)
	}
}

func TestFilterLevel(t *testing.T) {
	lines := []string{
		"2026-10-14T09:00:00Z DEBUG search: search started",
		"2026-10-14T09:00:01Z WARN search: search failed",
		"  continuation of the warning",
		"2026-10-14T09:00:02Z INFO watchlist: movie added",
		"2026-10-14T09:00:03Z ERROR ui: add to watched failed",
	}
	got := FilterLevel(lines, "warn")
	want := []string{lines[1], lines[2], lines[4]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterLevel(warn) = %v, want %v", got, want)
	}
	if got := FilterLevel(lines, ""); len(got) != len(lines) {
		t.Fatalf("FilterLevel(\"\") dropped lines: %v", got)
	}
}
