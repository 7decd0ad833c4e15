package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines
// and no error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Line is one parsed console log record.
type Line struct {
	Time      time.Time
	Level     string
	Component string
	Message   string
	Fields    string
}

// ParseLine splits a console-format record ("TS LEVEL component: msg k=v").
// ok is false for lines that do not start with an RFC 3339 timestamp and a
// level.
func ParseLine(raw string) (Line, bool) {
	ts, rest, found := strings.Cut(raw, " ")
	if !found {
		return Line{}, false
	}
	when, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return Line{}, false
	}
	level, rest, _ := strings.Cut(rest, " ")
	switch level {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return Line{}, false
	}

	line := Line{Time: when, Level: level}
	if head, tail, ok := strings.Cut(rest, ": "); ok && !strings.ContainsAny(head, " =\"") {
		line.Component = head
		rest = tail
	}
	if i := firstField(rest); i >= 0 {
		line.Message = strings.TrimSpace(rest[:i])
		line.Fields = strings.TrimSpace(rest[i:])
	} else {
		line.Message = strings.TrimSpace(rest)
	}
	return line, true
}

// firstField returns the index of the first " key=" token in s, or -1.
func firstField(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			continue
		}
		j := i + 1
		for j < len(s) && s[j] != ' ' && s[j] != '=' && s[j] != '"' {
			j++
		}
		if j > i+1 && j < len(s) && s[j] == '=' {
			return i
		}
	}
	return -1
}

var (
	timeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	componentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))
	fieldStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	levelStyles    = map[string]lipgloss.Style{
		"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")).Bold(true),
		"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")).Bold(true),
		"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")).Bold(true),
		"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true),
	}
)

// ColorizeLine highlights a console-format record. Lines that do not parse
// are returned unchanged.
func ColorizeLine(raw string) string {
	line, ok := ParseLine(raw)
	if !ok {
		return raw
	}
	var b strings.Builder
	b.WriteString(timeStyle.Render(line.Time.Format(time.RFC3339)))
	b.WriteByte(' ')
	b.WriteString(levelStyles[line.Level].Render(line.Level))
	b.WriteByte(' ')
	if line.Component != "" {
		b.WriteString(componentStyle.Render(line.Component + ":"))
		b.WriteByte(' ')
	}
	b.WriteString(line.Message)
	if line.Fields != "" {
		b.WriteByte(' ')
		b.WriteString(fieldStyle.Render(line.Fields))
	}
	return b.String()
}

// ColorizeLines applies ColorizeLine to each line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ColorizeLine(line)
	}
	return out
}

// FilterLevel keeps lines at or above min. Continuation lines that do not
// parse follow the decision of the record before them.
func FilterLevel(lines []string, min string) []string {
	threshold, ok := levelRank[strings.ToUpper(strings.TrimSpace(min))]
	if !ok || threshold == 0 {
		return lines
	}
	out := make([]string, 0, len(lines))
	keep := false
	for _, raw := range lines {
		if line, parsed := ParseLine(raw); parsed {
			keep = levelRank[line.Level] >= threshold
		}
		if keep {
			out = append(out, raw)
		}
	}
	return out
}

var levelRank = map[string]int{"DEBUG": 0, "INFO": 1, "WARN": 2, "ERROR": 3}
