package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

type statusTone int

const (
	toneInfo statusTone = iota
	toneSuccess
	toneWarn
)

var toneStyles = map[statusTone]lipgloss.Style{
	toneInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")),
	toneSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")),
	toneWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
}

// renderStatusLine colours msg when the writer is a terminal.
func renderStatusLine(writer io.Writer, tone statusTone, msg string) string {
	if !shouldColorize(writer) {
		return msg
	}
	return toneStyles[tone].Render(msg)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
