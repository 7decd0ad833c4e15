package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const logo = "🍿 usePopcorn"

// renderHeader renders the logo, the search input and the result count.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	st := m.search.State()
	count := fmt.Sprintf("Found %d %s", len(st.Results), pluralize(len(st.Results), "result", "results"))

	left := bg.Render(logo, styles.Logo)
	right := bg.Render(count, styles.MutedText)

	inputWidth := maxInt(m.width-lipgloss.Width(left)-lipgloss.Width(right)-8, 10)
	input := m.input
	input.Width = inputWidth - lipgloss.Width(input.Prompt) - 1
	field := bg.FillLine(input.View(), inputWidth)

	content := bg.Join([]string{left, field, right}, "   ")
	return styles.Header.Width(m.width).Render(content)
}

// renderFooter renders key hints and the last notice.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	content := m.renderShortHelp(styles, bg)
	if m.notice != "" {
		content = bg.Render(m.notice, styles.WarningText) + bg.Spaces(3) + content
	}
	return styles.Footer.Width(m.width).Render(content)
}

// renderBody lays out the results pane and the box pane.
func (m Model) renderBody() string {
	leftW, leftH, rightW, rightH, stacked := paneSizes(m.width, m.height)

	left := m.renderPane("Results", m.renderResults(leftW-paneBorder-2, leftH-paneBorder), leftW, leftH, m.focus == focusResults)
	right := m.renderPane(m.boxTitle(), m.renderBox(rightW-paneBorder-2, rightH-paneBorder), rightW, rightH, m.focus == focusBox)

	if stacked {
		return lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// renderPane draws a bordered box whose border highlights when focused.
func (m Model) renderPane(title, content string, width, height int, focused bool) string {
	styles := m.theme.Styles()
	border := m.theme.Border
	titleStyle := styles.MutedText
	if focused {
		border = m.theme.BorderFocus
		titleStyle = styles.AccentText.Bold(true)
	}
	body := titleStyle.Render(title) + "\n" + content
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(maxInt(width-paneBorder, 1)).
		Height(maxInt(height-paneBorder, 1)).
		MaxHeight(maxInt(height, 1)).
		Render(body)
}

func (m Model) boxTitle() string {
	if _, open := m.detail.Selected(); open {
		return "Movie"
	}
	return "Watched"
}

// renderBox renders the right pane: the open movie or the watched list.
func (m Model) renderBox(width, height int) string {
	if _, open := m.detail.Selected(); open {
		return m.renderDetail(width, height)
	}
	return m.renderWatched(width, height)
}
