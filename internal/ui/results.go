package ui

import (
	"fmt"
	"strings"
)

// renderResults renders the search results list, the loader or the error.
func (m Model) renderResults(width, height int) string {
	styles := m.theme.Styles()
	st := m.search.State()

	switch {
	case m.prefs.ResultsCollapsed:
		return styles.FaintText.Render(fmt.Sprintf("%d hidden, press [ to show", len(st.Results)))
	case st.Loading:
		return styles.MutedText.Render("Loading...")
	case st.Err != "":
		return styles.DangerText.Render("⛔ " + st.Err)
	case len(st.Results) == 0:
		return styles.FaintText.Render("Type at least 3 characters to search")
	}

	rows := maxInt(height-1, 1)
	start := 0
	if m.resultRow >= rows {
		start = m.resultRow - rows + 1
	}
	end := minInt(start+rows, len(st.Results))
	selected, _ := m.detail.Selected()

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		movie := st.Results[i]
		marker := "  "
		if movie.ID == selected {
			marker = "▸ "
		}
		year := " (" + orNA(movie.Year) + ")"
		title := truncate(movie.Title, maxInt(width-len(marker)-len(year), 4))
		line := padRight(marker+title+year, width)

		switch {
		case i == m.resultRow && m.focus == focusResults:
			line = styles.Selected.Render(line)
		case movie.ID == selected:
			line = styles.Marked.Render(line)
		default:
			line = styles.Text.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
