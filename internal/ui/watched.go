package ui

import (
	"fmt"
	"strings"

	"github.com/five82/popcorn/internal/watchlist"
)

// renderWatched renders the summary and the watched list.
func (m Model) renderWatched(width, height int) string {
	styles := m.theme.Styles()
	if m.watched == nil {
		return styles.FaintText.Render("Watched list unavailable")
	}
	entries := m.watched.Entries()

	var b strings.Builder
	b.WriteString(m.renderSummary(watchlist.Summarize(entries)))

	if m.prefs.WatchedCollapsed {
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render("list hidden, press ] to show"))
		return b.String()
	}
	if len(entries) == 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render("Nothing watched yet"))
		return b.String()
	}

	// Two summary lines and a blank separator come first; each entry takes two.
	rows := maxInt((height-4)/2, 1)
	start := 0
	if m.watchedRow >= rows {
		start = m.watchedRow - rows + 1
	}
	end := minInt(start+rows, len(entries))

	for i := start; i < end; i++ {
		e := entries[i]
		title := padRight(truncate(e.Title, width), width)
		stats := padRight(fmt.Sprintf("⭐ %s  🌟 %d  ⏳ %d min",
			watchlist.FormatAverage(e.IMDbRating, 1), e.UserRating, e.Runtime), width)

		b.WriteString("\n")
		if i == start {
			b.WriteString("\n")
		}
		if i == m.watchedRow && m.focus == focusBox {
			b.WriteString(styles.Selected.Render(title))
			b.WriteString("\n")
			b.WriteString(styles.Selected.Render(stats))
			continue
		}
		b.WriteString(styles.Text.Bold(true).Render(title))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(stats))
	}
	return b.String()
}

// renderSummary renders the aggregate line block above the list.
func (m Model) renderSummary(s watchlist.Summary) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("MOVIES YOU WATCHED"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "#️⃣ %d %s   ⭐ %s   🌟 %s   ⏳ %s min",
		s.Count, pluralize(s.Count, "movie", "movies"),
		watchlist.FormatAverage(s.AvgIMDbRating, 2),
		watchlist.FormatAverage(s.AvgUserRating, 2),
		watchlist.FormatAverage(s.AvgRuntime, 0),
	)
	return b.String()
}
