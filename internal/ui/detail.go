package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/popcorn/internal/watchlist"
)

// syncDetailViewport resizes the detail viewport and refreshes its content.
func (m *Model) syncDetailViewport() {
	if !m.ready {
		return
	}
	_, _, rightW, rightH, _ := paneSizes(m.width, m.height)
	m.detailViewport.Width = maxInt(rightW-paneBorder-2, 1)
	m.detailViewport.Height = maxInt(rightH-paneBorder-1, 1)
	m.detailViewport.SetContent(m.detailContent(m.detailViewport.Width))
}

// renderDetail renders the open movie inside the box pane.
func (m Model) renderDetail(width, height int) string {
	styles := m.theme.Styles()
	st := m.detail.State()
	switch {
	case st.Loading:
		return styles.MutedText.Render("Loading...")
	case st.Err != "":
		return styles.DangerText.Render("⛔ "+st.Err) + "\n\n" + styles.FaintText.Render("esc to close")
	}
	return m.detailViewport.View()
}

// detailContent builds the scrollable body of the detail view.
func (m Model) detailContent(width int) string {
	st := m.detail.State()
	if !st.HasDetail {
		return ""
	}
	styles := m.theme.Styles()
	d := st.Detail
	wrap := lipgloss.NewStyle().Width(maxInt(width, 10))

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(d.Title))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(orNA(d.Released) + " • " + orNA(d.Runtime)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(orNA(d.Genre)))
	b.WriteString("\n")
	b.WriteString(styles.StarText.Render("⭐ ") + styles.Text.Render(orNA(d.IMDbRating)+" IMDb rating"))
	b.WriteString("\n\n")

	b.WriteString(m.renderRatingBox(st.ID))
	b.WriteString("\n\n")

	b.WriteString(wrap.Render(styles.Text.Italic(true).Render(orNA(d.Plot))))
	b.WriteString("\n\n")
	b.WriteString(wrap.Render(styles.Text.Render("Starring " + orNA(d.Actors))))
	b.WriteString("\n")
	b.WriteString(wrap.Render(styles.MutedText.Render("Directed by " + orNA(d.Director))))
	return b.String()
}

// renderRatingBox shows the star bar, or the stored rating when the movie is
// already watched.
func (m Model) renderRatingBox(id string) string {
	styles := m.theme.Styles()
	if m.watched != nil {
		if entry, ok := m.watched.Find(id); ok {
			return styles.Text.Render(fmt.Sprintf("You rated this movie %d ⭐", entry.UserRating))
		}
	}
	line := m.renderStars(m.rating)
	if m.rating > 0 {
		line += "\n" + styles.SuccessText.Render("a  + Add to list")
	} else {
		line += "\n" + styles.FaintText.Render("press 1-9 or 0 to rate")
	}
	return line
}

// renderStars draws a maxRating-wide star bar with the current value.
func (m Model) renderStars(rating int) string {
	styles := m.theme.Styles()
	rating = clamp(rating, 0, watchlist.MaxRating)
	filled := strings.Repeat("★", rating)
	empty := strings.Repeat("☆", watchlist.MaxRating-rating)
	label := ""
	if rating > 0 {
		label = fmt.Sprintf(" %d", rating)
	}
	return styles.StarText.Render(filled+empty) + styles.WarningText.Render(label)
}
