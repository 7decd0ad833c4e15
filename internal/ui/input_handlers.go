package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/popcorn/internal/prefs"
	"github.com/five82/popcorn/internal/watchlist"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}

	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.FocusSearch):
		return m.focusSearchInput()

	case key.Matches(msg, m.keys.Escape):
		m.closeDetail()
		return m, m.titleCmd()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.syncDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.focus == focusResults {
			m.focus = focusBox
		} else {
			m.focus = focusResults
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleResults):
		m.prefs.ResultsCollapsed = !m.prefs.ResultsCollapsed
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleWatched):
		m.prefs.WatchedCollapsed = !m.prefs.WatchedCollapsed
		m.savePrefs()
		return m, nil
	}

	if _, open := m.detail.Selected(); open {
		if model, cmd, handled := m.handleRatingKey(msg); handled {
			return model, cmd
		}
	}

	if m.focus == focusResults {
		return m.handleResultsKey(msg)
	}
	return m.handleBoxKey(msg)
}

// handleSearchKey feeds the text input and starts a search whenever the
// query changes.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.FocusSearch), key.Matches(msg, m.keys.Tab):
		m.input.Blur()
		m.focus = focusResults
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.input.Blur()
		m.focus = focusResults
		m.closeDetail()
		return m, m.titleCmd()
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)

	query := m.input.Value()
	if query == m.lastQuery {
		return m, inputCmd
	}
	m.lastQuery = query
	m.resultRow = 0

	req, ok := m.search.Begin(m.ctx, query)
	if !ok {
		return m, inputCmd
	}
	return m, tea.Batch(inputCmd, runSearchCmd(req))
}

// focusSearchInput moves focus to the query input and clears it.
func (m Model) focusSearchInput() (tea.Model, tea.Cmd) {
	m.focus = focusSearch
	m.input.SetValue("")
	m.lastQuery = ""
	m.resultRow = 0
	m.search.Begin(m.ctx, "")
	return m, m.input.Focus()
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	results := m.search.State().Results
	if len(results) == 0 || m.prefs.ResultsCollapsed {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.resultRow < len(results)-1 {
			m.resultRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.resultRow > 0 {
			m.resultRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.resultRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.resultRow = len(results) - 1
	case key.Matches(msg, m.keys.Select):
		row := clamp(m.resultRow, 0, len(results)-1)
		return m.toggleSelection(results[row].ID)
	}
	return m, nil
}

// toggleSelection opens id, or closes it when it is already open.
func (m Model) toggleSelection(id string) (tea.Model, tea.Cmd) {
	if current, open := m.detail.Selected(); open && current == id {
		m.closeDetail()
		return m, m.titleCmd()
	}
	m.rating = 0
	req := m.detail.Select(m.ctx, id)
	m.syncDetailViewport()
	return m, tea.Batch(m.titleCmd(), runDetailCmd(req))
}

func (m *Model) closeDetail() {
	if _, open := m.detail.Selected(); !open {
		return
	}
	m.detail.Close()
	m.rating = 0
	if m.focus == focusBox {
		m.focus = focusResults
	}
	m.syncDetailViewport()
}

// handleRatingKey handles rating and add keys while a movie is open.
func (m Model) handleRatingKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Rate):
		n, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil, false
		}
		if n == 0 {
			n = watchlist.MaxRating
		}
		m.rating = n
	case key.Matches(msg, m.keys.RateUp):
		m.rating = clamp(m.rating+1, 1, watchlist.MaxRating)
	case key.Matches(msg, m.keys.RateDown):
		m.rating = clamp(m.rating-1, 1, watchlist.MaxRating)
	case key.Matches(msg, m.keys.AddWatched):
		m.addWatched()
		return m, m.titleCmd(), true
	default:
		return m, nil, false
	}
	m.syncDetailViewport()
	return m, nil, true
}

// addWatched appends the open movie with the chosen rating and closes it.
func (m *Model) addWatched() {
	if m.watched == nil || m.rating == 0 {
		return
	}
	st := m.detail.State()
	if _, watched := m.watched.Find(st.ID); watched {
		return
	}
	entry, err := m.detail.Entry(m.rating)
	if err != nil {
		return
	}

	err = m.watched.Append(m.ctx, entry)
	switch {
	case errors.Is(err, watchlist.ErrDuplicate):
		m.notice = "Already on your watched list"
		return
	case err != nil:
		m.logger.Error("add to watched failed", slog.String("imdb_id", entry.ID), slog.Any("error", err))
		m.notice = "Added, but the watched list could not be saved"
	default:
		m.notice = fmt.Sprintf("Added %s", entry.Title)
	}
	m.closeDetail()
}

// handleBoxKey handles the right pane: detail scrolling or watched list.
func (m Model) handleBoxKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if _, open := m.detail.Selected(); open {
		var cmd tea.Cmd
		m.detailViewport, cmd = m.detailViewport.Update(msg)
		return m, cmd
	}
	if m.watched == nil || m.prefs.WatchedCollapsed {
		return m, nil
	}

	entries := m.watched.Entries()
	if len(entries) == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.watchedRow < len(entries)-1 {
			m.watchedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.watchedRow > 0 {
			m.watchedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.watchedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.watchedRow = len(entries) - 1
	case key.Matches(msg, m.keys.Remove):
		row := clamp(m.watchedRow, 0, len(entries)-1)
		if err := m.watched.RemoveWhere(m.ctx, entries[row].ID); err != nil {
			m.logger.Error("remove from watched failed", slog.String("imdb_id", entries[row].ID), slog.Any("error", err))
			m.notice = "Removed, but the watched list could not be saved"
		}
		m.watchedRow = clamp(m.watchedRow, 0, maxInt(m.watched.Len()-1, 0))
	}
	return m, nil
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save preferences failed", slog.Any("error", err))
		m.notice = "Could not save preferences"
	}
}
