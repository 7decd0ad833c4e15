package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/popcorn/internal/detail"
	"github.com/five82/popcorn/internal/omdb"
	"github.com/five82/popcorn/internal/prefs"
	"github.com/five82/popcorn/internal/search"
	"github.com/five82/popcorn/internal/storage"
	"github.com/five82/popcorn/internal/watchlist"
)

type fakeAPI struct {
	mu        sync.Mutex
	searches  []string
	searchErr error
}

var batmanDetail = omdb.MovieDetail{
	ID:         "tt0372784",
	Title:      "Batman Begins",
	Year:       "2005",
	Released:   "15 Jun 2005",
	Runtime:    "140 min",
	Genre:      "Action, Crime, Drama",
	Director:   "Christopher Nolan",
	Actors:     "Christian Bale, Michael Caine",
	Plot:       "After witnessing his parents' death, Bruce learns the art of fighting.",
	IMDbRating: "8.2",
}

func (f *fakeAPI) Search(_ context.Context, query string) (omdb.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, query)
	if f.searchErr != nil {
		return omdb.SearchResult{Kind: omdb.SearchFailure}, f.searchErr
	}
	if query != "bat" {
		return omdb.SearchResult{Kind: omdb.SearchNotFound, Message: "Movie not found!"}, nil
	}
	return omdb.SearchResult{
		Kind: omdb.SearchSuccess,
		Movies: []omdb.MovieSummary{
			batmanDetail.Summary(),
			{ID: "tt0468569", Title: "The Dark Knight", Year: "2008"},
		},
		Total: 2,
	}, nil
}

func (f *fakeAPI) Lookup(_ context.Context, id string) (omdb.DetailResult, error) {
	if id == batmanDetail.ID {
		return omdb.DetailResult{Kind: omdb.DetailFound, Movie: batmanDetail}, nil
	}
	return omdb.DetailResult{Kind: omdb.DetailFound, Movie: omdb.MovieDetail{ID: id, Title: "The Dark Knight", Runtime: "152 min", IMDbRating: "9.0"}}, nil
}

func (f *fakeAPI) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches)
}

type harness struct {
	t         *testing.T
	m         Model
	api       *fakeAPI
	kv        *storage.Memory
	prefsPath string
	titles    []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	kv := storage.NewMemory()
	coll, err := watchlist.Open(context.Background(), kv, watchlist.DefaultKey, nil, nil)
	if err != nil {
		t.Fatalf("watchlist.Open: %v", err)
	}
	h := &harness{
		t:         t,
		api:       &fakeAPI{},
		kv:        kv,
		prefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	}
	h.m = New(Options{API: h.api, Watched: coll, PrefsPath: h.prefsPath, Prefs: prefs.Defaults()})
	h.m.input.Cursor.SetMode(cursor.CursorStatic)
	h.send(tea.WindowSizeMsg{Width: 140, Height: 40})
	return h
}

// send feeds msg into Update and runs any data-source commands it returns.
func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	for _, out := range collectMsgs(cmd) {
		switch out.(type) {
		case searchMsg, detailMsg:
			h.send(out)
		}
	}
	if p := h.m.title.pending; p != "" && (len(h.titles) == 0 || h.titles[len(h.titles)-1] != p) {
		h.titles = append(h.titles, p)
	}
}

func (h *harness) typeText(s string) {
	h.t.Helper()
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) press(k tea.KeyType) {
	h.t.Helper()
	h.send(tea.KeyMsg{Type: k})
}

func (h *harness) view() string {
	return h.m.View()
}

func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func space() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

func TestShortQueryDoesNotSearch(t *testing.T) {
	h := newHarness(t)
	h.typeText("ba")
	if h.api.searchCount() != 0 {
		t.Fatalf("searches = %d, want 0", h.api.searchCount())
	}
	h.typeText("t")
	if h.api.searchCount() != 1 {
		t.Fatalf("searches = %d, want 1", h.api.searchCount())
	}
	view := h.view()
	if !strings.Contains(view, "Found 2 results") {
		t.Fatalf("header missing result count:\n%s", view)
	}
	if !strings.Contains(view, "Batman Begins (2005)") {
		t.Fatalf("results missing Batman Begins:\n%s", view)
	}
}

func TestSearchErrorsAreShown(t *testing.T) {
	h := newHarness(t)
	h.typeText("zzzz")
	if !strings.Contains(h.view(), search.NotFoundMessage) {
		t.Fatalf("view missing not-found message:\n%s", h.view())
	}

	h.api.searchErr = errors.New("connection refused")
	h.typeText("q")
	if !strings.Contains(h.view(), search.FailureMessage) {
		t.Fatalf("view missing failure message:\n%s", h.view())
	}
}

func TestStaleSearchMessageIsDropped(t *testing.T) {
	h := newHarness(t)
	h.typeText("ba")

	next, firstCmd := h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	h.m = next.(Model)
	stale := collectMsgs(firstCmd)

	h.typeText("qq")
	for _, msg := range stale {
		h.send(msg)
	}

	st := h.m.search.State()
	if st.Err != search.NotFoundMessage || len(st.Results) != 0 {
		t.Fatalf("state = %+v, want latest query outcome", st)
	}
}

func TestEnterTogglesSearchFocus(t *testing.T) {
	h := newHarness(t)
	h.typeText("bat")

	h.press(tea.KeyEnter)
	if h.m.focus != focusResults {
		t.Fatalf("focus = %v, want results", h.m.focus)
	}

	h.press(tea.KeyEnter)
	if h.m.focus != focusSearch {
		t.Fatalf("focus = %v, want search", h.m.focus)
	}
	if h.m.input.Value() != "" {
		t.Fatalf("query = %q, want cleared", h.m.input.Value())
	}
	if n := len(h.m.search.State().Results); n != 0 {
		t.Fatalf("results = %d after clearing query", n)
	}
}

func TestSelectShowsDetailAndTitle(t *testing.T) {
	h := newHarness(t)
	h.typeText("bat")
	h.press(tea.KeyEnter)
	h.send(space())

	view := h.view()
	for _, want := range []string{"Batman Begins", "Directed by Christopher Nolan", "8.2 IMDb rating", "☆☆☆☆☆☆☆☆☆☆"} {
		if !strings.Contains(view, want) {
			t.Fatalf("detail view missing %q:\n%s", want, view)
		}
	}
	if len(h.titles) == 0 || h.titles[len(h.titles)-1] != "Movie | Batman Begins" {
		t.Fatalf("titles = %v", h.titles)
	}

	h.send(space())
	if _, open := h.m.detail.Selected(); open {
		t.Fatal("selecting the open movie again did not close it")
	}
	if h.titles[len(h.titles)-1] != detail.DefaultTitle {
		t.Fatalf("title after close = %q", h.titles[len(h.titles)-1])
	}
}

func TestEscapeClosesDetail(t *testing.T) {
	h := newHarness(t)
	h.typeText("bat")
	h.press(tea.KeyEnter)
	h.send(space())
	h.press(tea.KeyEsc)
	if _, open := h.m.detail.Selected(); open {
		t.Fatal("esc did not close the detail view")
	}
	if !strings.Contains(h.view(), "MOVIES YOU WATCHED") {
		t.Fatalf("box pane did not return to watched summary:\n%s", h.view())
	}
}

func TestRateAndAddToWatched(t *testing.T) {
	h := newHarness(t)
	h.typeText("bat")
	h.press(tea.KeyEnter)
	h.send(space())

	// Adding without a rating does nothing.
	h.typeText("a")
	if h.m.watched.Len() != 0 {
		t.Fatal("movie added without a rating")
	}

	h.typeText("8")
	if !strings.Contains(h.view(), "★★★★★★★★☆☆ 8") {
		t.Fatalf("star bar not updated:\n%s", h.view())
	}
	h.typeText("a")

	entry, ok := h.m.watched.Find("tt0372784")
	if !ok || entry.UserRating != 8 || entry.Runtime != 140 || entry.IMDbRating != 8.2 {
		t.Fatalf("watched entry = %+v ok=%v", entry, ok)
	}
	if h.m.watched.Len() != 1 {
		t.Fatalf("watched len = %d, want 1", h.m.watched.Len())
	}
	if h.kv.Puts() != 1 {
		t.Fatalf("storage writes = %d, want 1", h.kv.Puts())
	}
	if _, open := h.m.detail.Selected(); open {
		t.Fatal("detail view still open after adding")
	}

	view := h.view()
	if !strings.Contains(view, "1 movie") || !strings.Contains(view, "⭐ 8.20") {
		t.Fatalf("summary not updated:\n%s", view)
	}

	h.send(space())
	if !strings.Contains(h.view(), "You rated this movie 8 ⭐") {
		t.Fatalf("watched movie does not show stored rating:\n%s", h.view())
	}
	h.typeText("5a")
	if h.m.watched.Len() != 1 || h.kv.Puts() != 1 {
		t.Fatal("watched movie was added twice")
	}
}

func TestRatingKeys(t *testing.T) {
	h := newHarness(t)
	h.typeText("bat")
	h.press(tea.KeyEnter)
	h.send(space())

	h.typeText("0")
	if h.m.rating != 10 {
		t.Fatalf("rating after 0 = %d, want 10", h.m.rating)
	}
	h.typeText("+")
	if h.m.rating != 10 {
		t.Fatalf("rating after + = %d, want capped 10", h.m.rating)
	}
	h.typeText("--")
	if h.m.rating != 8 {
		t.Fatalf("rating after -- = %d, want 8", h.m.rating)
	}
}

func TestRemoveFromWatched(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if err := h.m.watched.Append(ctx, detail.EntryFrom(batmanDetail, 7)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	h.press(tea.KeyEnter)
	h.press(tea.KeyTab)
	if h.m.focus != focusBox {
		t.Fatalf("focus = %v, want box", h.m.focus)
	}
	h.press(tea.KeyDelete)
	if h.m.watched.Len() != 0 {
		t.Fatalf("watched len = %d after remove", h.m.watched.Len())
	}
	if !strings.Contains(h.view(), "NaN") {
		t.Fatalf("empty summary should render NaN averages:\n%s", h.view())
	}
}

func TestThemeAndCollapsePersist(t *testing.T) {
	h := newHarness(t)
	h.press(tea.KeyEnter)

	h.typeText("T")
	if h.m.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", h.m.theme.Name)
	}
	h.typeText("]")

	saved := prefs.Load(h.prefsPath)
	if saved.Theme != "Slate" || !saved.WatchedCollapsed {
		t.Fatalf("saved prefs = %+v", saved)
	}
	if !strings.Contains(h.view(), "list hidden") {
		t.Fatalf("watched list not collapsed:\n%s", h.view())
	}
}

func TestHelpOverlay(t *testing.T) {
	h := newHarness(t)
	h.press(tea.KeyEnter)
	h.typeText("?")
	if !strings.Contains(h.view(), "Keyboard Shortcuts") {
		t.Fatalf("help not shown:\n%s", h.view())
	}
	h.typeText("j")
	if h.m.showHelp {
		t.Fatal("help still shown after a key press")
	}
}

func TestNarrowTerminalStacksPanes(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 60, Height: 30})
	if _, _, _, _, stacked := paneSizes(h.m.width, h.m.height); !stacked {
		t.Fatal("panes not stacked on a narrow terminal")
	}
	if view := h.view(); !strings.Contains(view, "Results") || !strings.Contains(view, "Watched") {
		t.Fatalf("stacked view missing panes:\n%s", view)
	}
}

func TestThemeCycle(t *testing.T) {
	seen := map[string]bool{}
	name := "Dracula"
	for range ThemeNames() {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != "Dracula" || len(seen) != len(ThemeNames()) {
		t.Fatalf("theme cycle visited %v and ended on %q", seen, name)
	}
	if GetTheme("nope").Name != "Dracula" {
		t.Fatal("unknown theme did not fall back to Dracula")
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"  Alien  ", 10, "Alien"},
		{"The Lord of the Rings", 10, "The Lor..."},
		{"abcd", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}
