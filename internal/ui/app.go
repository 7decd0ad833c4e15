package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/popcorn/internal/detail"
	"github.com/five82/popcorn/internal/logging"
	"github.com/five82/popcorn/internal/omdb"
	"github.com/five82/popcorn/internal/prefs"
	"github.com/five82/popcorn/internal/search"
	"github.com/five82/popcorn/internal/watchlist"
)

// focusArea is the pane that receives navigation keys.
type focusArea int

const (
	focusSearch focusArea = iota
	focusResults
	focusBox
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	API       omdb.Searcher
	Watched   *watchlist.Collection
	Logger    *slog.Logger
	Prefs     prefs.Prefs
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	logger    *slog.Logger
	prefs     prefs.Prefs
	prefsPath string
	keys      keyMap

	// Data sources
	search  *search.Source
	detail  *detail.Loader
	watched *watchlist.Collection
	title   *titleSink

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	focus    focusArea
	showHelp bool
	notice   string

	input          textinput.Model
	lastQuery      string
	resultRow      int
	watchedRow     int
	rating         int
	detailViewport viewport.Model
}

// titleSink collects window title changes from the detail loader until the
// update loop turns them into a tea.SetWindowTitle command.
type titleSink struct {
	pending string
	dirty   bool
}

func (s *titleSink) set(title string) {
	s.pending = title
	s.dirty = true
}

// New creates the Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	p := opts.Prefs
	if p.Theme == "" {
		p.Theme = prefs.Defaults().Theme
	}

	sink := &titleSink{}

	input := textinput.New()
	input.Placeholder = "Search movies..."
	input.Prompt = "🔍 "
	input.Focus()

	return Model{
		ctx:       ctx,
		logger:    logger.With(slog.String("component", "ui")),
		prefs:     p,
		prefsPath: opts.PrefsPath,
		keys:      DefaultKeyMap(),
		search:    search.New(opts.API, logger),
		detail:    detail.New(opts.API, logger, sink.set),
		watched:   opts.Watched,
		title:     sink,
		theme:     GetTheme(p.Theme),
		focus:     focusSearch,
		input:     input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle(detail.DefaultTitle),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(0, 0)
		}
		m.ready = true
		m.syncDetailViewport()
		return m, nil

	case searchMsg:
		if m.search.Complete(search.Outcome(msg)) {
			m.resultRow = clamp(m.resultRow, 0, maxInt(len(m.search.State().Results)-1, 0))
		}
		return m, nil

	case detailMsg:
		m.detail.Complete(detail.Outcome(msg))
		m.syncDetailViewport()
		return m, m.titleCmd()
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// Close cancels any outstanding requests.
func (m Model) Close() {
	m.search.Close()
	m.detail.Close()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// Messages

type searchMsg search.Outcome

type detailMsg detail.Outcome

// Commands

func runSearchCmd(req *search.Request) tea.Cmd {
	return func() tea.Msg {
		return searchMsg(req.Run())
	}
}

func runDetailCmd(req *detail.Request) tea.Cmd {
	return func() tea.Msg {
		return detailMsg(req.Run())
	}
}

// titleCmd flushes a pending window title change.
func (m Model) titleCmd() tea.Cmd {
	if !m.title.dirty {
		return nil
	}
	m.title.dirty = false
	return tea.SetWindowTitle(m.title.pending)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
