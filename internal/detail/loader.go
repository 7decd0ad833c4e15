package detail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/five82/popcorn/internal/logging"
	"github.com/five82/popcorn/internal/omdb"
	"github.com/five82/popcorn/internal/watchlist"
)

// DefaultTitle is the window title when no movie is open.
const DefaultTitle = "usePopcorn"

const (
	// NotFoundMessage is shown when the API does not know the id.
	NotFoundMessage = "Movie not found..."
	// FailureMessage is shown when the lookup fails.
	FailureMessage = "Could not load movie details ☹"
)

// ErrNoDetail is returned by Entry when no movie has loaded yet.
var ErrNoDetail = errors.New("no movie loaded")

// TitleFunc receives window title changes.
type TitleFunc func(title string)

// State is what the detail pane renders.
type State struct {
	ID        string
	Detail    omdb.MovieDetail
	HasDetail bool
	Loading   bool
	Err       string
}

// Loader fetches the detail of the selected movie. Only the latest selection
// may change State.
type Loader struct {
	api     omdb.Searcher
	logger  *slog.Logger
	onTitle TitleFunc

	mu         sync.Mutex
	state      State
	title      string
	generation uint64
	cancel     context.CancelFunc
}

// Request is one lookup bound to a generation.
type Request struct {
	ID         string
	RequestID  string
	generation uint64
	ctx        context.Context
	api        omdb.Searcher
}

// Outcome is the result of running a Request.
type Outcome struct {
	ID         string
	RequestID  string
	Result     omdb.DetailResult
	Err        error
	generation uint64
}

// New constructs a Loader. onTitle may be nil.
func New(api omdb.Searcher, logger *slog.Logger, onTitle TitleFunc) *Loader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loader{api: api, logger: logger, onTitle: onTitle, title: DefaultTitle}
}

// Select opens id, cancelling any lookup still running for a previous
// selection. The returned Request must be Run and its Outcome passed to
// Complete.
func (l *Loader) Select(ctx context.Context, id string) *Request {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.generation++
	if l.cancel != nil {
		l.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel

	l.state = State{ID: id, Loading: true}
	l.setTitleLocked(DefaultTitle)

	logger, requestID := logging.WithRequest(l.logger, "detail")
	logger.Debug("detail requested", slog.String("imdb_id", id))
	return &Request{ID: id, RequestID: requestID, generation: l.generation, ctx: reqCtx, api: l.api}
}

// Run performs the lookup. It blocks until the API answers or the request
// is cancelled.
func (r *Request) Run() Outcome {
	res, err := r.api.Lookup(r.ctx, r.ID)
	return Outcome{ID: r.ID, RequestID: r.RequestID, Result: res, Err: err, generation: r.generation}
}

// Complete applies out if it belongs to the current selection and reports
// whether the state changed.
func (l *Loader) Complete(out Outcome) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	logger := l.logger.With(slog.String("component", "detail"), slog.String("request_id", out.RequestID))
	if out.generation != l.generation {
		logger.Debug("dropping superseded detail", slog.String("imdb_id", out.ID))
		return false
	}
	if errors.Is(out.Err, context.Canceled) {
		logger.Debug("detail cancelled", slog.String("imdb_id", out.ID))
		return false
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.state.Loading = false

	switch {
	case out.Err != nil || out.Result.Kind == omdb.DetailFailure:
		logger.Warn("detail lookup failed", slog.String("imdb_id", out.ID), slog.Any("error", out.Err))
		l.state.Err = FailureMessage
	case out.Result.Kind == omdb.DetailNotFound:
		logger.Debug("detail not found", slog.String("imdb_id", out.ID), slog.String("api_message", out.Result.Message))
		l.state.Err = NotFoundMessage
	default:
		l.state.Detail = out.Result.Movie
		l.state.HasDetail = true
		l.state.Err = ""
		if title := strings.TrimSpace(out.Result.Movie.Title); title != "" {
			l.setTitleLocked("Movie | " + title)
		} else {
			l.setTitleLocked(DefaultTitle)
		}
	}
	return true
}

// Load is Select, Run and Complete in one blocking call.
func (l *Loader) Load(ctx context.Context, id string) State {
	l.Complete(l.Select(ctx, id).Run())
	return l.State()
}

// State returns the current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Selected reports the open id, if any.
func (l *Loader) Selected() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.ID, l.state.ID != ""
}

// Close shuts the detail view. Any running lookup is cancelled and the
// default title restored.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.state = State{}
	l.setTitleLocked(DefaultTitle)
}

// Entry builds the watched entry for the loaded movie with userRating.
func (l *Loader) Entry(userRating int) (watchlist.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.state.HasDetail {
		return watchlist.Entry{}, ErrNoDetail
	}
	if userRating < 1 || userRating > watchlist.MaxRating {
		return watchlist.Entry{}, fmt.Errorf("%w: %d", watchlist.ErrInvalidRating, userRating)
	}
	return EntryFrom(l.state.Detail, userRating), nil
}

// EntryFrom converts a lookup payload into a watched entry.
func EntryFrom(d omdb.MovieDetail, userRating int) watchlist.Entry {
	return watchlist.Entry{
		ID:         d.ID,
		Title:      d.Title,
		Year:       d.Year,
		Poster:     d.Poster,
		IMDbRating: d.RatingValue(),
		Runtime:    d.RuntimeMinutes(),
		UserRating: userRating,
	}
}

func (l *Loader) setTitleLocked(title string) {
	if title == l.title {
		return
	}
	l.title = title
	if l.onTitle != nil {
		l.onTitle(title)
	}
}
