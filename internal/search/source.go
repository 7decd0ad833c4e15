package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/five82/popcorn/internal/logging"
	"github.com/five82/popcorn/internal/omdb"
)

// MinQueryLength is the shortest query that triggers a search.
const MinQueryLength = 3

const (
	// NotFoundMessage is shown when the API reports no matches.
	NotFoundMessage = "Movie not found..."
	// FailureMessage is shown for every transport or decoding failure.
	FailureMessage = "Something went wrong ☹"
)

// State is what the results pane renders.
type State struct {
	Query   string
	Results []omdb.MovieSummary
	Total   int
	Loading bool
	Err     string
}

// Source owns the single outstanding search request. Starting a new request
// cancels the previous one and only the newest request may change State.
type Source struct {
	api    omdb.Searcher
	logger *slog.Logger

	mu         sync.Mutex
	state      State
	generation uint64
	cancel     context.CancelFunc
}

// Request is one search bound to a generation. Run it off the UI loop and
// hand the Outcome back to Complete.
type Request struct {
	Query      string
	ID         string
	generation uint64
	ctx        context.Context
	api        omdb.Searcher
	logger     *slog.Logger
}

// Outcome is the result of running a Request.
type Outcome struct {
	Query      string
	RequestID  string
	Result     omdb.SearchResult
	Err        error
	generation uint64
}

// New constructs a Source backed by api.
func New(api omdb.Searcher, logger *slog.Logger) *Source {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Source{api: api, logger: logger, state: State{Results: []omdb.MovieSummary{}}}
}

// Begin records a query change. Queries shorter than MinQueryLength reset
// the state and return ok=false without touching the network; otherwise the
// previous request is cancelled and a new one is returned for the caller to
// Run.
func (s *Source) Begin(ctx context.Context, query string) (*Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if utf8.RuneCountInString(query) < MinQueryLength {
		s.state = State{Query: query, Results: []omdb.MovieSummary{}}
		return nil, false
	}

	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state.Query = query
	s.state.Loading = true
	s.state.Err = ""

	logger, id := logging.WithRequest(s.logger, "search")
	logger.Debug("search started", slog.String("query", query))
	return &Request{
		Query:      query,
		ID:         id,
		generation: s.generation,
		ctx:        reqCtx,
		api:        s.api,
		logger:     logger,
	}, true
}

// Run performs the network call. It blocks until the API answers or the
// request is cancelled.
func (r *Request) Run() Outcome {
	res, err := r.api.Search(r.ctx, r.Query)
	return Outcome{Query: r.Query, RequestID: r.ID, Result: res, Err: err, generation: r.generation}
}

// Complete applies out if it belongs to the latest request and reports
// whether the state changed. Superseded and cancelled outcomes are dropped.
func (s *Source) Complete(out Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.logger.With(slog.String("component", "search"), slog.String("request_id", out.RequestID))
	if out.generation != s.generation {
		logger.Debug("dropping superseded search", slog.String("query", out.Query))
		return false
	}
	if errors.Is(out.Err, context.Canceled) {
		logger.Debug("search cancelled", slog.String("query", out.Query))
		return false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state.Loading = false

	switch {
	case out.Err != nil || out.Result.Kind == omdb.SearchFailure:
		logger.Warn("search failed", slog.String("query", out.Query), slog.Any("error", out.Err))
		s.state.Err = FailureMessage
	case out.Result.Kind == omdb.SearchNotFound:
		logger.Debug("search found nothing", slog.String("query", out.Query), slog.String("api_message", out.Result.Message))
		s.state.Results = []omdb.MovieSummary{}
		s.state.Total = 0
		s.state.Err = NotFoundMessage
	default:
		logger.Debug("search finished", slog.String("query", out.Query), slog.Int("results", len(out.Result.Movies)))
		s.state.Results = cloneMovies(out.Result.Movies)
		s.state.Total = out.Result.Total
		s.state.Err = ""
	}
	return true
}

// Search is Begin, Run and Complete in one blocking call.
func (s *Source) Search(ctx context.Context, query string) State {
	req, ok := s.Begin(ctx, query)
	if ok {
		s.Complete(req.Run())
	}
	return s.State()
}

// State returns a copy of the current state.
func (s *Source) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Results = cloneMovies(s.state.Results)
	return st
}

// Close cancels any in-flight request. Late outcomes are dropped.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state.Loading = false
}

func cloneMovies(movies []omdb.MovieSummary) []omdb.MovieSummary {
	dup := make([]omdb.MovieSummary, len(movies))
	copy(dup, movies)
	return dup
}
