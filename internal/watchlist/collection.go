package watchlist

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/five82/popcorn/internal/logging"
	"github.com/five82/popcorn/internal/storage"
)

// DefaultKey is the storage key the watched list lives under.
const DefaultKey = "watched"

// Collection is the watched list mirrored to a storage slot. Every mutation
// replaces the slice with a new one and then writes the whole list.
type Collection struct {
	mu      sync.RWMutex
	entries []Entry
	kv      storage.KV
	key     string
	logger  *slog.Logger
}

// Open rehydrates the collection stored under key. A missing, unreadable or
// malformed value falls back to a copy of fallback; only the read failure is
// logged, never returned, so a corrupt slot cannot keep popcorn from starting.
func Open(ctx context.Context, kv storage.KV, key string, fallback []Entry, logger *slog.Logger) (*Collection, error) {
	if kv == nil {
		return nil, fmt.Errorf("watchlist requires storage")
	}
	if key == "" {
		key = DefaultKey
	}
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(slog.String("component", "watchlist"), slog.String("key", key))

	c := &Collection{kv: kv, key: key, logger: logger, entries: cloneEntries(fallback)}

	data, ok, err := kv.Get(ctx, key)
	switch {
	case err != nil:
		logger.Warn("read watched list failed; using default", slog.Any("error", err))
	case !ok:
		logger.Debug("no stored watched list; using default")
	default:
		entries, decodeErr := Decode(data)
		if decodeErr != nil {
			logger.Warn("stored watched list is malformed; using default", slog.Any("error", decodeErr))
			break
		}
		c.entries = entries
		logger.Debug("watched list restored", slog.Int("entries", len(entries)))
	}
	return c, nil
}

// Entries returns a copy of the current list.
func (c *Collection) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneEntries(c.entries)
}

// Len reports the number of entries.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Find returns the entry with id, if watched.
func (c *Collection) Find(id string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Append adds entry to the end of the list and persists the result. An id
// that is already present is rejected with ErrDuplicate.
//
// When the write fails the in-memory list keeps the new entry and the error
// is returned; the next successful mutation writes it out.
func (c *Collection) Append(ctx context.Context, entry Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.ID == entry.ID {
			return fmt.Errorf("%w: %s", ErrDuplicate, entry.ID)
		}
	}
	next := make([]Entry, 0, len(c.entries)+1)
	next = append(next, c.entries...)
	next = append(next, entry)
	c.entries = next

	c.logger.Info("movie added", slog.String("imdb_id", entry.ID), slog.Int("user_rating", entry.UserRating))
	return c.persistLocked(ctx)
}

// RemoveWhere drops the entry with id and persists the result. Removing an id
// that is not on the list is a no-op and does not write.
func (c *Collection) RemoveWhere(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	if len(next) == len(c.entries) {
		return nil
	}
	c.entries = next

	c.logger.Info("movie removed", slog.String("imdb_id", id))
	return c.persistLocked(ctx)
}

func (c *Collection) persistLocked(ctx context.Context) error {
	data, err := Encode(c.entries)
	if err != nil {
		return err
	}
	if err := c.kv.Put(ctx, c.key, data); err != nil {
		c.logger.Error("persist watched list failed", slog.Any("error", err))
		return fmt.Errorf("persist watched list: %w", err)
	}
	return nil
}

func cloneEntries(entries []Entry) []Entry {
	if len(entries) == 0 {
		return []Entry{}
	}
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return dup
}
