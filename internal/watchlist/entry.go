package watchlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// MaxRating is the top of the user rating scale.
const MaxRating = 10

// Entry is one rated movie on the watched list. Entries are values; the
// collection never mutates one after it has been appended.
type Entry struct {
	ID         string  `json:"imdbID"`
	Title      string  `json:"title"`
	Year       string  `json:"year"`
	Poster     string  `json:"poster"`
	IMDbRating float64 `json:"imdbRating"`
	Runtime    int     `json:"runtime"`
	UserRating int     `json:"userRating"`
}

var (
	// ErrDuplicate is returned when appending an id that is already watched.
	ErrDuplicate = errors.New("movie already on watched list")
	// ErrInvalidRating reports a user rating outside 1..MaxRating.
	ErrInvalidRating = errors.New("user rating out of range")
	// ErrInvalidEntry reports an entry that fails schema validation.
	ErrInvalidEntry = errors.New("invalid watched entry")
)

// Validate checks the fields every stored entry must satisfy.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: empty imdbID", ErrInvalidEntry)
	}
	if e.UserRating < 1 || e.UserRating > MaxRating {
		return fmt.Errorf("%w: %d", ErrInvalidRating, e.UserRating)
	}
	if e.Runtime < 0 {
		return fmt.Errorf("%w: negative runtime for %s", ErrInvalidEntry, e.ID)
	}
	if math.IsNaN(e.IMDbRating) || math.IsInf(e.IMDbRating, 0) || e.IMDbRating < 0 {
		return fmt.Errorf("%w: imdb rating for %s", ErrInvalidEntry, e.ID)
	}
	return nil
}

// Decode parses a stored collection. Any JSON or schema problem is reported
// as an error so the caller can fall back instead of adopting bad data.
func Decode(data []byte) ([]Entry, error) {
	var entries []Entry
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode watched list: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode watched list: trailing data")
	}
	if entries == nil {
		return nil, fmt.Errorf("decode watched list: not an array")
	}
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("decode watched list: entry %d: %w", i, err)
		}
	}
	return entries, nil
}

// Encode serializes the collection for storage.
func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode watched list: %w", err)
	}
	return data, nil
}
