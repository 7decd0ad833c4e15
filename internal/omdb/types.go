package omdb

import (
	"math"
	"strconv"
	"strings"
)

// MovieSummary is one entry of a search response. Fields are passed through
// from the API untouched.
type MovieSummary struct {
	ID     string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Type   string `json:"Type,omitempty"`
}

// MovieDetail mirrors the single-title lookup payload.
type MovieDetail struct {
	ID         string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	IMDbRating string `json:"imdbRating"`
}

// RatingValue returns the IMDb rating as a number. Values the API reports as
// "N/A" (or anything unparsable) yield zero.
func (d MovieDetail) RatingValue() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(d.IMDbRating), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// RuntimeMinutes strips the unit suffix from Runtime ("136 min" -> 136).
// Unparsable values yield zero.
func (d MovieDetail) RuntimeMinutes() int {
	fields := strings.Fields(d.Runtime)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.Atoi(fields[0])
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Summary projects the detail onto the summary fields.
func (d MovieDetail) Summary() MovieSummary {
	return MovieSummary{ID: d.ID, Title: d.Title, Year: d.Year, Poster: d.Poster}
}

// SearchKind tags the outcome of a search request.
type SearchKind int

const (
	SearchSuccess SearchKind = iota
	SearchNotFound
	SearchFailure
)

func (k SearchKind) String() string {
	switch k {
	case SearchSuccess:
		return "success"
	case SearchNotFound:
		return "not_found"
	default:
		return "failure"
	}
}

// SearchResult is the tagged outcome of Search. Movies is set only for
// SearchSuccess; Message carries the API's explanation for SearchNotFound.
type SearchResult struct {
	Kind    SearchKind
	Movies  []MovieSummary
	Total   int
	Message string
}

// DetailKind tags the outcome of a lookup request.
type DetailKind int

const (
	DetailFound DetailKind = iota
	DetailNotFound
	DetailFailure
)

func (k DetailKind) String() string {
	switch k {
	case DetailFound:
		return "found"
	case DetailNotFound:
		return "not_found"
	default:
		return "failure"
	}
}

// DetailResult is the tagged outcome of Lookup.
type DetailResult struct {
	Kind    DetailKind
	Movie   MovieDetail
	Message string
}

// searchPayload is the raw wire shape of ?s= responses.
type searchPayload struct {
	Response     string         `json:"Response"`
	Error        string         `json:"Error"`
	Search       []MovieSummary `json:"Search"`
	TotalResults string         `json:"totalResults"`
}

// detailPayload is the raw wire shape of ?i= responses.
type detailPayload struct {
	MovieDetail
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func isFalse(response string) bool {
	return strings.EqualFold(strings.TrimSpace(response), "false")
}
