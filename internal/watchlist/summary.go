package watchlist

import (
	"math"
	"strconv"
)

// Summary aggregates the watched list. Averages are plain unweighted means;
// an empty list yields NaN for each of them.
type Summary struct {
	Count         int
	AvgIMDbRating float64
	AvgUserRating float64
	AvgRuntime    float64
}

// Summarize computes the aggregates over entries.
func Summarize(entries []Entry) Summary {
	s := Summary{Count: len(entries)}
	var imdb, user, runtime float64
	for _, e := range entries {
		imdb += e.IMDbRating
		user += float64(e.UserRating)
		runtime += float64(e.Runtime)
	}
	n := float64(len(entries))
	if n == 0 {
		nan := math.NaN()
		s.AvgIMDbRating, s.AvgUserRating, s.AvgRuntime = nan, nan, nan
		return s
	}
	s.AvgIMDbRating = imdb / n
	s.AvgUserRating = user / n
	s.AvgRuntime = runtime / n
	return s
}

// FormatAverage renders an average with the given precision. NaN is shown
// as-is.
func FormatAverage(v float64, prec int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
