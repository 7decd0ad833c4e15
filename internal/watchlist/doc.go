// Package watchlist holds the user's rated movies.
//
// # Persistence
//
// A Collection is backed by a single storage.KV slot. The stored value is
// rehydrated once by Open and the whole list is rewritten after every
// Append or RemoveWhere. Stored data goes through Decode, which rejects
// anything that is not a well-formed array of valid entries; Open then falls
// back to the caller's default instead of adopting it.
//
// # Aggregates
//
// Summarize returns the unweighted means shown above the list. An empty list
// produces NaN averages, which FormatAverage prints as "NaN".
package watchlist
