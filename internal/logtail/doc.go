// Package logtail reads and highlights popcorn's own log file.
//
// # Reading
//
// Read returns the last N lines of a file using a ring buffer of N entries,
// so memory stays O(N) regardless of file size. A non-positive N returns the
// whole file. Missing files return nil, nil because a fresh install has not
// logged anything yet.
//
// # Parsing and Colour
//
// ParseLine understands the console handler format written by the logging
// package:
//
//	2026-10-14T09:00:00Z WARN search: search failed query=bat error="..."
//
// ColorizeLine renders the timestamp, level, component and trailing fields
// with lipgloss. Lines that do not parse, such as panics or continuation
// lines, are returned unchanged. JSON-format logs are never recognised and
// pass through as well.
//
// FilterLevel drops records below a minimum level and keeps continuation
// lines with the record they follow.
package logtail
