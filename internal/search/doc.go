// Package search keeps the results pane in step with the query.
//
// A Source owns at most one outstanding request. Each query change bumps a
// generation counter and cancels the previous request's context; Complete
// ignores any outcome whose generation is not the latest, so a slow response
// for "bat" can never replace the results for "batman".
//
// The split between Begin, Request.Run and Complete lets the Bubble Tea
// model run the blocking call inside a tea.Cmd and apply the result on the
// update loop. Search wraps the three steps for synchronous callers.
package search
