// Package ui provides the Bubble Tea terminal interface for popcorn.
//
// # Layout
//
// The screen is split into three bands:
//
//   - Header: logo, the search input and "Found N results"
//   - Body: the results pane on the left, the box pane on the right
//   - Footer: key hints and the last notice
//
// The box pane shows the open movie when one is selected and the watched
// summary with the watched list otherwise. Below LayoutStackedWidth columns
// the two panes stack vertically.
//
// # Event Flow
//
//  1. Every query change calls search.Source.Begin on the update loop
//  2. The returned request runs inside a tea.Cmd
//  3. Its outcome comes back as a message and is handed to Complete, which
//     drops it unless it belongs to the latest query
//  4. Selecting a result follows the same path through detail.Loader
//
// Window title changes raised by the detail loader are collected and
// emitted as tea.SetWindowTitle commands.
//
// # Key Bindings
//
//   - enter: focus the search input and clear it (leave it when focused)
//   - esc: close the open movie
//   - tab: switch between the results and the box pane
//   - j/k, g/G: move
//   - space or o: open or close the highlighted result
//   - 1-9, 0: rate the open movie (0 is 10); +/- adjust
//   - a: add the open movie to the watched list
//   - x or delete: remove the highlighted watched entry
//   - [ and ]: collapse the results pane or the watched list
//   - T: cycle theme; ?: help; ctrl+c: quit
//
// Theme and collapse state are written to the prefs file on every change.
package ui
