// Package main hosts the popcorn CLI entrypoint and command graph.
//
// Running popcorn without a subcommand starts the terminal UI. The remaining
// commands expose the same search, detail and watched-list operations for
// scripting: they share configuration resolution, storage and logging setup
// through commandContext so each command only deals with presentation.
package main
