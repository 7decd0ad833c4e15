// Package app is the composition root for popcorn.
//
// Open loads the TOML configuration, builds the slog logger, opens the
// configured storage driver, rehydrates the watched list and constructs the
// OMDb client. The resulting Env is shared by the TUI (Run) and by the
// one-shot CLI commands, which differ only in where they log:
//
//   - logging.TargetFile for the TUI, which owns the terminal
//   - logging.TargetStderr for CLI commands
//
// Startup fails only for configuration, logging and storage problems. A
// malformed watched list is not an error; it falls back to empty and logs a
// warning.
package app
