// Package config loads popcorn's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/popcorn/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults per field
//
// # Default Values
//
//   - API key: the public demo key the app has always shipped with
//   - API base URL: https://www.omdbapi.com/
//   - Log directory: ~/.local/share/popcorn/logs (popcorn.log inside)
//   - Storage: file driver under ~/.local/share/popcorn, key "watched"
//
// # TOML Format
//
//	api_key      = "32d86893"
//	api_base_url = "https://www.omdbapi.com/"
//	log_level    = "info"
//	log_format   = "console"
//	log_dir      = "~/.local/share/popcorn/logs"
//
//	[storage]
//	driver   = "file"   # file | sqlite | postgres | redis | memory
//	data_dir = "~/.local/share/popcorn"
//	dsn      = ""       # required for postgres and redis
//	key      = "watched"
//
// Every field is optional. Values are trimmed and tilde expansion is
// performed on log_dir and data_dir.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors ("parse config: ..."), an unknown storage
// driver (ErrUnknownDriver) and network drivers without a DSN. A missing file
// is not an error.
//
// The API key and base URL are handed to the omdb client explicitly; nothing
// in popcorn reads them from package-level state.
package config
