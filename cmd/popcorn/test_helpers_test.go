package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const batmanSearch = `{
  "Search": [
    {"Title": "Batman Begins", "Year": "2005", "imdbID": "tt0372784", "Type": "movie", "Poster": "N/A"},
    {"Title": "The Batman", "Year": "2022", "imdbID": "tt1877830", "Type": "movie", "Poster": "N/A"}
  ],
  "totalResults": "2",
  "Response": "True"
}`

const batmanDetail = `{
  "Title": "Batman Begins", "Year": "2005", "Released": "15 Jun 2005", "Runtime": "140 min",
  "Genre": "Action, Drama", "Director": "Christopher Nolan", "Actors": "Christian Bale, Michael Caine",
  "Plot": "After witnessing his parents' death, Bruce learns the art of fighting.",
  "Poster": "N/A", "imdbRating": "8.2", "imdbID": "tt0372784", "Response": "True"
}`

type cliTestEnv struct {
	configPath string
	logDir     string
	dataDir    string
}

func newFakeOMDb(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		switch {
		case q.Get("s") == "batman":
			fmt.Fprint(w, batmanSearch)
		case q.Get("s") == "broken":
			w.WriteHeader(http.StatusServiceUnavailable)
		case q.Get("s") != "":
			fmt.Fprint(w, `{"Response":"False","Error":"Movie not found!"}`)
		case q.Get("i") == "tt0372784":
			fmt.Fprint(w, batmanDetail)
		default:
			fmt.Fprint(w, `{"Response":"False","Error":"Incorrect IMDb ID."}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	srv := newFakeOMDb(t)
	env := &cliTestEnv{
		configPath: filepath.Join(base, "config.toml"),
		logDir:     filepath.Join(base, "logs"),
		dataDir:    filepath.Join(base, "data"),
	}
	content := fmt.Sprintf(`api_key = "test"
api_base_url = %q
log_level = "error"
log_dir = %q

[storage]
driver = "file"
data_dir = %q
`, srv.URL, env.logDir, env.dataDir)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
