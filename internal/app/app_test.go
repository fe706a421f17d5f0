package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/teamdex/internal/config"
	"github.com/heartmarshall/teamdex/internal/domain"
)

const stubPokedex = `[
	{"id": 25, "name": {"english": "Pikachu", "french": "Pikachu"}},
	{"id": 121, "name": {"english": "Starmie", "french": "Staross"}}
]`

// referenceAPI stubs both the alias dataset and the PokeAPI endpoints.
type referenceAPI struct {
	srv           *httptest.Server
	pokedexCalls  atomic.Int32
	failSpeciesID string
}

func newReferenceAPI(t *testing.T) *referenceAPI {
	t.Helper()
	api := &referenceAPI{}

	mux := http.NewServeMux()
	mux.HandleFunc("/pokedex.json", func(w http.ResponseWriter, r *http.Request) {
		api.pokedexCalls.Add(1)
		w.Write([]byte(stubPokedex))
	})
	mux.HandleFunc("/api/v2/pokemon/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		w.Write([]byte(`{"sprites":{"other":{"official-artwork":{"front_default":"https://img/` + id + `.png"}}}}`))
	})
	mux.HandleFunc("/api/v2/pokemon-species/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == api.failSpeciesID {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"flavor_text_entries":[{"flavor_text":"Espèce\f` + id + `","language":{"name":"fr"}}]}`))
	})

	api.srv = httptest.NewServer(mux)
	t.Cleanup(api.srv.Close)
	return api
}

func (a *referenceAPI) config() *config.Config {
	return &config.Config{
		Source: config.SourceConfig{
			AliasURL:   a.srv.URL + "/pokedex.json",
			APIBaseURL: a.srv.URL + "/api/v2",
		},
		HTTP:     config.HTTPConfig{Timeout: 2 * time.Second, MaxRedirects: 5, UserAgent: "teamdex-test"},
		Language: config.LanguageConfig{Preferred: "fr", Fallback: "en"},
		Output:   config.OutputConfig{SidecarVariable: "__TEAM_DATA__"},
		Render:   config.RenderConfig{SourceMode: "file", Title: "Team"},
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "team.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func ptrString(s string) *string { return &s }

func TestBuildDataset_Stdout(t *testing.T) {
	t.Parallel()

	api := newReferenceAPI(t)
	input := writeInput(t, "Ash,Pikachu\nMisty,Starmie")

	var stdout bytes.Buffer
	err := BuildDataset(context.Background(), api.config(), newTestLogger(), input, "", &stdout)
	require.NoError(t, err)

	var dataset domain.Dataset
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &dataset))
	assert.Equal(t, domain.Dataset{
		{Name: "Ash", Pokemon: "Pikachu", Image: ptrString("https://img/25.png"), Description: "Espèce 25"},
		{Name: "Misty", Pokemon: "Starmie", Image: ptrString("https://img/121.png"), Description: "Espèce 121"},
	}, dataset)
	assert.Equal(t, int32(1), api.pokedexCalls.Load())
	assert.True(t, strings.HasPrefix(stdout.String(), "[\n  {\n    \"name\": \"Ash\""))
}

func TestBuildDataset_SkipsFailedRow(t *testing.T) {
	t.Parallel()

	api := newReferenceAPI(t)
	api.failSpeciesID = "25"
	input := writeInput(t, "Ash,Pikachu\nMisty,Starmie\n")

	var stdout bytes.Buffer
	require.NoError(t, BuildDataset(context.Background(), api.config(), newTestLogger(), input, "", &stdout))

	var dataset domain.Dataset
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &dataset))
	require.Len(t, dataset, 1)
	assert.Equal(t, "Misty", dataset[0].Name)
}

func TestBuildDataset_WritesFiles(t *testing.T) {
	t.Parallel()

	api := newReferenceAPI(t)
	input := writeInput(t, "# roster\nAsh, pikachu\n")
	out := filepath.Join(t.TempDir(), "public", "data.json")

	var stdout bytes.Buffer
	require.NoError(t, BuildDataset(context.Background(), api.config(), newTestLogger(), input, out, &stdout))
	assert.Zero(t, stdout.Len(), "nothing goes to stdout when an output path is given")

	jsonData, err := os.ReadFile(out)
	require.NoError(t, err)
	jsData, err := os.ReadFile(filepath.Join(filepath.Dir(out), "data.js"))
	require.NoError(t, err)
	assert.Equal(t, "window.__TEAM_DATA__ = "+strings.TrimRight(string(jsonData), "\n")+";\n", string(jsData))

	var dataset domain.Dataset
	require.NoError(t, json.Unmarshal(jsonData, &dataset))
	require.Len(t, dataset, 1)
	assert.Equal(t, "Pikachu", dataset[0].Pokemon)
}

func TestBuildDataset_AliasDatasetDown(t *testing.T) {
	t.Parallel()

	api := newReferenceAPI(t)
	cfg := api.config()
	cfg.Source.AliasURL = api.srv.URL + "/missing.json"
	input := writeInput(t, "Ash,Pikachu\n")

	var stdout bytes.Buffer
	require.NoError(t, BuildDataset(context.Background(), cfg, newTestLogger(), input, "", &stdout))

	// Without aliases the slug "pikachu" is queried directly.
	var dataset domain.Dataset
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &dataset))
	require.Len(t, dataset, 1)
	assert.Equal(t, "https://img/pikachu.png", *dataset[0].Image)
}

func TestBuildDataset_LocalAliasFile(t *testing.T) {
	t.Parallel()

	api := newReferenceAPI(t)
	cfg := api.config()
	cfg.Source.AliasPath = filepath.Join(t.TempDir(), "pokedex.json")
	require.NoError(t, os.WriteFile(cfg.Source.AliasPath, []byte(stubPokedex), 0o644))
	input := writeInput(t, "Misty,Staross\n")

	var stdout bytes.Buffer
	require.NoError(t, BuildDataset(context.Background(), cfg, newTestLogger(), input, "", &stdout))

	var dataset domain.Dataset
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &dataset))
	require.Len(t, dataset, 1)
	assert.Equal(t, "https://img/121.png", *dataset[0].Image)
	assert.Equal(t, int32(0), api.pokedexCalls.Load())
}

func TestBuildDataset_NoRows(t *testing.T) {
	t.Parallel()

	api := newReferenceAPI(t)
	input := writeInput(t, "# nobody yet\n\n")

	err := BuildDataset(context.Background(), api.config(), newTestLogger(), input, "", io.Discard)
	assert.True(t, errors.Is(err, domain.ErrNoRows), "got %v", err)
	assert.Equal(t, int32(0), api.pokedexCalls.Load())
}

func TestBuildDataset_MissingInput(t *testing.T) {
	t.Parallel()

	api := newReferenceAPI(t)
	err := BuildDataset(context.Background(), api.config(), newTestLogger(),
		filepath.Join(t.TempDir(), "absent.csv"), "", io.Discard)
	require.Error(t, err)
}

func TestRenderPage_FromSidecar(t *testing.T) {
	t.Parallel()

	api := newReferenceAPI(t)
	dir := t.TempDir()
	input := writeInput(t, "Ash,Pikachu\nMisty,Starmie\n")
	require.NoError(t, BuildDataset(context.Background(), api.config(), newTestLogger(), input, filepath.Join(dir, "data.json"), io.Discard))

	page := filepath.Join(dir, "index.html")
	require.NoError(t, RenderPage(context.Background(), api.config(), newTestLogger(), filepath.Join(dir, "data.js"), page))

	f, err := os.Open(page)
	require.NoError(t, err)
	defer f.Close()
	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find("article.card").Length())
}

func TestRenderPage_UnreachableDataRendersEmpty(t *testing.T) {
	t.Parallel()

	api := newReferenceAPI(t)
	cfg := api.config()
	cfg.Render.SourceMode = "http"
	page := filepath.Join(t.TempDir(), "index.html")

	require.NoError(t, RenderPage(context.Background(), cfg, newTestLogger(), api.srv.URL+"/site/", page))

	data, err := os.ReadFile(page)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("article.card").Length())
	assert.Equal(t, 1, doc.Find("#team").Length())
}
