package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/heartmarshall/teamdex/internal/adapter/provider/httpclient"
	"github.com/heartmarshall/teamdex/internal/domain"
)

// Source modes accepted by NewSource.
const (
	ModeFile = "file"
	ModeHTTP = "http"
)

// dataFile is the dataset name fetched relative to a page URL.
const dataFile = "data.json"

var errNotArray = errors.New("team data is not a JSON array")

// DataSource loads the team dataset for rendering.
type DataSource interface {
	Load(ctx context.Context) (domain.Dataset, error)
	String() string
}

// NewSource picks the loading strategy for the runtime environment:
// ModeFile reads pre-populated data (data.json or the data.js sidecar) from disk,
// ModeHTTP fetches data.json over the network.
func NewSource(mode, location string, client *httpclient.Client) (DataSource, error) {
	switch mode {
	case ModeFile, "":
		return NewEmbeddedSource(location), nil
	case ModeHTTP:
		u, err := dataURL(location)
		if err != nil {
			return nil, err
		}
		return NewHTTPSource(u, client), nil
	default:
		return nil, fmt.Errorf("render: unknown source mode %q", mode)
	}
}

// EmbeddedSource reads the dataset from a local file, either plain JSON or a
// "window.X = [...];" sidecar.
type EmbeddedSource struct {
	path string
}

// NewEmbeddedSource creates an EmbeddedSource reading path.
func NewEmbeddedSource(path string) *EmbeddedSource {
	return &EmbeddedSource{path: path}
}

func (s *EmbeddedSource) String() string { return "file:" + s.path }

// Load reads and decodes the file.
func (s *EmbeddedSource) Load(_ context.Context) (domain.Dataset, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read team data: %w", err)
	}
	return decodeDataset(unwrapSidecar(data))
}

// HTTPSource fetches data.json, bypassing caches.
type HTTPSource struct {
	url    string
	client *httpclient.Client
}

// NewHTTPSource creates an HTTPSource fetching dataURL.
func NewHTTPSource(dataURL string, client *httpclient.Client) *HTTPSource {
	return &HTTPSource{url: dataURL, client: client}
}

func (s *HTTPSource) String() string { return s.url }

// Load fetches and decodes the dataset.
func (s *HTTPSource) Load(ctx context.Context) (domain.Dataset, error) {
	header := http.Header{}
	header.Set("Cache-Control", "no-cache")
	header.Set("Pragma", "no-cache")

	body, err := s.client.Get(ctx, s.url, header)
	if err != nil {
		return nil, fmt.Errorf("fetch team data: %w", err)
	}
	return decodeDataset(body)
}

// dataURL resolves data.json against a page URL unless location already names a .json file.
func dataURL(location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("render: parse url %q: %w", location, err)
	}
	if strings.HasSuffix(u.Path, ".json") {
		return u.String(), nil
	}
	return u.ResolveReference(&url.URL{Path: dataFile}).String(), nil
}

// unwrapSidecar strips a "window.X = " prefix and trailing ";" if present.
func unwrapSidecar(data []byte) []byte {
	data = bytes.TrimSpace(data)
	if !bytes.HasPrefix(data, []byte("window.")) {
		return data
	}
	if i := bytes.IndexByte(data, '='); i >= 0 {
		data = data[i+1:]
	}
	return bytes.TrimSpace(bytes.TrimSuffix(data, []byte(";")))
}

func decodeDataset(data []byte) (domain.Dataset, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, errNotArray
	}
	var dataset domain.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("decode team data: %w", err)
	}
	return dataset, nil
}
