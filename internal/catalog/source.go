package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

//go:embed sets/*.json
var builtinSets embed.FS

// Builtin returns the question sets compiled into the binary.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinSets, "sets")
	if err != nil {
		panic(err) // embedded layout is fixed at build time
	}
	return sub
}

// ManifestName is the document listing the available sets.
const ManifestName = "index.json"

// maxDocumentSize bounds a single fetched document.
const maxDocumentSize = 4 << 20

// ErrDocumentNotFound is returned by sources when a document does not exist.
var ErrDocumentNotFound = errors.New("document not found")

// Source fetches raw catalog documents by name ("index.json", "<id>.json").
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
	// Location describes the source for logs and CLI output.
	Location() string
}

// HTTPSource reads documents relative to a base URL.
type HTTPSource struct {
	baseURL string
	http    *http.Client
}

// NewHTTPSource creates a source rooted at baseURL. A nil client uses
// http.DefaultClient.
func NewHTTPSource(baseURL string, hc *http.Client) *HTTPSource {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPSource{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (s *HTTPSource) Location() string { return s.baseURL }

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	u := s.baseURL + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch %s: %w", name, ErrDocumentNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %d", name, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// FSSource reads documents from a filesystem.
type FSSource struct {
	fsys     fs.FS
	location string
}

// NewFSSource creates a source over fsys. location is only descriptive.
func NewFSSource(fsys fs.FS, location string) *FSSource {
	return &FSSource{fsys: fsys, location: location}
}

func (s *FSSource) Location() string { return s.location }

func (s *FSSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", name, ErrDocumentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// BuiltinLocation names the embedded source.
const BuiltinLocation = "builtin"

// SourceFor picks a source for a configured location: empty or "builtin"
// selects the embedded sets, an http(s) URL an HTTPSource, anything else a
// local directory.
func SourceFor(location string, hc *http.Client) Source {
	switch {
	case location == "" || location == BuiltinLocation:
		return NewFSSource(Builtin(), BuiltinLocation)
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, hc)
	default:
		return NewFSSource(os.DirFS(location), location)
	}
}
