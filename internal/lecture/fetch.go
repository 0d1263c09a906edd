package lecture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// ErrNotFound is returned by a Fetcher when no resource exists for an id.
var ErrNotFound = errors.New("lecture not found")

// Fetcher retrieves the raw bytes of one lecture file.
type Fetcher interface {
	Fetch(ctx context.Context, id int) ([]byte, error)
}

// FSFetcher reads Lecture_<id>.json files from a file system.
type FSFetcher struct {
	FS fs.FS
}

// NewDirFetcher returns a fetcher rooted at dir.
func NewDirFetcher(dir string) *FSFetcher {
	return &FSFetcher{FS: os.DirFS(dir)}
}

func (f *FSFetcher) Fetch(ctx context.Context, id int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(f.FS, FileName(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", FileName(id), err)
	}
	return data, nil
}

// HTTPFetcher GETs Lecture_<id>.json relative to BaseURL.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher returns a fetcher for the static files under baseURL.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  http.DefaultClient,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, id int) ([]byte, error) {
	url := f.BaseURL + "/" + FileName(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

// NewFetcher picks an HTTP fetcher for http(s) sources and a directory
// fetcher otherwise.
func NewFetcher(source string) Fetcher {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewHTTPFetcher(source)
	}
	return NewDirFetcher(source)
}
