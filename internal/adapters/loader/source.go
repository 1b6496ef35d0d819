package loader

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"

	"github.com/pkg/errors"
)

// Source opens the dataset inputs by logical name, e.g. "pals.json" or
// "assets/pals_icons/manifest.json".
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

// DirSource reads inputs from a filesystem.
type DirSource struct {
	fsys  fs.FS
	label string
}

// NewDirSource serves inputs from a directory on disk.
func NewDirSource(dir string) *DirSource {
	return &DirSource{fsys: os.DirFS(dir), label: dir}
}

// NewFSSource serves inputs from any fs.FS.
func NewFSSource(fsys fs.FS, label string) *DirSource {
	return &DirSource{fsys: fsys, label: label}
}

// Open opens name relative to the source root.
func (s *DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", name)
	}
	return f, nil
}

func (s *DirSource) String() string { return "dir:" + s.label }

// HTTPSource fetches inputs relative to a base URL.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource builds a source rooted at base. A nil client means http.DefaultClient.
func NewHTTPSource(base string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.Wrapf(err, "parse base url %q", base)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("base url %q: scheme must be http or https", base)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: u, client: client}, nil
}

// Open issues a GET for name. Anything but 200 is an error.
func (s *HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	target := s.base.JoinPath(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for %s", name)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", target)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, errors.Wrapf(ErrStatus, "get %s: %d", target, resp.StatusCode)
	}
	return resp.Body, nil
}

func (s *HTTPSource) String() string { return s.base.String() }
