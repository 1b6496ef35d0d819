// Package site serves the embedded table UI and, optionally, the dataset
// directory the UI loads icons from.
package site

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// DataPrefix is the URL prefix the data directory is served under.
const DataPrefix = "/data"

// ErrDataDir is returned when the configured data directory cannot be served.
var ErrDataDir = errors.New("data directory unavailable")

// Option applies a configuration option to Register.
type Option func(*settings)

type settings struct {
	dataDir string
}

// WithDataDir serves dir under /data/.
func WithDataDir(dir string) Option {
	return func(s *settings) {
		s.dataDir = dir
	}
}

// Register attaches the UI at / and, when configured, the data directory
// at /data/. A data directory that does not exist is an error.
func Register(_ context.Context, r chi.Router, opts ...Option) error {
	if r == nil {
		panic("router is nil")
	}
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.dataDir != "" {
		info, err := os.Stat(cfg.dataDir)
		if err != nil {
			return errors.Wrapf(ErrDataDir, "%s: %v", cfg.dataDir, err)
		}
		if !info.IsDir() {
			return errors.Wrapf(ErrDataDir, "%s is not a directory", cfg.dataDir)
		}
		FileServer(r, DataPrefix, http.Dir(cfg.dataDir))
	}

	FileServer(r, "/", FS())
	return nil
}

// FileServer serves root under path, which must not contain URL parameters.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
