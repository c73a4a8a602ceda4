package app

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"salonbook/pkg/logger"
)

const indexFile = "index.html"

// staticHandler serves the booking form. Unknown paths fall back to
// index.html so client-side routes resolve.
type staticHandler struct {
	root  string
	files http.Handler
	log   *logger.Logger
}

func newStaticHandler(root string, log *logger.Logger) *staticHandler {
	return &staticHandler{
		root:  root,
		files: http.FileServer(http.Dir(root)),
		log:   log,
	}
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	name := path.Clean("/" + r.URL.Path)
	info, err := os.Stat(filepath.Join(h.root, filepath.FromSlash(strings.TrimPrefix(name, "/"))))
	if err == nil && !info.IsDir() {
		h.files.ServeHTTP(w, r)
		return
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		h.log.Warn("Static file lookup failed", "path", name, "error", err)
	}

	index := filepath.Join(h.root, indexFile)
	if _, err := os.Stat(index); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, index)
}
