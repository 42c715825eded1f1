package handlers

import (
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// SPAHandler serves the embedded UI build. Paths that are not real files get
// index.html so the client can route them; /api/ paths always 404.
func SPAHandler(staticFS fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(staticFS))

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}

		name := strings.TrimPrefix(r.URL.Path, "/")
		if name == "" {
			name = "index.html"
		}

		if isFile(staticFS, name) {
			w.Header().Set("Cache-Control", cacheControl(r.URL.Path))
			fileServer.ServeHTTP(w, r)
			return
		}

		slog.Debug("SPA fallback", "path", r.URL.Path)
		serveIndex(w, r, staticFS)
	}
}

// cacheControl returns the Cache-Control value for a static path.
// Files under /assets/ carry a content hash in their name.
func cacheControl(path string) string {
	if strings.HasPrefix(path, "/assets/") {
		return "public, max-age=31536000, immutable"
	}
	return "no-cache"
}

func isFile(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}

func serveIndex(w http.ResponseWriter, r *http.Request, fsys fs.FS) {
	f, err := fsys.Open("index.html")
	if err != nil {
		slog.Error("failed to open SPA index.html", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		slog.Error("SPA index.html is not seekable")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	modTime := time.Time{}
	if info, err := f.Stat(); err == nil {
		modTime = info.ModTime()
	}

	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, "index.html", modTime, rs)
}
