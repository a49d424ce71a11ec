package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
)

// newServer serves the public tree. Paths without an extension fall back to
// their .html file, directories to their index.html.
func newServer(fsys afero.Fs, root string, gatherer prometheus.Gatherer) http.Handler {
	static := afero.NewHttpFs(fsys).Dir(root)
	files := http.FileServer(static)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if !strings.HasSuffix(p, "/") && path.Ext(p) == "" && !exists(static, p) && exists(static, p+".html") {
			r2 := r.Clone(r.Context())
			r2.URL.Path = p + ".html"
			files.ServeHTTP(w, r2)
			return
		}
		files.ServeHTTP(w, r)
	})
	return mux
}

func exists(fsys http.FileSystem, name string) bool {
	f, err := fsys.Open(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Stat failed", keyPath, name, keyError, err)
		}
		return false
	}
	_ = f.Close()
	return true
}
