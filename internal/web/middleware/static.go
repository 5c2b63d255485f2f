package middleware

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Static serves GET and HEAD requests whose path names a regular file under
// dir. Directories, dotfiles and .html page templates fall through to next.
func Static(dir string) func(http.Handler) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if dir == "" || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
				next.ServeHTTP(w, r)
				return
			}

			clean := path.Clean("/" + r.URL.Path)
			if clean == "/" || strings.Contains(clean, "/.") || strings.EqualFold(path.Ext(clean), ".html") {
				next.ServeHTTP(w, r)
				return
			}

			info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean)))
			if err != nil || !info.Mode().IsRegular() {
				next.ServeHTTP(w, r)
				return
			}

			files.ServeHTTP(w, r)
		})
	}
}
