package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// staticHandler serves the frontend from absDir for every request no API route matched.
func staticHandler(absDir string, noCache, spaMode bool) gin.HandlerFunc {
	fs := http.FileServer(http.Dir(absDir))

	return func(c *gin.Context) {
		r := c.Request
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			respondError(c, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		if noCache {
			c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
		}

		// Unknown paths fall back to index.html, except under /api/.
		if spaMode && !strings.HasPrefix(r.URL.Path, "/api/") {
			fPath := filepath.Join(absDir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
			if _, err := os.Stat(fPath); os.IsNotExist(err) {
				r.URL.Path = "/"
			}
		}

		fs.ServeHTTP(c.Writer, r)
	}
}
