package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// SPAHandler serves the compiled front-end for any route no API handler
// matched: a file from distDir if one exists at the path, index.html
// otherwise. Unknown /api paths get a JSON 404 instead.
func SPAHandler(distDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") {
			notFound(c, "Not found")
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			notFound(c, "Not found")
			return
		}

		clean := path.Clean("/" + p)
		if clean != "/" {
			candidate := filepath.Join(distDir, filepath.FromSlash(clean))
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				c.File(candidate)
				return
			}
		}

		index := filepath.Join(distDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			notFound(c, "Not found")
			return
		}
		c.File(index)
	}
}
