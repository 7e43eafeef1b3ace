package httpserver

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed web/index.html web/script.js
var webFS embed.FS

var staticFiles = []struct {
	route       string
	file        string
	contentType string
}{
	{"/", "web/index.html", "text/html; charset=utf-8"},
	{"/index.html", "web/index.html", "text/html; charset=utf-8"},
	{"/script.js", "web/script.js", "text/javascript; charset=utf-8"},
}

// registerStatic serves the order sync form from the embedded web directory.
func registerStatic(router *gin.Engine) error {
	for _, f := range staticFiles {
		data, err := webFS.ReadFile(f.file)
		if err != nil {
			return fmt.Errorf("load %s: %w", f.file, err)
		}
		contentType := f.contentType
		router.GET(f.route, func(c *gin.Context) {
			c.Data(http.StatusOK, contentType, data)
		})
	}
	return nil
}
