package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// setupStaticFiles serves the exported site from dir when it exists. Unknown
// API paths always get a JSON 404.
func setupStaticFiles(router *gin.Engine, dir string, log *zap.Logger) {
	index := filepath.Join(dir, "index.html")
	_, err := os.Stat(index)
	hasSite := err == nil
	if hasSite {
		log.Info("serving frontend assets", zap.String("dir", dir))
	} else {
		log.Info("no frontend assets found, serving API only", zap.String("dir", dir))
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") || !hasSite {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+c.Request.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}
		// Client-side routes fall back to the single page entry point.
		c.File(index)
	})
}
