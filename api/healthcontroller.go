package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tubenotes/types"
)

// RegisterHealthRoutes registers the liveness endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterOptionRoutes exposes the selectable languages and difficulty levels.
func RegisterOptionRoutes(r *gin.Engine) {
	r.GET("/api/languages", func(c *gin.Context) {
		c.JSON(http.StatusOK, types.Languages)
	})
	r.GET("/api/difficulties", func(c *gin.Context) {
		c.JSON(http.StatusOK, types.Difficulties)
	})
}
