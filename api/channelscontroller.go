package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultFeedCount = 10
	maxFeedCount     = 15
)

// RegisterChannelRoutes registers the channel upload listing.
func RegisterChannelRoutes(r *gin.Engine, h *handlers) {
	r.GET("/api/channels/:id/videos", h.handleChannelVideos)
}

func (h *handlers) handleChannelVideos(c *gin.Context) {
	if h.feeds == nil {
		respondError(c, http.StatusServiceUnavailable, "channel feeds are not configured")
		return
	}

	limit := defaultFeedCount
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxFeedCount)
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	entries, err := h.feeds.Latest(ctx, c.Param("id"), limit)
	if err != nil {
		respondError(c, http.StatusBadGateway, err.Error())
		return
	}
	c.JSON(http.StatusOK, entries)
}
