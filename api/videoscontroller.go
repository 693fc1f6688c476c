package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tubenotes/types"
	"tubenotes/youtube"
)

// RegisterVideoRoutes registers URL preview endpoints.
func RegisterVideoRoutes(r *gin.Engine, h *handlers) {
	g := r.Group("/api/videos")
	g.POST("", h.handleResolveVideo)
}

type resolveVideoRequest struct {
	URL string `json:"url" binding:"required"`
}

// handleResolveVideo extracts the identifier and returns the preview card.
// Title and channel are added when the Data API is configured.
func (h *handlers) handleResolveVideo(c *gin.Context) {
	var req resolveVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	id, ok := youtube.ExtractVideoID(req.URL)
	if !ok {
		respondError(c, http.StatusBadRequest, types.InvalidURLMessage)
		return
	}

	info := types.VideoInfo{ID: id, ThumbnailURL: youtube.ThumbnailURL(id)}
	if h.metadata != nil {
		ctx, cancel := h.withTimeout(c)
		defer cancel()

		found, err := h.metadata.Lookup(ctx, id)
		if err != nil {
			h.logger.Warn("metadata lookup failed", slog.String("video_id", string(id)), slog.Any("err", err))
		} else {
			info.Title = found.Title
			info.Channel = found.Channel
		}
	}

	c.JSON(http.StatusOK, info)
}
