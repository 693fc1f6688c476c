package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tubenotes/artifacts"
	"tubenotes/types"
)

// RegisterSummaryRoutes registers pipeline runs and artifact downloads.
func RegisterSummaryRoutes(r *gin.Engine, h *handlers) {
	g := r.Group("/api/summaries")
	g.POST("", h.handleCreateSummary)
	g.GET("/:id/download", h.handleDownloadSummary)
}

type createSummaryRequest struct {
	URL        string `json:"url" binding:"required"`
	Difficulty string `json:"difficulty"`
	Language   string `json:"language"`
}

// handleCreateSummary runs the whole pipeline synchronously and returns the run.
// 400 for bad input, 502 when an external stage failed.
func (h *handlers) handleCreateSummary(c *gin.Context) {
	var req createSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	lang := types.DefaultLanguage
	if name := strings.TrimSpace(req.Language); name != "" {
		found, ok := types.LookupLanguage(name)
		if !ok {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("unsupported language %q", req.Language))
			return
		}
		lang = found
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	run, err := h.runner.Summarize(ctx, types.Request{
		URL:        req.URL,
		Difficulty: types.ParseDifficulty(req.Difficulty),
		Language:   lang,
	})
	status := run.Snapshot()

	var parseErr *types.URLParseError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, status)
	case errors.As(err, &parseErr):
		c.JSON(http.StatusBadRequest, status)
	default:
		h.logger.Warn("summary run failed", slog.String("run_id", status.ID), slog.Any("err", err))
		c.JSON(http.StatusBadGateway, status)
	}
}

// handleDownloadSummary serves summary.txt for a finished run
func (h *handlers) handleDownloadSummary(c *gin.Context) {
	if h.artifacts == nil {
		respondError(c, http.StatusNotFound, "summary not found")
		return
	}

	artifact, err := h.artifacts.Load(c.Request.Context(), c.Param("id"))
	if errors.Is(err, artifacts.ErrNotFound) {
		respondError(c, http.StatusNotFound, "summary not found")
		return
	}
	if err != nil {
		h.logger.Error("artifact load failed", slog.String("run_id", c.Param("id")), slog.Any("err", err))
		respondError(c, http.StatusInternalServerError, "failed to load summary")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType+"; charset=utf-8", []byte(artifact.Body))
}
