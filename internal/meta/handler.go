// Package meta serves the dashboard chrome (title, icon, theme, page list)
// and the manual refresh endpoint.
package meta

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/byu-pathway/insights-backend/internal/dto"
	"github.com/byu-pathway/insights-backend/internal/pages"
	"github.com/byu-pathway/insights-backend/internal/shared"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
)

// Dashboard is the branding slice of the config the meta endpoint exposes.
type Dashboard struct {
	Title   string
	Icon    string
	Theme   shared.Theme
	Version string
}

type Handler struct {
	dashboard Dashboard
	snapshots *snapshot.Service
	logger    *slog.Logger
}

func NewHandler(dashboard Dashboard, snapshots *snapshot.Service, logger *slog.Logger) *Handler {
	return &Handler{
		dashboard: dashboard,
		snapshots: snapshots,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group, requireToken echo.MiddlewareFunc) {
	g.GET("/meta", h.Meta)
	g.POST("/refresh", h.Refresh, requireToken)
}

// pageList mirrors the front end's navigation order.
func pageList() []dto.PageInfo {
	entries := []struct {
		id    string
		title string
	}{
		{pages.PageOverview, "Overview"},
		{pages.PageQuestions, "Questions Table"},
		{pages.PageTrends, "Trends & Analytics"},
		{pages.PageTopics, "New Topics"},
		{pages.PageWeekly, "Weekly Insights"},
		{pages.PageRegional, "Regional Insights"},
		{pages.PageCost, "Cost & Performance"},
		{pages.PageFeedback, "Feedback & Satisfaction"},
	}
	out := make([]dto.PageInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.PageInfo{ID: e.id, Title: e.title, Path: "/v1/pages/" + e.id})
	}
	return out
}

// @Summary      Dashboard metadata
// @Description  Branding, theme, and the list of available pages
// @Tags         meta
// @Produce      json
// @Success      200  {object}  dto.MetaResponse
// @Router       /v1/meta [get]
func (h *Handler) Meta(c echo.Context) error {
	return c.JSON(http.StatusOK, &dto.MetaResponse{
		Title:   h.dashboard.Title,
		Icon:    h.dashboard.Icon,
		Theme:   h.dashboard.Theme.String(),
		Version: h.dashboard.Version,
		Pages:   pageList(),
	})
}

// @Summary      Force a data refresh
// @Description  Drops the cached batch and refetches from the object store
// @Tags         meta
// @Produce      json
// @Param        X-Access-Token  header  string  false  "Developer access token"
// @Param        token           query   string  false  "Developer access token (alternative to the header)"
// @Success      200  {object}  dto.RefreshResponse
// @Failure      401  {object}  shared.APIError
// @Failure      422  {object}  shared.APIError
// @Failure      502  {object}  shared.APIError
// @Router       /v1/refresh [post]
func (h *Handler) Refresh(c echo.Context) error {
	snap, err := h.snapshots.Refresh(c.Request().Context())
	if err != nil {
		h.logger.Error("manual refresh failed", "error", err)
		return pages.MapLoadError(err)
	}

	h.logger.Info("manual refresh", "stamp", snap.Stamp(), "rows", snap.Merged.NumRows())
	return c.JSON(http.StatusOK, &dto.RefreshResponse{
		Stamp:     snap.Stamp(),
		Rows:      snap.Merged.NumRows(),
		Datasets:  len(snap.Batch.Tables),
		LoadedAt:  snap.LoadedAt.UTC().Format(time.RFC3339),
		FromCache: snap.FromCache,
	})
}
