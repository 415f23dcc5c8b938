package report

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
)

type Handler struct {
	snapshots *snapshot.Service
	logger    *slog.Logger
}

func NewHandler(snapshots *snapshot.Service, logger *slog.Logger) *Handler {
	return &Handler{
		snapshots: snapshots,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group, requireToken echo.MiddlewareFunc) {
	g.GET("/report/diagnostic", h.Diagnostic, requireToken)
}

// @Summary      Diagnostic report
// @Description  Plain-text dump of the loaded batch, merged-table health, KPIs, and the last load error
// @Tags         diagnostics
// @Produce      plain
// @Param        X-Access-Token  header  string  false  "Developer access token"
// @Param        token           query   string  false  "Developer access token (alternative to the header)"
// @Success      200  {string}  string
// @Failure      401  {object}  shared.APIError
// @Failure      403  {object}  shared.APIError
// @Router       /v1/report/diagnostic [get]
func (h *Handler) Diagnostic(c echo.Context) error {
	// Current, not Acquire: the report must work when loads are failing.
	snap, _ := h.snapshots.Current()
	failure := h.snapshots.LastFailure()
	now := time.Now().UTC()

	text := Build(snap, failure, now)
	filename := "diagnostic_report_" + now.Format(dataset.StampLayout) + ".txt"
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	h.logger.Info("diagnostic report generated", "filename", filename, "has_snapshot", snap != nil)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
