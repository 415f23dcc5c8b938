// Package pages renders each dashboard view as an explicit request/response
// payload. Handlers are stateless: every request acquires the current
// snapshot, aggregates it, and returns the render payload.
package pages

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/byu-pathway/insights-backend/internal/dto"
	"github.com/byu-pathway/insights-backend/internal/metrics"
	"github.com/byu-pathway/insights-backend/internal/shared"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
)

// Page IDs, also the path suffixes under /v1/pages.
const (
	PageOverview  = "overview"
	PageQuestions = "questions"
	PageTrends    = "trends"
	PageTopics    = "topics"
	PageWeekly    = "weekly"
	PageRegional  = "regional"
	PageCost      = "cost"
	PageFeedback  = "feedback"
)

type Handler struct {
	snapshots *snapshot.Service
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewHandler(snapshots *snapshot.Service, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		snapshots: snapshots,
		metrics:   m,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/pages/overview", h.Overview)
	g.GET("/pages/questions", h.Questions)
	g.GET("/pages/trends", h.Trends)
	g.GET("/pages/topics", h.Topics)
	g.GET("/pages/weekly", h.Weekly)
	g.GET("/pages/regional", h.Regional)
	g.GET("/pages/cost", h.Cost)
	g.GET("/pages/feedback", h.Feedback)
}

// acquire loads the current snapshot and maps load failures onto the HTTP
// error taxonomy: fetch failures are 502 with remediation hints, merge
// failures 422.
func (h *Handler) acquire(c echo.Context, page string) (*snapshot.Snapshot, error) {
	snap, err := h.snapshots.Acquire(c.Request().Context())
	if err != nil {
		h.metrics.ObservePageRender(page, statusFor(err))
		h.logger.Error("failed to load snapshot", "page", page, "error", err)
		return nil, MapLoadError(err)
	}
	return snap, nil
}

func (h *Handler) render(c echo.Context, page string, payload any) error {
	h.metrics.ObservePageRender(page, http.StatusOK)
	return c.JSON(http.StatusOK, payload)
}

// MapLoadError translates snapshot load failures onto the HTTP error
// taxonomy shared by every endpoint that triggers a load.
func MapLoadError(err error) error {
	var fe *shared.FetchError
	if errors.As(err, &fe) {
		apiErr := shared.NewAPIError("data_unavailable", err.Error())
		if len(fe.Hints) > 0 {
			apiErr = apiErr.WithDetails(map[string]any{"hints": fe.Hints})
		}
		return apiErr.ToHTTP(http.StatusBadGateway)
	}
	var me *shared.MergeError
	if errors.As(err, &me) {
		return shared.UnprocessableEntity("merge_failed", err.Error())
	}
	return shared.InternalError("render_failed", "failed to build the data snapshot")
}

func statusFor(err error) int {
	var fe *shared.FetchError
	if errors.As(err, &fe) {
		return http.StatusBadGateway
	}
	var me *shared.MergeError
	if errors.As(err, &me) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func basePage(snap *snapshot.Snapshot, page, title, subtitle string) *dto.PageResponse {
	return &dto.PageResponse{
		Page:     page,
		Title:    title,
		Subtitle: subtitle,
		Stamp:    snap.Stamp(),
		LoadedAt: snap.LoadedAt.UTC().Format(time.RFC3339),
	}
}

// @Summary      Overview page
// @Description  KPI cards plus the dataset inventory of the loaded batch
// @Tags         pages
// @Produce      json
// @Success      200  {object}  dto.PageResponse
// @Failure      422  {object}  shared.APIError
// @Failure      502  {object}  shared.APIError
// @Router       /v1/pages/overview [get]
func (h *Handler) Overview(c echo.Context) error {
	snap, err := h.acquire(c, PageOverview)
	if err != nil {
		return err
	}
	return h.render(c, PageOverview, buildOverview(snap))
}

// @Summary      Questions table
// @Description  Filterable, paginated table of merged question traces
// @Tags         pages
// @Produce      json
// @Param        q             query     string  false  "Substring match on the question text"
// @Param        topic         query     string  false  "Filter by topic name"
// @Param        from          query     string  false  "Earliest date (YYYY-MM-DD)"
// @Param        to            query     string  false  "Latest date (YYYY-MM-DD)"
// @Param        has_feedback  query     bool    false  "Only traces with (or without) feedback"
// @Param        limit         query     int     false  "Number of results (default 50, max 500)"
// @Param        offset        query     int     false  "Offset for pagination"
// @Success      200  {object}  dto.QuestionsResponse
// @Failure      422  {object}  shared.APIError
// @Failure      502  {object}  shared.APIError
// @Router       /v1/pages/questions [get]
func (h *Handler) Questions(c echo.Context) error {
	snap, err := h.acquire(c, PageQuestions)
	if err != nil {
		return err
	}
	return h.render(c, PageQuestions, buildQuestions(snap, parseQuestionsQuery(c)))
}

// @Summary      Trends page
// @Description  Question volume over time, top topics, and usage patterns
// @Tags         pages
// @Produce      json
// @Success      200  {object}  dto.PageResponse
// @Failure      422  {object}  shared.APIError
// @Failure      502  {object}  shared.APIError
// @Router       /v1/pages/trends [get]
func (h *Handler) Trends(c echo.Context) error {
	snap, err := h.acquire(c, PageTrends)
	if err != nil {
		return err
	}
	return h.render(c, PageTrends, buildTrends(snap))
}

// @Summary      New topics page
// @Description  Topic inventory with newly discovered topics highlighted
// @Tags         pages
// @Produce      json
// @Success      200  {object}  dto.PageResponse
// @Failure      422  {object}  shared.APIError
// @Failure      502  {object}  shared.APIError
// @Router       /v1/pages/topics [get]
func (h *Handler) Topics(c echo.Context) error {
	snap, err := h.acquire(c, PageTopics)
	if err != nil {
		return err
	}
	return h.render(c, PageTopics, buildTopics(snap))
}

// @Summary      Weekly insights page
// @Description  Week-by-week volume, cost, and topic breakdown
// @Tags         pages
// @Produce      json
// @Success      200  {object}  dto.PageResponse
// @Failure      422  {object}  shared.APIError
// @Failure      502  {object}  shared.APIError
// @Router       /v1/pages/weekly [get]
func (h *Handler) Weekly(c echo.Context) error {
	snap, err := h.acquire(c, PageWeekly)
	if err != nil {
		return err
	}
	return h.render(c, PageWeekly, buildWeekly(snap))
}

// @Summary      Regional insights page
// @Description  Language distribution and localization opportunities
// @Tags         pages
// @Produce      json
// @Success      200  {object}  dto.PageResponse
// @Failure      422  {object}  shared.APIError
// @Failure      502  {object}  shared.APIError
// @Router       /v1/pages/regional [get]
func (h *Handler) Regional(c echo.Context) error {
	snap, err := h.acquire(c, PageRegional)
	if err != nil {
		return err
	}
	return h.render(c, PageRegional, buildRegional(snap))
}

// @Summary      Cost and performance page
// @Description  Cost evaluation, latency analysis, and operational metrics
// @Tags         pages
// @Produce      json
// @Success      200  {object}  dto.PageResponse
// @Failure      422  {object}  shared.APIError
// @Failure      502  {object}  shared.APIError
// @Router       /v1/pages/cost [get]
func (h *Handler) Cost(c echo.Context) error {
	snap, err := h.acquire(c, PageCost)
	if err != nil {
		return err
	}
	return h.render(c, PageCost, buildCost(snap))
}

// @Summary      Feedback and satisfaction page
// @Description  Score distribution, user engagement, tags, and general feedback
// @Tags         pages
// @Produce      json
// @Param        q  query  string  false  "Substring filter for general feedback submissions"
// @Success      200  {object}  dto.PageResponse
// @Failure      422  {object}  shared.APIError
// @Failure      502  {object}  shared.APIError
// @Router       /v1/pages/feedback [get]
func (h *Handler) Feedback(c echo.Context) error {
	snap, err := h.acquire(c, PageFeedback)
	if err != nil {
		return err
	}
	return h.render(c, PageFeedback, buildFeedback(snap, c.QueryParam("q")))
}
