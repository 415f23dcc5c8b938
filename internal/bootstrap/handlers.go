package bootstrap

import (
	"log/slog"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"

	"github.com/byu-pathway/insights-backend/internal/auth"
	"github.com/byu-pathway/insights-backend/internal/meta"
	"github.com/byu-pathway/insights-backend/internal/metrics"
	"github.com/byu-pathway/insights-backend/internal/pages"
	"github.com/byu-pathway/insights-backend/internal/report"
	"github.com/byu-pathway/insights-backend/internal/shared"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
)

type HandlerParams struct {
	fx.In

	PagesHandler  *pages.Handler
	ReportHandler *report.Handler
	MetaHandler   *meta.Handler
	DevAuth       *auth.Middleware
	Registry      *prometheus.Registry
	Config        *Config
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/v1")

	params.PagesHandler.RegisterRoutes(api)
	params.ReportHandler.RegisterRoutes(api, params.DevAuth.RequireToken)
	params.MetaHandler.RegisterRoutes(api, params.DevAuth.RequireToken)

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(params.Registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler())

	e.Static("/assets", params.Config.StaticDir)
	e.GET("/*", func(c echo.Context) error {
		return c.File(params.Config.IndexHTML)
	})
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideAuthMiddleware(cfg *Config) *auth.Middleware {
	return auth.NewMiddleware(cfg.DevAccessToken)
}

func ProvideDashboard(cfg *Config, logger *slog.Logger) meta.Dashboard {
	theme := shared.ParseTheme(cfg.DashboardTheme)
	if !strings.EqualFold(cfg.DashboardTheme, theme.String()) {
		logger.Warn("unknown dashboard theme, falling back to light", "theme", cfg.DashboardTheme)
	}
	return meta.Dashboard{
		Title:   cfg.DashboardTitle,
		Icon:    cfg.DashboardIcon,
		Theme:   theme,
		Version: version,
	}
}

func ProvidePagesHandler(snapshots *snapshot.Service, m *metrics.Metrics, logger *slog.Logger) *pages.Handler {
	return pages.NewHandler(snapshots, m, logger.With("handler", "pages"))
}

func ProvideReportHandler(snapshots *snapshot.Service, logger *slog.Logger) *report.Handler {
	return report.NewHandler(snapshots, logger.With("handler", "report"))
}

func ProvideMetaHandler(dashboard meta.Dashboard, snapshots *snapshot.Service, logger *slog.Logger) *meta.Handler {
	return meta.NewHandler(dashboard, snapshots, logger.With("handler", "meta"))
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideAuthMiddleware,
		ProvideDashboard,
		ProvidePagesHandler,
		ProvideReportHandler,
		ProvideMetaHandler,
	),
	fx.Invoke(RegisterRoutes),
)
