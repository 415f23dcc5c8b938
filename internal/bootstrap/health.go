package bootstrap

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/health"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
)

const version = "2.0.0"

func ProvideHealthHandler(
	fetcher *dataset.Fetcher,
	cache *snapshot.Cache,
	snapshots *snapshot.Service,
) *health.Handler {
	return health.NewHandler(fetcher, cache, snapshots, version)
}

func metricsMiddleware(h *health.Handler) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h.IncrementRequests()
			h.IncrementConnections()
			defer h.DecrementConnections()
			return next(c)
		}
	}
}

func RegisterHealthRoutes(e *echo.Echo, h *health.Handler) {
	e.Use(metricsMiddleware(h))
	h.RegisterRoutes(e)
}

var HealthModule = fx.Options(
	fx.Provide(ProvideHealthHandler),
	fx.Invoke(RegisterHealthRoutes),
)
