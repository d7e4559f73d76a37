package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/fdlbot/fdl/internal/metrics"
)

// MetricsHandler exposes Prometheus metrics.
type MetricsHandler struct {
	path string
}

func NewMetricsHandler(path string) *MetricsHandler {
	if path == "" {
		path = "/metrics"
	}
	return &MetricsHandler{path: path}
}

func (h *MetricsHandler) Register(e *echo.Echo) {
	e.GET(h.path, echo.WrapHandler(metrics.Handler()))
}
