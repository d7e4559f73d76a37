package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthCountTimeout = 2 * time.Second

// RecordCounter reports how many link records exist.
type RecordCounter interface {
	Count(ctx context.Context) (int64, error)
}

// PingHandler serves the liveness and health endpoints.
type PingHandler struct {
	counter RecordCounter
	logger  *slog.Logger
}

// NewPingHandler creates a ping handler.
func NewPingHandler(log *slog.Logger, counter RecordCounter) *PingHandler {
	return &PingHandler{counter: counter, logger: log.With(slog.String("handler", "ping"))}
}

// Register mounts GET /, GET /_health, GET /ping and HEAD /health on the Echo instance.
func (h *PingHandler) Register(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/_health", h.Health)
	e.GET("/ping", h.Ping)
	e.HEAD("/health", h.PingHead)
}

// Root returns the liveness payload.
func (h *PingHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "running",
		"message": "FDL Bot is alive",
	})
}

// Health reports the record count. It answers 200 even when the store is unreachable.
func (h *PingHandler) Health(c echo.Context) error {
	if h.counter == nil {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCountTimeout)
	defer cancel()
	count, err := h.counter.Count(ctx)
	if err != nil {
		h.logger.Warn("health count failed", slog.Any("error", err))
		return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"items":  count,
	})
}

// Ping returns 200 JSON {"status":"ok"}.
func (h *PingHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// PingHead returns 200 No Content for health checks.
func (h *PingHandler) PingHead(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
