package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the standard API error body (message only).
type ErrorResponse struct {
	Message string `json:"message"`
}

// HTTPErrorHandler renders every handler error as an ErrorResponse.
// Errors that are not *echo.HTTPError are logged and reported as a bare 500.
func HTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	log = log.With(slog.String("handler", "error"))
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		body := ErrorResponse{Message: http.StatusText(code)}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			body.Message = http.StatusText(code)
			if msg, ok := he.Message.(string); ok && msg != "" {
				body.Message = msg
			}
		} else {
			log.Error("unhandled request error",
				slog.String("uri", c.Request().URL.Path),
				slog.Any("error", err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			log.Warn("write error response failed", slog.Any("error", err))
		}
	}
}
