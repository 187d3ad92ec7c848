package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/memolish/memolish-server/internal/logger"
)

// Logging logs every HTTP request with a correlation id, duration and
// resulting status, mirroring what the handlers see.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle wraps an echo handler with request logging.
func (l *Logging) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		l.logger.Info("http request started",
			"request_id", requestID,
			"method", c.Request().Method,
			"path", c.Request().URL.Path)

		err := next(c)

		status := c.Response().Status
		if err != nil {
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				status = httpErr.Code
			} else {
				status = http.StatusInternalServerError
			}
		}

		l.logger.Info("http request completed",
			"request_id", requestID,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds())

		if err != nil {
			l.logger.Error("http request failed",
				"request_id", requestID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"error", err.Error())
		}

		return err
	}
}
