package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionHeader carries the caller-supplied session identifier. The token's
// origin is not verified server-side; it is an opaque ownership key.
const SessionHeader = "X-Session-Id"

const sessionContextKey = "session_id"

// Session extracts the session id header and rejects requests without one.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := c.Request().Header.Get(SessionHeader)
			if sessionID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"code":    "missing_session",
					"message": "X-Session-Id header is required",
				})
			}
			c.Set(sessionContextKey, sessionID)
			return next(c)
		}
	}
}

// SessionID returns the session id stored by Session.
func SessionID(c echo.Context) string {
	sessionID, _ := c.Get(sessionContextKey).(string)
	return sessionID
}
