package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memolish/memolish-server/internal/model"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleError maps service errors onto HTTP responses. Quota exhaustion has
// its own status so clients can render an upsell prompt; upstream failures
// never leak transport detail.
func handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{
			Code:    "not_found",
			Message: "memo not found",
		})
	case errors.Is(err, model.ErrQuotaExhausted):
		return c.JSON(http.StatusPaymentRequired, errorResponse{
			Code:    "quota_exhausted",
			Message: "today's AI transform credits are used up; watch an ad or upgrade to premium",
		})
	case errors.Is(err, model.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{
			Code:    "service_unavailable",
			Message: err.Error(),
		})
	case errors.Is(err, model.ErrUpstream):
		return c.JSON(http.StatusBadGateway, errorResponse{
			Code:    "upstream_error",
			Message: "an external service failed, please try again later",
		})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Code:    "internal_error",
			Message: "internal server error",
		})
	}
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{
		Code:    "bad_request",
		Message: message,
	})
}
