package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/memolish/memolish-server/internal/api/http/middleware"
	"github.com/memolish/memolish-server/internal/logger"
	"github.com/memolish/memolish-server/internal/model"
)

// AudioService defines the audio generation and download operations.
type AudioService interface {
	Generate(ctx context.Context, sessionID string, memoID int64) (model.AudioResult, error)
	DownloadURL(ctx context.Context, sessionID string, memoID int64) (string, time.Duration, error)
}

// Audio handles HTTP endpoints for dialogue audio.
type Audio struct {
	service AudioService
	logger  *logger.Logger
}

// NewAudio creates a new Audio handler.
func NewAudio(service AudioService, logger *logger.Logger) *Audio {
	return &Audio{
		service: service,
		logger:  logger,
	}
}

type generateAudioResponse struct {
	AudioURL string `json:"audio_url"`
	Cached   bool   `json:"cached"`
}

type downloadAudioResponse struct {
	DownloadURL      string `json:"download_url"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

// Generate synthesizes dialogue audio (or re-issues a URL for stored
// audio) and returns a playable URL.
func (h *Audio) Generate(c echo.Context) error {
	id, err := memoID(c)
	if err != nil {
		return badRequest(c, "invalid memo id")
	}

	result, err := h.service.Generate(c.Request().Context(), middleware.SessionID(c), id)
	if err != nil {
		h.logger.Error("audio generation failed", "memo_id", id, "error", err)
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, generateAudioResponse{
		AudioURL: result.URL,
		Cached:   result.Cached,
	})
}

// Download issues a short-lived download URL; it never triggers synthesis.
func (h *Audio) Download(c echo.Context) error {
	id, err := memoID(c)
	if err != nil {
		return badRequest(c, "invalid memo id")
	}

	url, ttl, err := h.service.DownloadURL(c.Request().Context(), middleware.SessionID(c), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, downloadAudioResponse{
		DownloadURL:      url,
		ExpiresInSeconds: int(ttl.Seconds()),
	})
}
