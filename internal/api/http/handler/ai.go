package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memolish/memolish-server/internal/api/http/middleware"
	"github.com/memolish/memolish-server/internal/logger"
	"github.com/memolish/memolish-server/internal/model"
)

// AIService defines the transform workflow operations.
type AIService interface {
	Transform(ctx context.Context, sessionID string, memoID int64) (model.TransformOutcome, error)
	Credits(ctx context.Context, sessionID string) (model.User, error)
}

// AI handles HTTP endpoints for the transform workflow.
type AI struct {
	service      AIService
	dailyCredits int
	logger       *logger.Logger
}

// NewAI creates a new AI handler.
func NewAI(service AIService, dailyCredits int, logger *logger.Logger) *AI {
	return &AI{
		service:      service,
		dailyCredits: dailyCredits,
		logger:       logger,
	}
}

type transformResponse struct {
	SummaryKo        string         `json:"summary_ko"`
	SummaryEn        string         `json:"summary_en"`
	Dialogue         model.Dialogue `json:"dialogue"`
	CreditsRemaining int            `json:"credits_remaining"`
	Cached           bool           `json:"cached"`
}

type creditsResponse struct {
	DailyCredits    int  `json:"daily_credits"`
	IsPremium       bool `json:"is_premium"`
	MaxDailyCredits int  `json:"max_daily_credits"`
}

// Transform converts a memo into learning content, serving the stored
// result when one exists.
func (h *AI) Transform(c echo.Context) error {
	id, err := memoID(c)
	if err != nil {
		return badRequest(c, "invalid memo id")
	}

	outcome, err := h.service.Transform(c.Request().Context(), middleware.SessionID(c), id)
	if err != nil {
		h.logger.Error("transform failed", "memo_id", id, "error", err)
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, transformResponse{
		SummaryKo:        outcome.Result.SummaryKo,
		SummaryEn:        outcome.Result.SummaryEn,
		Dialogue:         outcome.Result.Dialogue,
		CreditsRemaining: outcome.CreditsRemaining,
		Cached:           outcome.Cached,
	})
}

// Credits returns the caller's remaining daily allowance.
func (h *AI) Credits(c echo.Context) error {
	user, err := h.service.Credits(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		h.logger.Error("credits lookup failed", "error", err)
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, creditsResponse{
		DailyCredits:    user.DailyCredits,
		IsPremium:       user.IsPremium,
		MaxDailyCredits: h.dailyCredits,
	})
}
