package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/memolish/memolish-server/internal/api/http/middleware"
	"github.com/memolish/memolish-server/internal/logger"
	"github.com/memolish/memolish-server/internal/model"
)

// MemoService defines business operations for memo management.
type MemoService interface {
	Create(ctx context.Context, sessionID, content, sourceURL string) (model.Memo, error)
	List(ctx context.Context, sessionID string) ([]model.Memo, error)
	Get(ctx context.Context, sessionID string, id int64) (model.Memo, error)
	Update(ctx context.Context, sessionID string, id int64, content string, sourceURL *string) (model.Memo, error)
	UpdateStatus(ctx context.Context, sessionID string, id int64, status model.MemoStatus) (model.Memo, error)
	Delete(ctx context.Context, sessionID string, id int64) error
	ParseLink(ctx context.Context, sessionID string, id int64, url string) (model.Memo, error)
}

// Memo handles HTTP endpoints for memos.
type Memo struct {
	service MemoService
	logger  *logger.Logger
}

// NewMemo creates a new Memo handler.
func NewMemo(service MemoService, logger *logger.Logger) *Memo {
	return &Memo{
		service: service,
		logger:  logger,
	}
}

type createMemoRequest struct {
	Content   string `json:"content"`
	SourceURL string `json:"source_url"`
}

type updateMemoRequest struct {
	Content   string  `json:"content"`
	SourceURL *string `json:"source_url"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type parseLinkRequest struct {
	URL string `json:"url"`
}

type memoResponse struct {
	ID             int64           `json:"id"`
	Content        string          `json:"content"`
	SourceURL      string          `json:"source_url,omitempty"`
	URLTitle       string          `json:"url_title,omitempty"`
	URLDescription string          `json:"url_description,omitempty"`
	Status         string          `json:"status"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        *time.Time      `json:"end_date,omitempty"`
	IsTransformed  bool            `json:"is_transformed"`
	SummaryKo      string          `json:"ai_summary_ko,omitempty"`
	SummaryEn      string          `json:"ai_summary_en,omitempty"`
	Dialogue       json.RawMessage `json:"dialogue,omitempty"`
	AudioKey       string          `json:"audio_s3_key,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func toMemoResponse(memo model.Memo) memoResponse {
	return memoResponse{
		ID:             memo.ID,
		Content:        memo.Content,
		SourceURL:      memo.SourceURL,
		URLTitle:       memo.URLTitle,
		URLDescription: memo.URLDescription,
		Status:         string(memo.Status),
		StartDate:      memo.StartDate,
		EndDate:        memo.EndDate,
		IsTransformed:  memo.IsTransformed,
		SummaryKo:      memo.SummaryKo,
		SummaryEn:      memo.SummaryEn,
		Dialogue:       json.RawMessage(memo.DialogueJSON),
		AudioKey:       memo.AudioKey,
		CreatedAt:      memo.CreatedAt,
		UpdatedAt:      memo.UpdatedAt,
	}
}

// Create creates a memo with the start date set to now and the end date to
// tomorrow.
func (h *Memo) Create(c echo.Context) error {
	var req createMemoRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Content == "" {
		return badRequest(c, "content is required")
	}

	memo, err := h.service.Create(c.Request().Context(), middleware.SessionID(c), req.Content, req.SourceURL)
	if err != nil {
		h.logger.Error("memo create failed", "error", err)
		return handleError(c, err)
	}

	return c.JSON(http.StatusCreated, toMemoResponse(memo))
}

// List returns the caller's memos, newest first.
func (h *Memo) List(c echo.Context) error {
	memos, err := h.service.List(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		h.logger.Error("memo list failed", "error", err)
		return handleError(c, err)
	}

	responses := make([]memoResponse, 0, len(memos))
	for _, memo := range memos {
		responses = append(responses, toMemoResponse(memo))
	}

	return c.JSON(http.StatusOK, responses)
}

// Get returns one memo owned by the caller.
func (h *Memo) Get(c echo.Context) error {
	id, err := memoID(c)
	if err != nil {
		return badRequest(c, "invalid memo id")
	}

	memo, err := h.service.Get(c.Request().Context(), middleware.SessionID(c), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, toMemoResponse(memo))
}

// Update replaces memo content and, when provided, the source URL.
func (h *Memo) Update(c echo.Context) error {
	id, err := memoID(c)
	if err != nil {
		return badRequest(c, "invalid memo id")
	}

	var req updateMemoRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Content == "" {
		return badRequest(c, "content is required")
	}

	memo, err := h.service.Update(c.Request().Context(), middleware.SessionID(c), id, req.Content, req.SourceURL)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, toMemoResponse(memo))
}

// UpdateStatus moves a memo between lifecycle states.
func (h *Memo) UpdateStatus(c echo.Context) error {
	id, err := memoID(c)
	if err != nil {
		return badRequest(c, "invalid memo id")
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	status := model.MemoStatus(req.Status)
	if !status.Valid() {
		return badRequest(c, "invalid status")
	}

	memo, err := h.service.UpdateStatus(c.Request().Context(), middleware.SessionID(c), id, status)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, toMemoResponse(memo))
}

// Delete removes a memo owned by the caller.
func (h *Memo) Delete(c echo.Context) error {
	id, err := memoID(c)
	if err != nil {
		return badRequest(c, "invalid memo id")
	}

	if err := h.service.Delete(c.Request().Context(), middleware.SessionID(c), id); err != nil {
		return handleError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ParseLink fetches metadata for a URL and stores it on the memo.
func (h *Memo) ParseLink(c echo.Context) error {
	id, err := memoID(c)
	if err != nil {
		return badRequest(c, "invalid memo id")
	}

	var req parseLinkRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.URL == "" {
		return badRequest(c, "url is required")
	}

	memo, err := h.service.ParseLink(c.Request().Context(), middleware.SessionID(c), id, req.URL)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"title":       memo.URLTitle,
		"description": memo.URLDescription,
	})
}

func memoID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
