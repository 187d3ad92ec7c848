package model

import (
	"context"
	"time"
)

// MemoStore defines persistence operations for memos.
type MemoStore interface {
	Create(ctx context.Context, memo Memo) (Memo, error)
	GetByID(ctx context.Context, id int64) (Memo, error)
	GetByOwner(ctx context.Context, ownerID string) ([]Memo, error)
	Update(ctx context.Context, id int64, content string, sourceURL *string) (Memo, error)
	UpdateStatus(ctx context.Context, id int64, status MemoStatus) (Memo, error)
	SetLinkMetadata(ctx context.Context, id int64, url, title, description string) (Memo, error)
	SetAudioKey(ctx context.Context, id int64, key string) error
	Delete(ctx context.Context, id int64) error
}

// Memo represents a personal note and its learning-content state.
// IsTransformed implies summaries and DialogueJSON are present; AudioKey is
// set only after a confirmed upload.
type Memo struct {
	ID             int64
	OwnerID        string
	Content        string
	SourceURL      string
	URLTitle       string
	URLDescription string
	Status         MemoStatus
	StartDate      time.Time
	EndDate        *time.Time
	IsTransformed  bool
	SummaryKo      string
	SummaryEn      string
	DialogueJSON   []byte
	AudioKey       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MemoStatus enumerates memo lifecycle states.
type MemoStatus string

const (
	// MemoStatusNotStarted is the initial state of a new memo.
	MemoStatusNotStarted MemoStatus = "not_started"
	// MemoStatusInProgress marks a memo being worked on.
	MemoStatusInProgress MemoStatus = "in_progress"
	// MemoStatusCompleted marks a finished memo.
	MemoStatusCompleted MemoStatus = "completed"
	// MemoStatusKeepReviewing marks a memo kept for review.
	MemoStatusKeepReviewing MemoStatus = "keep_reviewing"
)

// Valid reports whether s is a member of the closed status set.
func (s MemoStatus) Valid() bool {
	switch s {
	case MemoStatusNotStarted, MemoStatusInProgress, MemoStatusCompleted, MemoStatusKeepReviewing:
		return true
	}
	return false
}
