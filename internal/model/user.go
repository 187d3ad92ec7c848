package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetBySessionID(ctx context.Context, sessionID string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	ResetCredits(ctx context.Context, id int64, credits int, resetDate time.Time) (User, error)
}

// User represents a session-identified user and their daily credit state.
// DailyCredits never goes negative; premium users never consume credits.
type User struct {
	ID               int64
	SessionID        string
	IsPremium        bool
	DailyCredits     int
	CreditsResetDate time.Time
	CreatedAt        time.Time
}
