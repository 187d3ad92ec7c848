package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/memolish/memolish-server/internal/logger"
	"github.com/memolish/memolish-server/internal/model"
)

// Quota tracks the per-user daily allowance of paid transforms.
type Quota struct {
	users        model.UserStore
	dailyCredits int
	now          func() time.Time
	logger       *logger.Logger
}

func NewQuota(users model.UserStore, dailyCredits int, logger *logger.Logger) *Quota {
	return &Quota{
		users:        users,
		dailyCredits: dailyCredits,
		now:          time.Now,
		logger:       logger,
	}
}

// EnsureUser returns the user for a session id, creating one with the
// default allowance on first sight.
func (s *Quota) EnsureUser(ctx context.Context, sessionID string) (model.User, error) {
	user, err := s.users.GetBySessionID(ctx, sessionID)
	if errors.Is(err, model.ErrNotFound) {
		user, err = s.users.Create(ctx, model.User{
			SessionID:        sessionID,
			DailyCredits:     s.dailyCredits,
			CreditsResetDate: s.today(),
		})
		if err != nil {
			return model.User{}, fmt.Errorf("failed to create user: %w", err)
		}
		s.logger.Info("user created", "session_id", sessionID, "credits", user.DailyCredits)
		return user, nil
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// ResetIfNewDay restores the daily allowance once the calendar day has
// rolled over. Must run before any quota evaluation so a request arriving
// at rollover is not denied on a stale date.
func (s *Quota) ResetIfNewDay(ctx context.Context, user model.User) (model.User, error) {
	today := s.today()
	if !dateOf(user.CreditsResetDate).Before(today) {
		return user, nil
	}

	user, err := s.users.ResetCredits(ctx, user.ID, s.dailyCredits, today)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to reset credits: %w", err)
	}
	s.logger.Info("credits reset", "session_id", user.SessionID, "credits", user.DailyCredits)

	return user, nil
}

// HasQuota reports whether a paid transform is currently allowed.
func (s *Quota) HasQuota(user model.User) bool {
	return user.IsPremium || user.DailyCredits > 0
}

// DailyAllowance returns the configured per-day credit count.
func (s *Quota) DailyAllowance() int {
	return s.dailyCredits
}

func (s *Quota) today() time.Time {
	return dateOf(s.now())
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
