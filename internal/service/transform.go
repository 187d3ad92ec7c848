package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/memolish/memolish-server/internal/logger"
	"github.com/memolish/memolish-server/internal/model"
)

// Transform runs the credit-gated transform workflow: return the stored
// result when one exists, block when the quota is exhausted, otherwise make
// the paid generation call and commit result and credit together.
type Transform struct {
	memos      model.MemoStore
	transforms model.TransformStore
	quota      *Quota
	generator  model.Generator
	logger     *logger.Logger
}

func NewTransform(
	memos model.MemoStore,
	transforms model.TransformStore,
	quota *Quota,
	generator model.Generator,
	logger *logger.Logger,
) *Transform {
	return &Transform{
		memos:      memos,
		transforms: transforms,
		quota:      quota,
		generator:  generator,
		logger:     logger,
	}
}

func (s *Transform) Transform(ctx context.Context, sessionID string, memoID int64) (model.TransformOutcome, error) {
	memo, err := ownedMemo(ctx, s.memos, sessionID, memoID)
	if err != nil {
		return model.TransformOutcome{}, err
	}

	user, err := s.quota.EnsureUser(ctx, sessionID)
	if err != nil {
		return model.TransformOutcome{}, err
	}
	user, err = s.quota.ResetIfNewDay(ctx, user)
	if err != nil {
		return model.TransformOutcome{}, err
	}

	// Already transformed: return the stored bundle. The paid call never
	// fires and no credit is consumed.
	if memo.IsTransformed && len(memo.DialogueJSON) > 0 {
		var dialogue model.Dialogue
		if err := json.Unmarshal(memo.DialogueJSON, &dialogue); err != nil {
			return model.TransformOutcome{}, fmt.Errorf("failed to decode stored dialogue: %w", err)
		}
		s.logger.Info("transform served from store", "memo_id", memoID)
		return model.TransformOutcome{
			Result: model.TransformResult{
				SummaryKo: memo.SummaryKo,
				SummaryEn: memo.SummaryEn,
				Dialogue:  dialogue,
			},
			CreditsRemaining: user.DailyCredits,
			Cached:           true,
		}, nil
	}

	if !s.quota.HasQuota(user) {
		return model.TransformOutcome{}, model.ErrQuotaExhausted
	}

	result, err := s.generator.Generate(ctx, sourceText(memo))
	if err != nil {
		// Failure is free: nothing was persisted, no credit consumed.
		s.logger.Error("generation failed", "memo_id", memoID, "error", err)
		return model.TransformOutcome{}, err
	}

	_, user, err = s.transforms.Apply(ctx, model.ApplyTransformParams{
		MemoID:        memo.ID,
		UserID:        user.ID,
		ConsumeCredit: !user.IsPremium,
		Result:        result,
	})
	if err != nil {
		return model.TransformOutcome{}, fmt.Errorf("failed to commit transform: %w", err)
	}

	s.logger.Info("transform complete", "memo_id", memoID, "credits_remaining", user.DailyCredits)

	return model.TransformOutcome{
		Result:           result,
		CreditsRemaining: user.DailyCredits,
	}, nil
}

// Credits returns the caller's current allowance, applying the daily reset
// first.
func (s *Transform) Credits(ctx context.Context, sessionID string) (model.User, error) {
	user, err := s.quota.EnsureUser(ctx, sessionID)
	if err != nil {
		return model.User{}, err
	}

	return s.quota.ResetIfNewDay(ctx, user)
}

// sourceText is what the generator sees: the memo content, plus the parsed
// link description under a section marker when present.
func sourceText(memo model.Memo) string {
	if memo.URLDescription == "" {
		return memo.Content
	}
	return fmt.Sprintf("%s\n\n[링크 요약]\n%s", memo.Content, memo.URLDescription)
}
