package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/memolish/memolish-server/internal/model"
)

var _ model.TransformStore = (*TransformRepository)(nil)

// TransformRepository commits transform results. The memo write and the
// credit decrement happen in one transaction so no partial state is ever
// observable across requests.
type TransformRepository struct {
	db *Connection
}

func NewTransformRepository(db *Connection) *TransformRepository {
	return &TransformRepository{
		db: db,
	}
}

func (r *TransformRepository) Apply(ctx context.Context, params model.ApplyTransformParams) (model.Memo, model.User, error) {
	dialogueJSON, err := json.Marshal(params.Result.Dialogue)
	if err != nil {
		return model.Memo{}, model.User{}, fmt.Errorf("failed to encode dialogue: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Memo{}, model.User{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	memoQuery := `UPDATE memos SET is_transformed = TRUE, summary_ko = $2, summary_en = $3, dialogue_json = $4, updated_at = NOW()
				  WHERE id = $1
				  RETURNING ` + memoColumns

	var memo model.Memo
	err = tx.QueryRow(ctx, memoQuery, params.MemoID, params.Result.SummaryKo, params.Result.SummaryEn, dialogueJSON).Scan(
		&memo.ID, &memo.OwnerID, &memo.Content,
		&memo.SourceURL, &memo.URLTitle, &memo.URLDescription,
		&memo.Status, &memo.StartDate, &memo.EndDate, &memo.IsTransformed,
		&memo.SummaryKo, &memo.SummaryEn, &memo.DialogueJSON,
		&memo.AudioKey, &memo.CreatedAt, &memo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Memo{}, model.User{}, model.ErrNotFound
		}
		return model.Memo{}, model.User{}, fmt.Errorf("failed to store transform result: %w", err)
	}

	var user model.User
	if params.ConsumeCredit {
		// Conditional decrement: a concurrent transform that already spent
		// the last credit makes this row vanish instead of going negative.
		userQuery := `UPDATE users SET daily_credits = daily_credits - 1
					  WHERE id = $1 AND daily_credits > 0
					  RETURNING id, session_id, is_premium, daily_credits, credits_reset_date, created_at`

		err = tx.QueryRow(ctx, userQuery, params.UserID).Scan(
			&user.ID, &user.SessionID, &user.IsPremium, &user.DailyCredits,
			&user.CreditsResetDate, &user.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.Memo{}, model.User{}, model.ErrQuotaExhausted
			}
			return model.Memo{}, model.User{}, fmt.Errorf("failed to consume credit: %w", err)
		}
	} else {
		userQuery := `SELECT id, session_id, is_premium, daily_credits, credits_reset_date, created_at
					  FROM users WHERE id = $1`

		err = tx.QueryRow(ctx, userQuery, params.UserID).Scan(
			&user.ID, &user.SessionID, &user.IsPremium, &user.DailyCredits,
			&user.CreditsResetDate, &user.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.Memo{}, model.User{}, model.ErrNotFound
			}
			return model.Memo{}, model.User{}, fmt.Errorf("failed to get user: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Memo{}, model.User{}, fmt.Errorf("failed to commit transform: %w", err)
	}

	return memo, user, nil
}
