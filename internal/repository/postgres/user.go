package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/memolish/memolish-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetBySessionID(ctx context.Context, sessionID string) (model.User, error) {
	var user model.User
	query := `SELECT id, session_id, is_premium, daily_credits, credits_reset_date, created_at
			  FROM users WHERE session_id = $1`

	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&user.ID, &user.SessionID, &user.IsPremium, &user.DailyCredits,
		&user.CreditsResetDate, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by session id: %w", err)
	}

	return user, nil
}

// Create inserts a user row for a new session id. Two concurrent first
// requests for the same session id both get the same row back.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (session_id, is_premium, daily_credits, credits_reset_date)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (session_id) DO UPDATE SET session_id = EXCLUDED.session_id
			  RETURNING id, session_id, is_premium, daily_credits, credits_reset_date, created_at`

	var savedUser model.User
	err := r.db.QueryRow(ctx, query,
		user.SessionID, user.IsPremium, user.DailyCredits, user.CreditsResetDate,
	).Scan(
		&savedUser.ID, &savedUser.SessionID, &savedUser.IsPremium, &savedUser.DailyCredits,
		&savedUser.CreditsResetDate, &savedUser.CreatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) ResetCredits(ctx context.Context, id int64, credits int, resetDate time.Time) (model.User, error) {
	query := `UPDATE users SET daily_credits = $2, credits_reset_date = $3
			  WHERE id = $1
			  RETURNING id, session_id, is_premium, daily_credits, credits_reset_date, created_at`

	var user model.User
	err := r.db.QueryRow(ctx, query, id, credits, resetDate).Scan(
		&user.ID, &user.SessionID, &user.IsPremium, &user.DailyCredits,
		&user.CreditsResetDate, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to reset credits: %w", err)
	}

	return user, nil
}
