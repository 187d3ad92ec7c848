package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/memolish/memolish-server/internal/model"
)

var _ model.MemoStore = (*MemoRepository)(nil)

const memoColumns = `id, owner_id, content,
		COALESCE(source_url, ''), COALESCE(url_title, ''), COALESCE(url_description, ''),
		status, start_date, end_date, is_transformed,
		COALESCE(summary_ko, ''), COALESCE(summary_en, ''), dialogue_json,
		COALESCE(audio_s3_key, ''), created_at, updated_at`

type MemoRepository struct {
	db *Connection
}

func NewMemoRepository(db *Connection) *MemoRepository {
	return &MemoRepository{
		db: db,
	}
}

func (r *MemoRepository) Create(ctx context.Context, memo model.Memo) (model.Memo, error) {
	query := `INSERT INTO memos (owner_id, content, source_url, status, start_date, end_date)
			  VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
			  RETURNING ` + memoColumns

	saved, err := r.scanMemo(r.db.QueryRow(ctx, query,
		memo.OwnerID, memo.Content, memo.SourceURL, string(memo.Status), memo.StartDate, memo.EndDate,
	))
	if err != nil {
		return model.Memo{}, fmt.Errorf("failed to create memo: %w", err)
	}

	return saved, nil
}

func (r *MemoRepository) GetByID(ctx context.Context, id int64) (model.Memo, error) {
	query := `SELECT ` + memoColumns + ` FROM memos WHERE id = $1`

	memo, err := r.scanMemo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Memo{}, model.ErrNotFound
		}
		return model.Memo{}, fmt.Errorf("failed to get memo by id: %w", err)
	}

	return memo, nil
}

func (r *MemoRepository) GetByOwner(ctx context.Context, ownerID string) ([]model.Memo, error) {
	query := `SELECT ` + memoColumns + ` FROM memos WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get memos by owner: %w", err)
	}
	defer rows.Close()

	var memos []model.Memo
	for rows.Next() {
		memo, err := r.scanMemo(rows)
		if err != nil {
			return nil, err
		}
		memos = append(memos, memo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return memos, nil
}

// Update replaces the memo content; sourceURL is replaced only when non-nil.
func (r *MemoRepository) Update(ctx context.Context, id int64, content string, sourceURL *string) (model.Memo, error) {
	query := `UPDATE memos SET content = $2,
				source_url = CASE WHEN $3::text IS NULL THEN source_url ELSE NULLIF($3, '') END,
				updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + memoColumns

	memo, err := r.scanMemo(r.db.QueryRow(ctx, query, id, content, sourceURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Memo{}, model.ErrNotFound
		}
		return model.Memo{}, fmt.Errorf("failed to update memo: %w", err)
	}

	return memo, nil
}

func (r *MemoRepository) UpdateStatus(ctx context.Context, id int64, status model.MemoStatus) (model.Memo, error) {
	query := `UPDATE memos SET status = $2, updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + memoColumns

	memo, err := r.scanMemo(r.db.QueryRow(ctx, query, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Memo{}, model.ErrNotFound
		}
		return model.Memo{}, fmt.Errorf("failed to update memo status: %w", err)
	}

	return memo, nil
}

func (r *MemoRepository) SetLinkMetadata(ctx context.Context, id int64, url, title, description string) (model.Memo, error) {
	query := `UPDATE memos SET source_url = $2, url_title = NULLIF($3, ''), url_description = NULLIF($4, ''), updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + memoColumns

	memo, err := r.scanMemo(r.db.QueryRow(ctx, query, id, url, title, description))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Memo{}, model.ErrNotFound
		}
		return model.Memo{}, fmt.Errorf("failed to set link metadata: %w", err)
	}

	return memo, nil
}

func (r *MemoRepository) SetAudioKey(ctx context.Context, id int64, key string) error {
	query := `UPDATE memos SET audio_s3_key = $2, updated_at = NOW() WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, key)
	if err != nil {
		return fmt.Errorf("failed to set audio key: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *MemoRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM memos WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete memo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *MemoRepository) scanMemo(row pgx.Row) (model.Memo, error) {
	var memo model.Memo
	err := row.Scan(
		&memo.ID, &memo.OwnerID, &memo.Content,
		&memo.SourceURL, &memo.URLTitle, &memo.URLDescription,
		&memo.Status, &memo.StartDate, &memo.EndDate, &memo.IsTransformed,
		&memo.SummaryKo, &memo.SummaryEn, &memo.DialogueJSON,
		&memo.AudioKey, &memo.CreatedAt, &memo.UpdatedAt,
	)
	if err != nil {
		return model.Memo{}, err
	}
	return memo, nil
}
