package service

import (
	"context"
	"fmt"
	"time"

	"github.com/memolish/memolish-server/internal/logger"
	"github.com/memolish/memolish-server/internal/model"
)

// Memo implements memo CRUD and link-metadata enrichment.
type Memo struct {
	memos  model.MemoStore
	links  model.LinkParser
	logger *logger.Logger
}

func NewMemo(memos model.MemoStore, links model.LinkParser, logger *logger.Logger) *Memo {
	return &Memo{
		memos:  memos,
		links:  links,
		logger: logger,
	}
}

func (s *Memo) Create(ctx context.Context, sessionID, content, sourceURL string) (model.Memo, error) {
	now := time.Now().UTC()
	endDate := now.Add(24 * time.Hour)

	memo, err := s.memos.Create(ctx, model.Memo{
		OwnerID:   sessionID,
		Content:   content,
		SourceURL: sourceURL,
		Status:    model.MemoStatusNotStarted,
		StartDate: now,
		EndDate:   &endDate,
	})
	if err != nil {
		return model.Memo{}, fmt.Errorf("failed to create memo: %w", err)
	}
	s.logger.Info("memo created", "memo_id", memo.ID, "session_id", sessionID)

	return memo, nil
}

func (s *Memo) List(ctx context.Context, sessionID string) ([]model.Memo, error) {
	memos, err := s.memos.GetByOwner(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memos: %w", err)
	}

	return memos, nil
}

func (s *Memo) Get(ctx context.Context, sessionID string, id int64) (model.Memo, error) {
	return ownedMemo(ctx, s.memos, sessionID, id)
}

func (s *Memo) Update(ctx context.Context, sessionID string, id int64, content string, sourceURL *string) (model.Memo, error) {
	if _, err := ownedMemo(ctx, s.memos, sessionID, id); err != nil {
		return model.Memo{}, err
	}

	memo, err := s.memos.Update(ctx, id, content, sourceURL)
	if err != nil {
		return model.Memo{}, fmt.Errorf("failed to update memo: %w", err)
	}

	return memo, nil
}

func (s *Memo) UpdateStatus(ctx context.Context, sessionID string, id int64, status model.MemoStatus) (model.Memo, error) {
	if _, err := ownedMemo(ctx, s.memos, sessionID, id); err != nil {
		return model.Memo{}, err
	}

	memo, err := s.memos.UpdateStatus(ctx, id, status)
	if err != nil {
		return model.Memo{}, fmt.Errorf("failed to update memo status: %w", err)
	}

	return memo, nil
}

func (s *Memo) Delete(ctx context.Context, sessionID string, id int64) error {
	if _, err := ownedMemo(ctx, s.memos, sessionID, id); err != nil {
		return err
	}

	if err := s.memos.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete memo: %w", err)
	}
	s.logger.Info("memo deleted", "memo_id", id, "session_id", sessionID)

	return nil
}

// ParseLink fetches metadata for url and stores it on the memo. Fetch
// failures degrade inside the parser, so this only errors on lookup or
// persistence problems.
func (s *Memo) ParseLink(ctx context.Context, sessionID string, id int64, url string) (model.Memo, error) {
	if _, err := ownedMemo(ctx, s.memos, sessionID, id); err != nil {
		return model.Memo{}, err
	}

	meta := s.links.Parse(ctx, url)

	memo, err := s.memos.SetLinkMetadata(ctx, id, url, meta.Title, meta.Description)
	if err != nil {
		return model.Memo{}, fmt.Errorf("failed to store link metadata: %w", err)
	}

	return memo, nil
}

// ownedMemo fetches a memo and verifies ownership. A memo owned by another
// session is reported as not found so existence never leaks.
func ownedMemo(ctx context.Context, memos model.MemoStore, sessionID string, id int64) (model.Memo, error) {
	memo, err := memos.GetByID(ctx, id)
	if err != nil {
		return model.Memo{}, err
	}
	if memo.OwnerID != sessionID {
		return model.Memo{}, model.ErrNotFound
	}

	return memo, nil
}
