package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/memolish/memolish-server/internal/logger"
	"github.com/memolish/memolish-server/internal/model"
)

const audioContentType = "audio/mpeg"

// Audio implements the audio flow: synthesize once, store the bytes, and
// afterwards only re-issue presigned URLs for the stored object.
type Audio struct {
	memos       model.MemoStore
	storage     model.ObjectStorage
	synthesizer model.Synthesizer
	presignTTL  time.Duration
	downloadTTL time.Duration
	logger      *logger.Logger
}

func NewAudio(
	memos model.MemoStore,
	storage model.ObjectStorage,
	synthesizer model.Synthesizer,
	presignTTL time.Duration,
	downloadTTL time.Duration,
	logger *logger.Logger,
) *Audio {
	return &Audio{
		memos:       memos,
		storage:     storage,
		synthesizer: synthesizer,
		presignTTL:  presignTTL,
		downloadTTL: downloadTTL,
		logger:      logger,
	}
}

// Generate returns a playable URL for the memo's dialogue audio. A memo
// that already has a stored file skips synthesis entirely. The audio key is
// persisted only after a confirmed upload.
func (s *Audio) Generate(ctx context.Context, sessionID string, memoID int64) (model.AudioResult, error) {
	memo, err := ownedMemo(ctx, s.memos, sessionID, memoID)
	if err != nil {
		return model.AudioResult{}, err
	}
	if !memo.IsTransformed {
		return model.AudioResult{}, model.ErrNotFound
	}

	if memo.AudioKey != "" {
		url, err := s.storage.PresignedURL(ctx, memo.AudioKey, s.presignTTL)
		if err != nil {
			return model.AudioResult{}, fmt.Errorf("failed to presign audio: %w", err)
		}
		return model.AudioResult{URL: url, Cached: true}, nil
	}

	var dialogue model.Dialogue
	if err := json.Unmarshal(memo.DialogueJSON, &dialogue); err != nil {
		return model.AudioResult{}, fmt.Errorf("failed to decode stored dialogue: %w", err)
	}

	audio, err := s.synthesizer.Synthesize(ctx, dialogue.Exchanges)
	if err != nil {
		s.logger.Error("synthesis failed", "memo_id", memoID, "error", err)
		return model.AudioResult{}, err
	}

	key := fmt.Sprintf("audio/%s/%d.mp3", sessionID, memoID)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(audio), int64(len(audio)), audioContentType); err != nil {
		s.logger.Error("audio upload failed", "memo_id", memoID, "error", err)
		return model.AudioResult{}, fmt.Errorf("%w: audio upload failed", model.ErrUpstream)
	}

	if err := s.memos.SetAudioKey(ctx, memoID, key); err != nil {
		return model.AudioResult{}, fmt.Errorf("failed to store audio key: %w", err)
	}

	url, err := s.storage.PresignedURL(ctx, key, s.presignTTL)
	if err != nil {
		return model.AudioResult{}, fmt.Errorf("failed to presign audio: %w", err)
	}

	s.logger.Info("audio generated", "memo_id", memoID, "key", key, "bytes", len(audio))

	return model.AudioResult{URL: url}, nil
}

// DownloadURL issues a short-lived download URL for already-generated
// audio. It never triggers synthesis: a memo without a stored file is
// reported as not found.
func (s *Audio) DownloadURL(ctx context.Context, sessionID string, memoID int64) (string, time.Duration, error) {
	memo, err := ownedMemo(ctx, s.memos, sessionID, memoID)
	if err != nil {
		return "", 0, err
	}
	if memo.AudioKey == "" {
		return "", 0, model.ErrNotFound
	}

	url, err := s.storage.PresignedURL(ctx, memo.AudioKey, s.downloadTTL)
	if err != nil {
		return "", 0, fmt.Errorf("failed to presign audio: %w", err)
	}

	return url, s.downloadTTL, nil
}
