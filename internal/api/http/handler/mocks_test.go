package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/memolish/memolish-server/internal/model"
)

// MockMemoService mocks the MemoService interface
type MockMemoService struct {
	mock.Mock
}

func (m *MockMemoService) Create(ctx context.Context, sessionID, content, sourceURL string) (model.Memo, error) {
	args := m.Called(ctx, sessionID, content, sourceURL)
	return args.Get(0).(model.Memo), args.Error(1)
}

func (m *MockMemoService) List(ctx context.Context, sessionID string) ([]model.Memo, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]model.Memo), args.Error(1)
}

func (m *MockMemoService) Get(ctx context.Context, sessionID string, id int64) (model.Memo, error) {
	args := m.Called(ctx, sessionID, id)
	return args.Get(0).(model.Memo), args.Error(1)
}

func (m *MockMemoService) Update(ctx context.Context, sessionID string, id int64, content string, sourceURL *string) (model.Memo, error) {
	args := m.Called(ctx, sessionID, id, content, sourceURL)
	return args.Get(0).(model.Memo), args.Error(1)
}

func (m *MockMemoService) UpdateStatus(ctx context.Context, sessionID string, id int64, status model.MemoStatus) (model.Memo, error) {
	args := m.Called(ctx, sessionID, id, status)
	return args.Get(0).(model.Memo), args.Error(1)
}

func (m *MockMemoService) Delete(ctx context.Context, sessionID string, id int64) error {
	args := m.Called(ctx, sessionID, id)
	return args.Error(0)
}

func (m *MockMemoService) ParseLink(ctx context.Context, sessionID string, id int64, url string) (model.Memo, error) {
	args := m.Called(ctx, sessionID, id, url)
	return args.Get(0).(model.Memo), args.Error(1)
}

// MockAIService mocks the AIService interface
type MockAIService struct {
	mock.Mock
}

func (m *MockAIService) Transform(ctx context.Context, sessionID string, memoID int64) (model.TransformOutcome, error) {
	args := m.Called(ctx, sessionID, memoID)
	return args.Get(0).(model.TransformOutcome), args.Error(1)
}

func (m *MockAIService) Credits(ctx context.Context, sessionID string) (model.User, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(model.User), args.Error(1)
}

// MockAudioService mocks the AudioService interface
type MockAudioService struct {
	mock.Mock
}

func (m *MockAudioService) Generate(ctx context.Context, sessionID string, memoID int64) (model.AudioResult, error) {
	args := m.Called(ctx, sessionID, memoID)
	return args.Get(0).(model.AudioResult), args.Error(1)
}

func (m *MockAudioService) DownloadURL(ctx context.Context, sessionID string, memoID int64) (string, time.Duration, error) {
	args := m.Called(ctx, sessionID, memoID)
	return args.String(0), args.Get(1).(time.Duration), args.Error(2)
}
