package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/memolish/memolish-server/internal/model"
)

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetBySessionID(ctx context.Context, sessionID string) (model.User, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) ResetCredits(ctx context.Context, id int64, credits int, resetDate time.Time) (model.User, error) {
	args := m.Called(ctx, id, credits, resetDate)
	return args.Get(0).(model.User), args.Error(1)
}

// MockMemoStore mocks the MemoStore interface
type MockMemoStore struct {
	mock.Mock
}

func (m *MockMemoStore) Create(ctx context.Context, memo model.Memo) (model.Memo, error) {
	args := m.Called(ctx, memo)
	return args.Get(0).(model.Memo), args.Error(1)
}

func (m *MockMemoStore) GetByID(ctx context.Context, id int64) (model.Memo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Memo), args.Error(1)
}

func (m *MockMemoStore) GetByOwner(ctx context.Context, ownerID string) ([]model.Memo, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Memo), args.Error(1)
}

func (m *MockMemoStore) Update(ctx context.Context, id int64, content string, sourceURL *string) (model.Memo, error) {
	args := m.Called(ctx, id, content, sourceURL)
	return args.Get(0).(model.Memo), args.Error(1)
}

func (m *MockMemoStore) UpdateStatus(ctx context.Context, id int64, status model.MemoStatus) (model.Memo, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(model.Memo), args.Error(1)
}

func (m *MockMemoStore) SetLinkMetadata(ctx context.Context, id int64, url, title, description string) (model.Memo, error) {
	args := m.Called(ctx, id, url, title, description)
	return args.Get(0).(model.Memo), args.Error(1)
}

func (m *MockMemoStore) SetAudioKey(ctx context.Context, id int64, key string) error {
	args := m.Called(ctx, id, key)
	return args.Error(0)
}

func (m *MockMemoStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTransformStore mocks the TransformStore interface
type MockTransformStore struct {
	mock.Mock
}

func (m *MockTransformStore) Apply(ctx context.Context, params model.ApplyTransformParams) (model.Memo, model.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Memo), args.Get(1).(model.User), args.Error(2)
}

// MockGenerator mocks the Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, sourceText string) (model.TransformResult, error) {
	args := m.Called(ctx, sourceText)
	return args.Get(0).(model.TransformResult), args.Error(1)
}

// MockSynthesizer mocks the Synthesizer interface
type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, exchanges []model.Exchange) ([]byte, error) {
	args := m.Called(ctx, exchanges)
	return args.Get(0).([]byte), args.Error(1)
}

// MockObjectStorage mocks the ObjectStorage interface
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockLinkParser mocks the LinkParser interface
type MockLinkParser struct {
	mock.Mock
}

func (m *MockLinkParser) Parse(ctx context.Context, url string) model.LinkMetadata {
	args := m.Called(ctx, url)
	return args.Get(0).(model.LinkMetadata)
}
