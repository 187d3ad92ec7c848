package minio

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMinioAPI mocks the minioAPI interface
type MockMinioAPI struct {
	mock.Mock
}

func (m *MockMinioAPI) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockMinioAPI) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucketName, opts)
	return args.Error(0)
}

func (m *MockMinioAPI) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *MockMinioAPI) PresignedGetObject(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error) {
	args := m.Called(ctx, bucketName, objectName, expiry, reqParams)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*url.URL), args.Error(1)
}

func (m *MockMinioAPI) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Error(0)
}

func (m *MockMinioAPI) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func newTestClient(t *testing.T, api *MockMinioAPI) *Client {
	t.Helper()
	api.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil).Once()

	client, err := NewClientWithAPI(context.Background(), api, "test-bucket")
	require.NoError(t, err)

	return client
}

func TestNewClientWithAPI(t *testing.T) {
	t.Run("creates missing bucket", func(t *testing.T) {
		api := new(MockMinioAPI)
		api.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
		api.On("MakeBucket", mock.Anything, "test-bucket", minio.MakeBucketOptions{}).Return(nil)

		_, err := NewClientWithAPI(context.Background(), api, "test-bucket")
		require.NoError(t, err)
		api.AssertExpectations(t)
	})

	t.Run("existing bucket not recreated", func(t *testing.T) {
		api := new(MockMinioAPI)
		api.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)

		_, err := NewClientWithAPI(context.Background(), api, "test-bucket")
		require.NoError(t, err)
		api.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bucket check failure", func(t *testing.T) {
		api := new(MockMinioAPI)
		api.On("BucketExists", mock.Anything, "test-bucket").Return(false, errors.New("connection refused"))

		_, err := NewClientWithAPI(context.Background(), api, "test-bucket")
		require.Error(t, err)
	})
}

func TestClient_Upload(t *testing.T) {
	api := new(MockMinioAPI)
	client := newTestClient(t, api)

	reader := strings.NewReader("mp3-bytes")
	api.On("PutObject", mock.Anything, "test-bucket", "audio/s/1.mp3", reader, int64(9),
		minio.PutObjectOptions{ContentType: "audio/mpeg"}).Return(minio.UploadInfo{}, nil)

	err := client.Upload(context.Background(), "audio/s/1.mp3", reader, 9, "audio/mpeg")
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestClient_PresignedURL(t *testing.T) {
	t.Run("returns url string", func(t *testing.T) {
		api := new(MockMinioAPI)
		client := newTestClient(t, api)

		signed, err := url.Parse("https://storage.local/test-bucket/audio/s/1.mp3?X-Amz-Signature=abc")
		require.NoError(t, err)
		api.On("PresignedGetObject", mock.Anything, "test-bucket", "audio/s/1.mp3", time.Hour, url.Values{}).
			Return(signed, nil)

		got, err := client.PresignedURL(context.Background(), "audio/s/1.mp3", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, signed.String(), got)
	})

	t.Run("presign failure", func(t *testing.T) {
		api := new(MockMinioAPI)
		client := newTestClient(t, api)

		api.On("PresignedGetObject", mock.Anything, "test-bucket", "missing.mp3", time.Hour, url.Values{}).
			Return(nil, errors.New("signing failed"))

		_, err := client.PresignedURL(context.Background(), "missing.mp3", time.Hour)
		require.Error(t, err)
	})
}

func TestClient_Delete(t *testing.T) {
	api := new(MockMinioAPI)
	client := newTestClient(t, api)

	api.On("RemoveObject", mock.Anything, "test-bucket", "audio/s/1.mp3", minio.RemoveObjectOptions{}).Return(nil)

	err := client.Delete(context.Background(), "audio/s/1.mp3")
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestClient_Exists(t *testing.T) {
	t.Run("object exists", func(t *testing.T) {
		api := new(MockMinioAPI)
		client := newTestClient(t, api)

		api.On("StatObject", mock.Anything, "test-bucket", "audio/s/1.mp3", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{Key: "audio/s/1.mp3"}, nil)

		exists, err := client.Exists(context.Background(), "audio/s/1.mp3")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("missing object is not an error", func(t *testing.T) {
		api := new(MockMinioAPI)
		client := newTestClient(t, api)

		notFound := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
		api.On("StatObject", mock.Anything, "test-bucket", "gone.mp3", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{}, notFound)

		exists, err := client.Exists(context.Background(), "gone.mp3")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("other stat errors propagate", func(t *testing.T) {
		api := new(MockMinioAPI)
		client := newTestClient(t, api)

		api.On("StatObject", mock.Anything, "test-bucket", "audio/s/1.mp3", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{}, errors.New("connection reset"))

		_, err := client.Exists(context.Background(), "audio/s/1.mp3")
		require.Error(t, err)
	})
}
