package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/memolish/memolish-server/internal/model"
	"github.com/memolish/memolish-server/internal/testutil"
)

func TestAudio_Generate(t *testing.T) {
	t.Run("audio url returned", func(t *testing.T) {
		service := new(MockAudioService)
		service.On("Generate", mock.Anything, "session-1", int64(5)).
			Return(model.AudioResult{URL: "https://storage/audio.mp3"}, nil)

		h := NewAudio(service, testutil.MakeNoopLogger())
		c, rec := newContext(t, http.MethodPost, "/api/audio/generate/5", "", "session-1")
		withMemoID(c, "5")

		require.NoError(t, h.Generate(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp generateAudioResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "https://storage/audio.mp3", resp.AudioURL)
		assert.False(t, resp.Cached)
	})

	t.Run("stored audio reported as cached", func(t *testing.T) {
		service := new(MockAudioService)
		service.On("Generate", mock.Anything, "session-1", int64(5)).
			Return(model.AudioResult{URL: "https://storage/audio.mp3", Cached: true}, nil)

		h := NewAudio(service, testutil.MakeNoopLogger())
		c, rec := newContext(t, http.MethodPost, "/api/audio/generate/5", "", "session-1")
		withMemoID(c, "5")

		require.NoError(t, h.Generate(c))

		var resp generateAudioResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Cached)
	})

	t.Run("untransformed memo is not found", func(t *testing.T) {
		service := new(MockAudioService)
		service.On("Generate", mock.Anything, "session-1", int64(5)).
			Return(model.AudioResult{}, model.ErrNotFound)

		h := NewAudio(service, testutil.MakeNoopLogger())
		c, rec := newContext(t, http.MethodPost, "/api/audio/generate/5", "", "session-1")
		withMemoID(c, "5")

		require.NoError(t, h.Generate(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAudio_Download(t *testing.T) {
	t.Run("download url with ttl", func(t *testing.T) {
		service := new(MockAudioService)
		service.On("DownloadURL", mock.Anything, "session-1", int64(5)).
			Return("https://storage/download.mp3", 15*time.Minute, nil)

		h := NewAudio(service, testutil.MakeNoopLogger())
		c, rec := newContext(t, http.MethodGet, "/api/audio/download/5", "", "session-1")
		withMemoID(c, "5")

		require.NoError(t, h.Download(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp downloadAudioResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "https://storage/download.mp3", resp.DownloadURL)
		assert.Equal(t, 900, resp.ExpiresInSeconds)
	})

	t.Run("no stored audio is not found", func(t *testing.T) {
		service := new(MockAudioService)
		service.On("DownloadURL", mock.Anything, "session-1", int64(5)).
			Return("", time.Duration(0), model.ErrNotFound)

		h := NewAudio(service, testutil.MakeNoopLogger())
		c, rec := newContext(t, http.MethodGet, "/api/audio/download/5", "", "session-1")
		withMemoID(c, "5")

		require.NoError(t, h.Download(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
