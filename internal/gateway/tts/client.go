// Package tts renders generated dialogues as a single MP3 stream via the
// Cloud Text-to-Speech API.
package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/texttospeech/v1"

	"github.com/memolish/memolish-server/internal/config"
	"github.com/memolish/memolish-server/internal/logger"
	"github.com/memolish/memolish-server/internal/model"
)

// Internal adapter interface to enable mocking without real API calls.
type speechAPI interface {
	Synthesize(ctx context.Context, req *texttospeech.SynthesizeSpeechRequest) (*texttospeech.SynthesizeSpeechResponse, error)
}

type speechServiceWrapper struct{ s *texttospeech.Service }

func (w speechServiceWrapper) Synthesize(ctx context.Context, req *texttospeech.SynthesizeSpeechRequest) (*texttospeech.SynthesizeSpeechResponse, error) {
	return w.s.Text.Synthesize(req).Context(ctx).Do()
}

var _ model.Synthesizer = (*Client)(nil)

type Client struct {
	cfg    config.Speech
	logger *logger.Logger

	initOnce sync.Once
	api      speechAPI
	initErr  error
}

// NewClient creates a synthesis gateway. Credentials are validated on first
// call so a missing key surfaces as a distinguishable error during request
// handling.
func NewClient(cfg config.Speech, logger *logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
	}
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(cfg config.Speech, api speechAPI, logger *logger.Logger) *Client {
	c := NewClient(cfg, logger)
	c.initOnce.Do(func() { c.api = api })
	return c
}

func (c *Client) init(ctx context.Context) error {
	c.initOnce.Do(func() {
		if c.cfg.APIKey == "" {
			c.initErr = fmt.Errorf("%w: TTS_API_KEY is not set", model.ErrUnavailable)
			return
		}
		svc, err := texttospeech.NewService(ctx, option.WithAPIKey(c.cfg.APIKey))
		if err != nil {
			c.initErr = fmt.Errorf("%w: failed to create text-to-speech client", model.ErrUnavailable)
			return
		}
		c.api = speechServiceWrapper{s: svc}
	})
	return c.initErr
}

// Synthesize renders each non-empty line with its speaker's voice and
// concatenates the MP3 segments in exchange order. Segment boundaries are
// implicit; there is no cross-fade or timing metadata. Any single segment
// failure aborts the whole synthesis.
func (c *Client) Synthesize(ctx context.Context, exchanges []model.Exchange) ([]byte, error) {
	if err := c.init(ctx); err != nil {
		return nil, err
	}

	var combined bytes.Buffer
	segments := 0
	for _, exchange := range exchanges {
		if exchange.Line == "" {
			continue
		}

		req := &texttospeech.SynthesizeSpeechRequest{
			Input: &texttospeech.SynthesisInput{Text: exchange.Line},
			Voice: c.voiceFor(exchange.Speaker),
			AudioConfig: &texttospeech.AudioConfig{
				AudioEncoding: "MP3",
				SpeakingRate:  c.cfg.SpeakingRate,
			},
		}

		resp, err := c.api.Synthesize(ctx, req)
		if err != nil {
			c.logger.Error("synthesis call failed", "error", err)
			return nil, fmt.Errorf("%w: synthesis call failed", model.ErrUpstream)
		}

		segment, err := base64.StdEncoding.DecodeString(resp.AudioContent)
		if err != nil {
			c.logger.Error("synthesis response undecodable", "error", err)
			return nil, fmt.Errorf("%w: synthesis returned undecodable audio", model.ErrUpstream)
		}

		combined.Write(segment)
		segments++
	}

	c.logger.Info("synthesis complete", "segments", segments, "bytes", combined.Len())

	return combined.Bytes(), nil
}

// Speaker A and B map to two fixed voices, opposite genders, one rate.
// Unknown speakers fall back to A's voice.
func (c *Client) voiceFor(speaker string) *texttospeech.VoiceSelectionParams {
	if speaker == "B" {
		return &texttospeech.VoiceSelectionParams{
			LanguageCode: "en-US",
			Name:         c.cfg.VoiceB,
			SsmlGender:   "MALE",
		}
	}
	return &texttospeech.VoiceSelectionParams{
		LanguageCode: "en-US",
		Name:         c.cfg.VoiceA,
		SsmlGender:   "FEMALE",
	}
}
