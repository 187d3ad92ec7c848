// Package gemini invokes the Generative Language API to turn memo text
// into Korean/English summaries and an A/B practice dialogue.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"

	"github.com/memolish/memolish-server/internal/config"
	"github.com/memolish/memolish-server/internal/logger"
	"github.com/memolish/memolish-server/internal/model"
)

const systemInstruction = `You are an English conversation learning assistant for the Memolish app.

## Your Role
You help Korean users learn practical English by transforming their personal daily memos,
to-dos, and notes into engaging English learning content. The content must be directly
relevant to the user's actual life context — never generic.

## Output Requirements
You MUST return ONLY a valid JSON object — no markdown, no explanation text, no code fences.

{
  "summary_ko": "<string: 2-3 sentence Korean summary>",
  "summary_en": "<string: 2-3 sentence English summary, natural and fluent>",
  "dialogue": {
    "title": "<string: short English title for the dialogue scene>",
    "situation": "<string: 1 sentence in Korean describing the A-B role-play scenario>",
    "exchanges": [
      {"speaker": "A", "line": "<English line>", "korean": "<Korean translation>"},
      {"speaker": "B", "line": "<English line>", "korean": "<Korean translation>"}
    ]
  }
}

## Dialogue Rules
1. Generate 6 to 10 exchanges total (alternating A and B).
2. Use natural, spoken English. Contractions are encouraged.
3. Each line should be 1-2 sentences maximum.
4. ALWAYS return valid JSON only.`

// Internal adapter interface to enable mocking without real API calls.
type generativeAPI interface {
	GenerateContent(ctx context.Context, modelName string, req *generativelanguage.GenerateContentRequest) (*generativelanguage.GenerateContentResponse, error)
}

type generativeServiceWrapper struct{ s *generativelanguage.Service }

func (w generativeServiceWrapper) GenerateContent(ctx context.Context, modelName string, req *generativelanguage.GenerateContentRequest) (*generativelanguage.GenerateContentResponse, error) {
	return w.s.Models.GenerateContent(modelName, req).Context(ctx).Do()
}

var _ model.Generator = (*Client)(nil)

type Client struct {
	cfg    config.Gemini
	logger *logger.Logger

	initOnce sync.Once
	api      generativeAPI
	initErr  error
}

// NewClient creates a generation gateway. Credentials are validated on
// first call, not at construction, so a missing key surfaces as a
// distinguishable error during request handling.
func NewClient(cfg config.Gemini, logger *logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
	}
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(cfg config.Gemini, api generativeAPI, logger *logger.Logger) *Client {
	c := NewClient(cfg, logger)
	c.initOnce.Do(func() { c.api = api })
	return c
}

func (c *Client) init(ctx context.Context) error {
	c.initOnce.Do(func() {
		if c.cfg.APIKey == "" {
			c.initErr = fmt.Errorf("%w: GEMINI_API_KEY is not set", model.ErrUnavailable)
			return
		}
		svc, err := generativelanguage.NewService(ctx, option.WithAPIKey(c.cfg.APIKey))
		if err != nil {
			c.initErr = fmt.Errorf("%w: failed to create generative language client", model.ErrUnavailable)
			return
		}
		c.api = generativeServiceWrapper{s: svc}
	})
	return c.initErr
}

// Generate calls the external model with the fixed instruction contract and
// strictly parses the JSON result. Transport and model-quality failures are
// indistinguishable to the caller: both are ErrUpstream.
func (c *Client) Generate(ctx context.Context, sourceText string) (model.TransformResult, error) {
	if err := c.init(ctx); err != nil {
		return model.TransformResult{}, err
	}

	prompt := fmt.Sprintf(
		"Analyze the memo below and convert it into English learning content. Return only a valid JSON object, no other text.\n\n---\n%s\n---",
		sourceText,
	)

	req := &generativelanguage.GenerateContentRequest{
		SystemInstruction: &generativelanguage.Content{
			Parts: []*generativelanguage.Part{{Text: systemInstruction}},
		},
		Contents: []*generativelanguage.Content{
			{
				Role:  "user",
				Parts: []*generativelanguage.Part{{Text: prompt}},
			},
		},
		GenerationConfig: &generativelanguage.GenerationConfig{
			Temperature:      c.cfg.Temperature,
			ResponseMimeType: "application/json",
			ForceSendFields:  []string{"Temperature"},
		},
	}

	resp, err := c.api.GenerateContent(ctx, "models/"+c.cfg.Model, req)
	if err != nil {
		c.logger.Error("generation call failed", "error", err)
		return model.TransformResult{}, fmt.Errorf("%w: generation call failed", model.ErrUpstream)
	}

	text, err := responseText(resp)
	if err != nil {
		c.logger.Error("generation response unusable", "error", err)
		return model.TransformResult{}, fmt.Errorf("%w: %s", model.ErrUpstream, err)
	}

	result, err := parseResult(text)
	if err != nil {
		c.logger.Error("generation output malformed", "error", err)
		return model.TransformResult{}, fmt.Errorf("%w: %s", model.ErrUpstream, err)
	}

	return result, nil
}

func responseText(resp *generativelanguage.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("response has no candidates")
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", fmt.Errorf("candidate has no content parts")
	}
	return content.Parts[0].Text, nil
}

// parseResult decodes the untrusted model output and verifies the shape the
// instruction contract promises.
func parseResult(raw string) (model.TransformResult, error) {
	var result model.TransformResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return model.TransformResult{}, fmt.Errorf("output is not valid JSON: %s", err)
	}

	if result.SummaryKo == "" || result.SummaryEn == "" {
		return model.TransformResult{}, fmt.Errorf("output is missing summaries")
	}
	if result.Dialogue.Title == "" || result.Dialogue.Situation == "" {
		return model.TransformResult{}, fmt.Errorf("output is missing dialogue title or situation")
	}
	if len(result.Dialogue.Exchanges) == 0 {
		return model.TransformResult{}, fmt.Errorf("output has no dialogue exchanges")
	}
	for i, exchange := range result.Dialogue.Exchanges {
		if exchange.Speaker != "A" && exchange.Speaker != "B" {
			return model.TransformResult{}, fmt.Errorf("exchange %d has unknown speaker %q", i, exchange.Speaker)
		}
		if exchange.Line == "" {
			return model.TransformResult{}, fmt.Errorf("exchange %d has an empty line", i)
		}
	}

	return result, nil
}
