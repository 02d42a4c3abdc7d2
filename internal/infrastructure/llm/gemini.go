package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ayursathi-api/config"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

// generator is the part of the genai client the gateway calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiGateway calls the Gemini API through the official genai client.
type GeminiGateway struct {
	models  generator
	model   string
	timeout time.Duration
}

func NewGeminiGateway(ctx context.Context, cfg config.LLMConfig) (*GeminiGateway, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return newGeminiGateway(cli.Models, cfg.Model, cfg.Timeout), nil
}

func newGeminiGateway(models generator, model string, timeout time.Duration) *GeminiGateway {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiGateway{models: models, model: model, timeout: timeout}
}

func (g *GeminiGateway) Invoke(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", ErrModelEmptyResponse
	}
	return text, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range c.Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
