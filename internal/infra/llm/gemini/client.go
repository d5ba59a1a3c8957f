package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// GenerateRequest is a single-turn text generation call.
type GenerateRequest struct {
	Model           string
	Prompt          string
	MaxOutputTokens int
	Temperature     float32
}

// GenerateResponse carries the first candidate's text and token counts.
type GenerateResponse struct {
	Text             string
	PromptTokens     int
	CandidatesTokens int
	TotalTokens      int
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client wraps the Gemini API client.
type Client struct {
	models contentGenerator
}

// NewClient constructs a Gemini client using an API key.
func NewClient(ctx context.Context, apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{models: client.Models}, nil
}

// Generate sends the prompt as one user turn.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	model := req.Model
	if model == "" {
		model = DefaultModel
	}
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(req.MaxOutputTokens),
	}
	result, err := c.models.GenerateContent(ctx, model, genai.Text(req.Prompt), config)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("gemini generate content: %w", err)
	}

	var out GenerateResponse
	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var b strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil {
				b.WriteString(part.Text)
			}
		}
		out.Text = b.String()
	}
	if result != nil && result.UsageMetadata != nil {
		out.PromptTokens = int(result.UsageMetadata.PromptTokenCount)
		out.CandidatesTokens = int(result.UsageMetadata.CandidatesTokenCount)
		out.TotalTokens = int(result.UsageMetadata.TotalTokenCount)
	}
	return out, nil
}
