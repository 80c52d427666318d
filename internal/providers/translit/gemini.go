package translit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scriptbridge/internal/domain"
)

type GeminiOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiConverter calls the Gemini generateContent API with a per-pair system
// instruction. It performs no retries and no caching; a single upstream
// failure is surfaced to the caller as domain.ErrUpstream.
type GeminiConverter struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

const (
	geminiDefaultTimeout = 15 * time.Second
	geminiDefaultModel   = "gemini-2.0-flash-exp"

	// Deterministic-leaning sampling with a bounded output ceiling, matching
	// the transliteration task: the output should track the input closely.
	geminiTemperature     = 0.3
	geminiMaxOutputTokens = 2048
)

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func NewGeminiConverter(opts GeminiOptions) *GeminiConverter {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = geminiDefaultModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: geminiDefaultTimeout}
	}
	return &GeminiConverter{
		apiKey:  opts.APIKey,
		model:   model,
		baseURL: baseURL,
		client:  client,
	}
}

// Convert sends a single-turn prompt built from the pair's system instruction
// and the literal user text. An empty API key fails before any outbound call.
func (g *GeminiConverter) Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error) {
	if g.apiKey == "" {
		return nil, domain.ErrConfiguration
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("text is required: %w", domain.ErrInvalidRequest)
	}

	payload := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{
				Text: req.Pair.Instruction() + "\n\nConvert this text:\n" + req.Text,
			}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     geminiTemperature,
			MaxOutputTokens: geminiMaxOutputTokens,
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call gemini: %w", domain.ErrUpstream)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		// Drop the provider payload; only a generic failure reaches the caller.
		return nil, fmt.Errorf("gemini status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", domain.ErrUpstream)
	}
	return &domain.ConversionResult{ConvertedText: extractText(out)}, nil
}

func (g *GeminiConverter) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, url.PathEscape(g.model))
}

func extractText(resp geminiResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

var _ Converter = (*GeminiConverter)(nil)
