package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/francedirectjp-art/astro-medical-system/internal/common/logger"
)

var (
	// ErrGenerationTimeout indicates the text service did not answer in time.
	ErrGenerationTimeout = errors.New("text generation timed out")
	// ErrGenerationFailed indicates the text service answered with an error
	// or an unusable body.
	ErrGenerationFailed = errors.New("text generation failed")
)

// GenerationRequest is one prose-generation call.
type GenerationRequest struct {
	TemplateID  string
	Prompt      string
	TargetChars int
}

// Generator produces prose from a prompt. Implementations make exactly one
// attempt per call; retry and fallback policy live in the Assembler.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// GeminiConfig holds the connection settings for the Gemini REST API.
type GeminiConfig struct {
	BaseURL         string
	APIKey          string
	Model           string
	Timeout         time.Duration
	MaxOutputTokens int
	Temperature     float64
}

// GeminiClient calls the Gemini generateContent endpoint.
type GeminiClient struct {
	config GeminiConfig
	client *http.Client
	logger logger.Logger
}

// NewGeminiClient creates a Gemini-backed Generator.
func NewGeminiClient(config GeminiConfig, log logger.Logger) *GeminiClient {
	return &GeminiClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: log,
	}
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate makes a single generateContent call and returns the first
// candidate's text.
func (g *GeminiClient) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: req.Prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			MaxOutputTokens: g.config.MaxOutputTokens,
			Temperature:     g.config.Temperature,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshaling request: %v", ErrGenerationFailed, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimSuffix(g.config.BaseURL, "/"), g.config.Model, g.config.APIKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrGenerationFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrGenerationTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrGenerationFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("text service returned non-200", map[string]interface{}{
			"status":      resp.StatusCode,
			"template_id": req.TemplateID,
		})
		return "", fmt.Errorf("%w: status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrGenerationFailed, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%w: api error %d: %s", ErrGenerationFailed, parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidate list", ErrGenerationFailed)
	}

	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	out := strings.TrimSpace(text.String())
	if out == "" {
		return "", fmt.Errorf("%w: blank candidate text", ErrGenerationFailed)
	}
	return out, nil
}
