package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francedirectjp-art/astro-medical-system/internal/common/logger"
)

func geminiServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *GeminiClient {
	t.Helper()
	return NewGeminiClient(GeminiConfig{
		BaseURL:         baseURL,
		APIKey:          "test-key",
		Model:           "gemini-1.5-flash",
		Timeout:         5 * time.Second,
		MaxOutputTokens: 1024,
		Temperature:     0.7,
	}, logger.NewTestLogger(t))
}

func TestGeminiGenerateSuccess(t *testing.T) {
	var gotPath string
	var gotBody geminiRequest

	srv := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"生成されたテキスト"}]}}]}`))
	})

	client := newTestClient(t, srv.URL)
	text, err := client.Generate(context.Background(), GenerationRequest{
		TemplateID:  "simple_diagnosis",
		Prompt:      "テストプロンプト",
		TargetChars: 1000,
	})

	require.NoError(t, err)
	assert.Equal(t, "生成されたテキスト", text)
	assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", gotPath)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "テストプロンプト", gotBody.Contents[0].Parts[0].Text)
	assert.Equal(t, 1024, gotBody.GenerationConfig.MaxOutputTokens)
}

func TestGeminiGenerateJoinsParts(t *testing.T) {
	srv := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"前半"},{"text":"後半"}]}}]}`))
	})

	client := newTestClient(t, srv.URL)
	text, err := client.Generate(context.Background(), GenerationRequest{Prompt: "p"})

	require.NoError(t, err)
	assert.Equal(t, "前半後半", text)
}

func TestGeminiGenerateServerError(t *testing.T) {
	srv := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := newTestClient(t, srv.URL)
	_, err := client.Generate(context.Background(), GenerationRequest{Prompt: "p"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGeminiGenerateAPIError(t *testing.T) {
	srv := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	})

	client := newTestClient(t, srv.URL)
	_, err := client.Generate(context.Background(), GenerationRequest{Prompt: "p"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGeminiGenerateEmptyCandidates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no candidates", `{"candidates":[]}`},
		{"no parts", `{"candidates":[{"content":{"parts":[]}}]}`},
		{"blank text", `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			client := newTestClient(t, srv.URL)
			_, err := client.Generate(context.Background(), GenerationRequest{Prompt: "p"})
			assert.ErrorIs(t, err, ErrGenerationFailed)
		})
	}
}

func TestGeminiGenerateTimeout(t *testing.T) {
	srv := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"遅い"}]}}]}`))
	})

	client := newTestClient(t, srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, GenerationRequest{Prompt: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationTimeout)
}
