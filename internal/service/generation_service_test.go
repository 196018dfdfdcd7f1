package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	config "github.com/contentdeck/contentdeck/configs"
	"github.com/contentdeck/contentdeck/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiReply(t *testing.T, text string) []byte {
	t.Helper()
	resp := transfer.GeminiResponse{}
	resp.Candidates = append(resp.Candidates, struct {
		Content transfer.GeminiContent `json:"content"`
	}{
		Content: transfer.GeminiContent{
			Parts: []transfer.GeminiPart{{Text: text}},
		},
	})
	body, err := json.Marshal(resp)
	require.NoError(t, err)
	return body
}

func newGenerationServiceForTest(upstream *httptest.Server) GenerationService {
	cfg := config.Config{}
	cfg.Gemini.APIKey = "test-key"
	cfg.Gemini.APIURL = upstream.URL
	return NewGenerationService(cfg)
}

func sampleGenerationRequest() *transfer.GenerationRequest {
	return &transfer.GenerationRequest{
		BrandName:          "Acme",
		ProductDescription: "rockets",
		TargetAudience:     "coyotes",
		NumberOfPosts:      2,
	}
}

func TestGeneratePosts_BareArray(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write(geminiReply(t, `[{"caption":"one","hashtags":"#a","platform":"instagram","imagePrompt":"x"},{"caption":"two"}]`))
	}))
	defer upstream.Close()

	posts, err := newGenerationServiceForTest(upstream).GeneratePosts(context.Background(), sampleGenerationRequest())

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "one", posts[0].Caption)
	assert.Equal(t, "instagram", posts[0].Platform)
}

func TestGeneratePosts_FencedArray(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(geminiReply(t, "```json\n[{\"caption\":\"fenced\"}]\n```"))
	}))
	defer upstream.Close()

	posts, err := newGenerationServiceForTest(upstream).GeneratePosts(context.Background(), sampleGenerationRequest())

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "fenced", posts[0].Caption)
}

func TestGeneratePosts_StringEncodedArray(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		encoded, err := json.Marshal(`[{"caption":"nested"}]`)
		require.NoError(t, err)
		w.Write(geminiReply(t, string(encoded)))
	}))
	defer upstream.Close()

	posts, err := newGenerationServiceForTest(upstream).GeneratePosts(context.Background(), sampleGenerationRequest())

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "nested", posts[0].Caption)
}

func TestGeneratePosts_EmptyCandidates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer upstream.Close()

	_, err := newGenerationServiceForTest(upstream).GeneratePosts(context.Background(), sampleGenerationRequest())

	require.Error(t, err)
	assert.True(t, IsGeneration(err))
}

func TestGeneratePosts_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	_, err := newGenerationServiceForTest(upstream).GeneratePosts(context.Background(), sampleGenerationRequest())

	require.Error(t, err)
	assert.True(t, IsGeneration(err))
}

func TestGeneratePosts_GarbageContent(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(geminiReply(t, "sorry, I cannot help with that"))
	}))
	defer upstream.Close()

	_, err := newGenerationServiceForTest(upstream).GeneratePosts(context.Background(), sampleGenerationRequest())

	require.Error(t, err)
	assert.True(t, IsGeneration(err))
}

func TestParseGeneratedPosts_PlainFence(t *testing.T) {
	posts, err := parseGeneratedPosts("```\n[{\"caption\":\"c\"}]\n```")

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "c", posts[0].Caption)
}
