package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	config "github.com/contentdeck/contentdeck/configs"
	"github.com/contentdeck/contentdeck/internal/transfer"
)

// GenerationService asks the completion endpoint for a batch of ready-to-use
// social media posts shaped as a JSON array.
type GenerationService interface {
	GeneratePosts(ctx context.Context, gr *transfer.GenerationRequest) ([]*transfer.GeneratedPost, error)
}

type generationService struct {
	cfg    config.Config
	client *http.Client
}

func NewGenerationService(cfg config.Config) GenerationService {
	return &generationService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (s *generationService) GeneratePosts(ctx context.Context, gr *transfer.GenerationRequest) ([]*transfer.GeneratedPost, error) {
	prompt := buildPrompt(gr)

	reqBody := transfer.GeminiRequest{
		Contents: []transfer.GeminiContent{
			{Parts: []transfer.GeminiPart{{Text: prompt}}},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &GenerationError{Reason: "failed to encode request", Err: err}
	}

	url := fmt.Sprintf("%s?key=%s", s.cfg.Gemini.APIURL, s.cfg.Gemini.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &GenerationError{Reason: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error(err.Error())
		return nil, &GenerationError{Reason: "generation endpoint unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("generation endpoint returned error", "status", resp.StatusCode, "body", string(body))
		return nil, &GenerationError{Reason: fmt.Sprintf("generation endpoint returned status %d", resp.StatusCode)}
	}

	var gemini transfer.GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gemini); err != nil {
		return nil, &GenerationError{Reason: "unreadable response", Err: err}
	}

	if len(gemini.Candidates) == 0 || len(gemini.Candidates[0].Content.Parts) == 0 {
		return nil, &GenerationError{Reason: "empty response"}
	}

	posts, err := parseGeneratedPosts(gemini.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, &GenerationError{Reason: "unparsable generated content", Err: err}
	}
	if len(posts) == 0 {
		return nil, &GenerationError{Reason: "no posts generated"}
	}

	return posts, nil
}

// parseGeneratedPosts accepts the raw candidate text, which may arrive as a
// bare JSON array, a JSON-encoded string containing the array, or an array
// wrapped in markdown code fences.
func parseGeneratedPosts(text string) ([]*transfer.GeneratedPost, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var posts []*transfer.GeneratedPost
	if err := json.Unmarshal([]byte(text), &posts); err == nil {
		return posts, nil
	}

	var encoded string
	if err := json.Unmarshal([]byte(text), &encoded); err != nil {
		return nil, fmt.Errorf("content is neither a JSON array nor a JSON string: %s", truncate(text, 120))
	}
	if err := json.Unmarshal([]byte(encoded), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func buildPrompt(gr *transfer.GenerationRequest) string {
	return fmt.Sprintf(`Generate %d social media posts for "%s" selling "%s" targeting "%s".

Requirements:
- Use formal, professional tone
- Create engaging captions (max 2200 characters)
- Include relevant hashtags (max 280 characters)
- Generate descriptive image prompts
- Return ONLY valid JSON array, no additional text

Required JSON format:
[
  {
    "caption": "string",
    "hashtags": "string",
    "platform": "instagram",
    "imagePrompt": "string"
  }
]

Return only the JSON array with %d posts. No explanations, no markdown, no additional text.`,
		gr.NumberOfPosts, gr.BrandName, gr.ProductDescription, gr.TargetAudience, gr.NumberOfPosts)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
