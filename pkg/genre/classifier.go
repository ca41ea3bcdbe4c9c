package genre

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// LLMClassifier infers a genre bucket for a track with no genre metadata
// by asking a chat-completion model, the way a human crate-digger would
// guess from the artist/title/album alone.
type LLMClassifier struct {
	apiKey string
	model  string
	log    *zap.Logger
	http   *http.Client
}

// NewLLMClassifier builds a Classifier backed by an OpenAI-compatible
// chat completions endpoint. apiKey is not validated: an empty key is
// sent as-is in the Authorization header.
func NewLLMClassifier(apiKey, model string, log *zap.Logger) *LLMClassifier {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &LLMClassifier{
		apiKey: apiKey,
		model:  model,
		log:    log,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *LLMClassifier) ClassifyGenre(ctx context.Context, artist, title, album string) (string, error) {
	prompt := fmt.Sprintf(`Classify the genre for this song. Return a single general genre category.

Artist: %s
Title: %s
Album: %s

Choose from: rock, pop, electronic, hip-hop, jazz, classical, metal, country, r&b, folk, blues, reggae, latin, world, soundtrack, other

Return only the genre name, nothing else.`, artist, title, album)

	response, err := c.callChatCompletion(ctx, prompt)
	if err != nil {
		return "", err
	}

	genre := strings.TrimSpace(response)
	genre = strings.Trim(genre, "\"'")
	genre = strings.ToLower(genre)
	return genre, nil
}

func (c *LLMClassifier) callChatCompletion(ctx context.Context, prompt string) (string, error) {
	url := "https://api.openai.com/v1/chat/completions"

	payload := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.2,
		"max_tokens":  20,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("classifier API error: %d - %s", resp.StatusCode, string(b))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("invalid response: no choices")
	}
	return result.Choices[0].Message.Content, nil
}
