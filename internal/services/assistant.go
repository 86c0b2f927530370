package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/config"
)

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

// AssistantService génère de courts textes personnalisés de notification
// via l'API OpenAI. Optionnel: si la clé est absente, les appelants
// retombent sur des textes statiques.
type AssistantService struct {
	apiKey string
	client *http.Client
}

func NewAssistantService(cfg *config.Config) *AssistantService {
	return &AssistantService{
		apiKey: cfg.OpenAIAPIKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled indique si la clé API est configurée
func (s *AssistantService) Enabled() bool {
	return s.apiKey != ""
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NotificationText génère une phrase courte et amicale en turc pour
// une notification (ex: rappel de session, nouveau succès)
func (s *AssistantService) NotificationText(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("openai configuration is missing")
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model: "gpt-4o-mini",
		Messages: []chatMessage{
			{Role: "system", Content: "Kısa, samimi, tek cümlelik bir bildirim metni yaz. Emoji kullanabilirsin."},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 60,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIChatURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai returned status %d", resp.StatusCode)
	}

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
