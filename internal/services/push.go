package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/config"
)

const expoPushURL = "https://exp.host/--/api/v2/push/send"

// PushService envoie des notifications push via l'API Expo
type PushService struct {
	accessToken string
	client      *http.Client
}

func NewPushService(cfg *config.Config) *PushService {
	return &PushService{
		accessToken: cfg.ExpoAccessToken,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type pushMessage struct {
	To    string                 `json:"to"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
	Sound string                 `json:"sound"`
}

// SendPush envoie une notification à un token Expo.
// Best-effort: aucune garantie de livraison, pas de retry.
func (s *PushService) SendPush(ctx context.Context, pushToken, title, body string, data map[string]interface{}) error {
	if pushToken == "" || !strings.HasPrefix(pushToken, "ExponentPushToken") {
		return fmt.Errorf("invalid expo push token")
	}

	payload, err := json.Marshal(pushMessage{
		To:    pushToken,
		Title: title,
		Body:  body,
		Data:  data,
		Sound: "default",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, expoPushURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.accessToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("expo push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("expo push returned status %d", resp.StatusCode)
	}

	return nil
}
