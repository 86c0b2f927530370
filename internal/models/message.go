package model

import (
	"database/sql"
	"time"
)

// Message message de chat rattaché à une session sportive
type Message struct {
	ID        string         `json:"id"`
	SessionID string         `json:"sessionId"`
	SenderID  string         `json:"senderId"`
	Content   string         `json:"content"`
	ImageURL  sql.NullString `json:"imageUrl,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`

	// Champs joints
	SenderName   string `json:"senderName,omitempty"`
	SenderAvatar string `json:"senderAvatar,omitempty"`
}
