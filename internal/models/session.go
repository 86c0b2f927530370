package model

import (
	"database/sql"
	"time"
)

// SessionStatus cycle de vie d'une session sportive
type SessionStatus string

const (
	SessionOpen      SessionStatus = "open"
	SessionFull      SessionStatus = "full"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// SportSession est une session de sport créée par un utilisateur
type SportSession struct {
	ID           string         `json:"id"`
	CreatorID    string         `json:"creatorId"`
	Sport        string         `json:"sport"` // futbol, basketbol, tenis, voleybol, kosu...
	Title        string         `json:"title"`
	Description  sql.NullString `json:"description,omitempty"`
	SessionDate  time.Time      `json:"sessionDate"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	LocationText string         `json:"locationText"`
	City         string         `json:"city"`
	Capacity     int            `json:"capacity"`
	SkillLevel   SkillLevel     `json:"skillLevel"`
	Status       SessionStatus  `json:"status"`

	// Champs joints
	ParticipantCount int          `json:"participantCount"`
	Creator          *UserCreator `json:"creator,omitempty"`

	AuditFields
}

// JoinStatus état d'une demande de participation
type JoinStatus string

const (
	JoinPending  JoinStatus = "pending"
	JoinApproved JoinStatus = "approved"
	JoinRejected JoinStatus = "rejected"
)

// JoinRequest demande de participation à une session
type JoinRequest struct {
	ID        string     `json:"id"`
	SessionID string     `json:"sessionId"`
	UserID    string     `json:"userId"`
	Status    JoinStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// Champs joints
	UserName   string `json:"userName,omitempty"`
	UserAvatar string `json:"userAvatar,omitempty"`
}

// SessionMatch session recommandée avec son score de pertinence
type SessionMatch struct {
	Session SportSession `json:"session"`
	Score   float64      `json:"score"`
}
