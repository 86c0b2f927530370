package model

import (
	"time"
)

// FriendshipStatus état d'une relation entre deux utilisateurs
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipBlocked  FriendshipStatus = "blocked"
	FriendshipNone     FriendshipStatus = "none"
)

// Friendship relation entre deux utilisateurs.
// requester est toujours celui qui a initié la demande (ou le blocage).
type Friendship struct {
	ID          string           `json:"id"`
	RequesterID string           `json:"requesterId"`
	AddresseeID string           `json:"addresseeId"`
	Status      FriendshipStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// FriendInfo ami avec les infos de profil jointes
type FriendInfo struct {
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	Avatar        string    `json:"avatar,omitempty"`
	City          string    `json:"city,omitempty"`
	AverageRating float64   `json:"averageRating"`
	FriendsSince  time.Time `json:"friendsSince"`
}

// UserReport signalement d'un utilisateur par un autre
type UserReport struct {
	ID         string    `json:"id"`
	ReporterID string    `json:"reporterId"`
	ReportedID string    `json:"reportedId"`
	Reason     string    `json:"reason"`
	Details    string    `json:"details,omitempty"`
	Status     string    `json:"status"` // pending, reviewed, dismissed
	CreatedAt  time.Time `json:"createdAt"`
}
