package model

import (
	"time"
)

// AchievementCategory catégories du catalogue de succès
type AchievementCategory string

const (
	CategoryParticipation AchievementCategory = "participation"
	CategorySocial        AchievementCategory = "social"
	CategoryCreation      AchievementCategory = "creation"
	CategorySpecial       AchievementCategory = "special"
)

// AchievementRarity rareté d'un succès
type AchievementRarity string

const (
	RarityCommon    AchievementRarity = "common"
	RarityRare      AchievementRarity = "rare"
	RarityEpic      AchievementRarity = "epic"
	RarityLegendary AchievementRarity = "legendary"
)

// Types de prérequis: chaque succès référence une statistique utilisateur
const (
	RequirementSessionsCreated = "sessions_created"
	RequirementSessionsJoined  = "sessions_joined"
	RequirementRatingsReceived = "ratings_received"
	RequirementFiveStarRatings = "five_star_ratings"
	RequirementMessagesSent    = "messages_sent"
	RequirementDaysMember      = "days_member"
)

// Achievement entrée du catalogue de succès
type Achievement struct {
	ID               string              `json:"id"`
	Code             string              `json:"code"`
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	Category         AchievementCategory `json:"category"`
	RequirementType  string              `json:"requirementType"`
	RequirementValue int                 `json:"requirementValue"`
	Points           int                 `json:"points"`
	Rarity           AchievementRarity   `json:"rarity"`
	Icon             string              `json:"icon"`
	Color            string              `json:"color"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// UserAchievement succès débloqué par un utilisateur
type UserAchievement struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	AchievementID string    `json:"achievementId"`
	UnlockedAt    time.Time `json:"unlockedAt"`
}

// AchievementProgress progression d'un utilisateur vers un succès.
// Dérivé côté serveur, jamais persisté.
type AchievementProgress struct {
	Achievement Achievement `json:"achievement"`
	Current     int         `json:"current"`
	Progress    float64     `json:"progress"` // 0..1
	Earned      bool        `json:"earned"`
	UnlockedAt  *time.Time  `json:"unlockedAt,omitempty"`
}

// UserStats les six statistiques agrégées qui alimentent la progression
type UserStats struct {
	SessionsCreated int `json:"sessionsCreated"`
	SessionsJoined  int `json:"sessionsJoined"`
	RatingsReceived int `json:"ratingsReceived"`
	FiveStarRatings int `json:"fiveStarRatings"`
	MessagesSent    int `json:"messagesSent"`
	DaysMember      int `json:"daysMember"`
}

// StatFor retourne la statistique correspondant à un type de prérequis
func (s UserStats) StatFor(requirementType string) int {
	switch requirementType {
	case RequirementSessionsCreated:
		return s.SessionsCreated
	case RequirementSessionsJoined:
		return s.SessionsJoined
	case RequirementRatingsReceived:
		return s.RatingsReceived
	case RequirementFiveStarRatings:
		return s.FiveStarRatings
	case RequirementMessagesSent:
		return s.MessagesSent
	case RequirementDaysMember:
		return s.DaysMember
	default:
		return 0
	}
}
