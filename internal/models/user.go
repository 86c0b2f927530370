package model

import (
	"time"
)

// AuditFields contient les champs d'audit standard pour toutes les entités
type AuditFields struct {
	CreatedBy *string   `json:"createdBy,omitempty"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
	DeletedAt time.Time `json:"deletedAt,omitempty"`
	DeletedBy *string   `json:"deletedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// SkillLevel niveau déclaré par l'utilisateur (aussi utilisé sur les sessions)
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

type UserProfile struct {
	ID             string     `json:"id,omitempty"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Avatar         string     `json:"avatar,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	City           string     `json:"city,omitempty"`
	FavoriteSports []string   `json:"favoriteSports,omitempty"`
	SkillLevel     SkillLevel `json:"skillLevel,omitempty"`
	Provider       string     `json:"provider,omitempty"` // email, google, apple
	PushToken      string     `json:"-"`
	JoinDate       time.Time  `json:"joinDate,omitempty"`

	// Statistiques d'évaluation, recalculées à chaque insertion de rating
	AverageRating        float64 `json:"averageRating"`
	TotalRatings         int     `json:"totalRatings"`
	PositiveReviewsCount int     `json:"positiveReviewsCount"`

	AuditFields
}

// UserCreator contient les informations de l'utilisateur créateur d'une entité
type UserCreator struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// RatingStats projection dénormalisée des stats d'évaluation d'un profil
type RatingStats struct {
	AverageRating        float64 `json:"averageRating"`
	TotalRatings         int     `json:"totalRatings"`
	PositiveReviewsCount int     `json:"positiveReviewsCount"`
}
