package model

import (
	"database/sql"
	"time"
)

// PositiveRatingThreshold un avis est positif à partir de 4/5
const PositiveRatingThreshold = 4

// Rating évaluation d'un joueur par un autre, unique par
// triple (session, évaluateur, évalué)
type Rating struct {
	ID         string         `json:"id"`
	SessionID  string         `json:"sessionId"`
	RaterID    string         `json:"raterId"`
	RatedID    string         `json:"ratedId"`
	Rating     int            `json:"rating"` // 1-5
	Comment    sql.NullString `json:"comment,omitempty"`
	IsPositive bool           `json:"isPositive"`
	CreatedAt  time.Time      `json:"createdAt"`

	// Champs joints (profil de l'évaluateur)
	RaterName   string `json:"raterName,omitempty"`
	RaterAvatar string `json:"raterAvatar,omitempty"`
}

// SubmitRatingInput corps de la requête de soumission d'une évaluation
type SubmitRatingInput struct {
	SessionID  string `json:"sessionId"`
	RatedID    string `json:"ratedId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
	IsPositive *bool  `json:"isPositive,omitempty"`
}

// EligibilityResult résultat du contrôle d'éligibilité d'évaluation
type EligibilityResult struct {
	CanRate        bool   `json:"canRate"`
	Reason         string `json:"reason,omitempty"`
	HoursRemaining *int   `json:"hoursRemaining,omitempty"`
}
