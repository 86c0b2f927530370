package utils

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/database"
	model "github.com/canakboyraz/sport-buddy-app-sub000/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// RatingCooldown délai d'attente après l'heure de début de la session
// avant de pouvoir évaluer. Mesuré depuis l'heure PLANIFIÉE, pas la fin
// réelle (non suivie). Voir DESIGN.md.
const RatingCooldown = time.Hour

// Messages utilisateur (l'app est turque)
const (
	MsgAlreadyRated    = "Bu kullanıcıyı bu seans için zaten değerlendirdiniz"
	MsgSessionNotFound = "Seans bulunamadı"
	MsgTooEarlyToRate  = "Değerlendirme yapabilmek için seans başlangıcından en az 1 saat geçmelidir"
	MsgInvalidRating   = "Puan 1 ile 5 arasında olmalıdır"
	MsgRatingFailed    = "Değerlendirme kaydedilemedi"
)

// RatingEligibility applique la règle d'une heure après le début de séance.
// Fonction pure: hoursRemaining = ceil(1 - hoursSince), toujours >= 1
// quand le refus s'applique.
func RatingEligibility(sessionDate, now time.Time) model.EligibilityResult {
	hoursSince := now.Sub(sessionDate).Hours()

	if hoursSince < RatingCooldown.Hours() {
		remaining := int(math.Ceil(RatingCooldown.Hours() - hoursSince))
		return model.EligibilityResult{
			CanRate:        false,
			Reason:         MsgTooEarlyToRate,
			HoursRemaining: &remaining,
		}
	}

	return model.EligibilityResult{CanRate: true}
}

// CanRateSession vérifie l'éligibilité d'évaluation pour une session donnée
func CanRateSession(ctx context.Context, sessionID string) (model.EligibilityResult, error) {
	var sessionDate time.Time
	err := database.DB.QueryRow(ctx,
		`SELECT session_date FROM sport_sessions WHERE id=$1 AND deleted_at IS NULL`,
		sessionID,
	).Scan(&sessionDate)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.EligibilityResult{CanRate: false, Reason: MsgSessionNotFound}, nil
		}
		return model.EligibilityResult{}, err
	}

	return RatingEligibility(sessionDate, time.Now()), nil
}

// HasRated vérifie si un rating existe déjà pour le triple (session, rater, rated).
// Pré-contrôle optimiste seulement: la contrainte unique en base fait foi.
func HasRated(ctx context.Context, sessionID, raterID, ratedID string) (bool, error) {
	var exists bool
	err := database.DB.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM ratings
			WHERE session_id=$1 AND rater_id=$2 AND rated_id=$3
		)`,
		sessionID, raterID, ratedID,
	).Scan(&exists)

	return exists, err
}

// SubmitResult résultat d'une soumission d'évaluation
type SubmitResult struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Rating  *model.Rating `json:"rating,omitempty"`
}

// SubmitRating soumet une évaluation: éligibilité, pré-contrôle de doublon,
// insertion puis recalcul des stats du profil évalué dans la même transaction.
// La violation de la contrainte unique (23505) est le signal de doublon
// faisant autorité; le pré-contrôle n'est qu'une optimisation UI.
func SubmitRating(ctx context.Context, raterID string, input model.SubmitRatingInput) (SubmitResult, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return SubmitResult{Error: MsgInvalidRating}, nil
	}

	eligibility, err := CanRateSession(ctx, input.SessionID)
	if err != nil {
		return SubmitResult{}, err
	}
	if !eligibility.CanRate {
		return SubmitResult{Error: eligibility.Reason}, nil
	}

	alreadyRated, err := HasRated(ctx, input.SessionID, raterID, input.RatedID)
	if err != nil {
		return SubmitResult{}, err
	}
	if alreadyRated {
		return SubmitResult{Error: MsgAlreadyRated}, nil
	}

	// is_positive dérivé si absent: note >= 4
	isPositive := input.Rating >= model.PositiveRatingThreshold
	if input.IsPositive != nil {
		isPositive = *input.IsPositive
	}

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return SubmitResult{}, err
	}
	defer tx.Rollback(ctx)

	var rating model.Rating
	err = tx.QueryRow(ctx,
		`INSERT INTO ratings(session_id, rater_id, rated_id, rating, comment, is_positive, created_at)
		 VALUES($1, $2, $3, $4, NULLIF($5, ''), $6, NOW())
		 RETURNING id, session_id, rater_id, rated_id, rating, comment, is_positive, created_at`,
		input.SessionID, raterID, input.RatedID, input.Rating, input.Comment, isPositive,
	).Scan(&rating.ID, &rating.SessionID, &rating.RaterID, &rating.RatedID,
		&rating.Rating, &rating.Comment, &rating.IsPositive, &rating.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// deux soumissions concurrentes ont pu passer le pré-contrôle
			return SubmitResult{Error: MsgAlreadyRated}, nil
		}
		return SubmitResult{}, err
	}

	// Recalcul des stats dénormalisées du profil évalué
	if err := recomputeRatingStats(ctx, tx, input.RatedID); err != nil {
		return SubmitResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return SubmitResult{}, err
	}

	return SubmitResult{Success: true, Rating: &rating}, nil
}

func recomputeRatingStats(ctx context.Context, tx pgx.Tx, ratedID string) error {
	_, err := tx.Exec(ctx,
		`UPDATE profiles p SET
			average_rating = COALESCE(s.avg_rating, 0),
			total_ratings = s.total,
			positive_reviews_count = s.positives,
			updated_at = NOW()
		 FROM (
			SELECT
				AVG(rating)::float AS avg_rating,
				COUNT(*) AS total,
				COUNT(*) FILTER (WHERE is_positive) AS positives
			FROM ratings WHERE rated_id=$1
		 ) s
		 WHERE p.id=$1`,
		ratedID,
	)
	if err != nil {
		return fmt.Errorf("could not recompute rating stats: %w", err)
	}
	return nil
}
