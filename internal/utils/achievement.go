package utils

import (
	"context"
	"time"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/database"
	model "github.com/canakboyraz/sport-buddy-app-sub000/internal/models"
	"golang.org/x/sync/errgroup"
)

// FetchUserStats récupère les six statistiques agrégées d'un utilisateur.
// Les six requêtes COUNT sont indépendantes et lancées en parallèle.
func FetchUserStats(ctx context.Context, userID string) (model.UserStats, error) {
	var stats model.UserStats

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return database.DB.QueryRow(ctx,
			`SELECT COUNT(*) FROM sport_sessions WHERE creator_id=$1 AND deleted_at IS NULL`,
			userID,
		).Scan(&stats.SessionsCreated)
	})

	g.Go(func() error {
		return database.DB.QueryRow(ctx,
			`SELECT COUNT(*) FROM join_requests WHERE user_id=$1 AND status='approved'`,
			userID,
		).Scan(&stats.SessionsJoined)
	})

	g.Go(func() error {
		return database.DB.QueryRow(ctx,
			`SELECT COUNT(*) FROM ratings WHERE rated_id=$1`,
			userID,
		).Scan(&stats.RatingsReceived)
	})

	g.Go(func() error {
		return database.DB.QueryRow(ctx,
			`SELECT COUNT(*) FROM ratings WHERE rated_id=$1 AND rating=5`,
			userID,
		).Scan(&stats.FiveStarRatings)
	})

	g.Go(func() error {
		return database.DB.QueryRow(ctx,
			`SELECT COUNT(*) FROM messages WHERE sender_id=$1`,
			userID,
		).Scan(&stats.MessagesSent)
	})

	g.Go(func() error {
		var joinDate time.Time
		err := database.DB.QueryRow(ctx,
			`SELECT join_date FROM profiles WHERE id=$1 AND deleted_at IS NULL`,
			userID,
		).Scan(&joinDate)
		if err != nil {
			return err
		}
		stats.DaysMember = int(time.Since(joinDate).Hours() / 24)
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.UserStats{}, err
	}

	return stats, nil
}

// BuildProgress calcule la progression par succès.
// Fonction pure: progress = min(current/requirement, 1),
// earned si le succès est dans l'ensemble débloqué.
func BuildProgress(catalog []model.Achievement, unlocked map[string]time.Time, stats model.UserStats) []model.AchievementProgress {
	progress := make([]model.AchievementProgress, 0, len(catalog))

	for _, achievement := range catalog {
		current := stats.StatFor(achievement.RequirementType)

		ratio := 0.0
		if achievement.RequirementValue > 0 {
			ratio = float64(current) / float64(achievement.RequirementValue)
			if ratio > 1 {
				ratio = 1
			}
		}

		entry := model.AchievementProgress{
			Achievement: achievement,
			Current:     current,
			Progress:    ratio,
		}

		if unlockedAt, ok := unlocked[achievement.ID]; ok {
			entry.Earned = true
			t := unlockedAt
			entry.UnlockedAt = &t
		}

		progress = append(progress, entry)
	}

	return progress
}

// FetchAchievementCatalog récupère le catalogue complet
func FetchAchievementCatalog(ctx context.Context) ([]model.Achievement, error) {
	rows, err := database.DB.Query(ctx,
		`SELECT id, code, name, description, category, requirement_type, requirement_value,
		 points, rarity, icon, color, created_at
		 FROM achievements
		 ORDER BY category, requirement_value`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var catalog []model.Achievement
	for rows.Next() {
		var a model.Achievement
		if err := rows.Scan(
			&a.ID, &a.Code, &a.Name, &a.Description, &a.Category,
			&a.RequirementType, &a.RequirementValue,
			&a.Points, &a.Rarity, &a.Icon, &a.Color, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		catalog = append(catalog, a)
	}

	return catalog, rows.Err()
}

// FetchUnlockedAchievements retourne les ids débloqués avec leur date
func FetchUnlockedAchievements(ctx context.Context, userID string) (map[string]time.Time, error) {
	rows, err := database.DB.Query(ctx,
		`SELECT achievement_id, unlocked_at FROM user_achievements WHERE user_id=$1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	unlocked := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			return nil, err
		}
		unlocked[id] = at
	}

	return unlocked, rows.Err()
}

// CheckAndAwardAchievements débloque tous les succès dont le prérequis est
// atteint. ON CONFLICT DO NOTHING rend l'opération idempotente: un succès
// déjà débloqué n'est jamais réattribué. Retourne les succès nouvellement
// débloqués.
func CheckAndAwardAchievements(ctx context.Context, userID string) ([]model.Achievement, error) {
	catalog, err := FetchAchievementCatalog(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := FetchUserStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	var awarded []model.Achievement
	for _, achievement := range catalog {
		if stats.StatFor(achievement.RequirementType) < achievement.RequirementValue {
			continue
		}

		res, err := database.DB.Exec(ctx,
			`INSERT INTO user_achievements(user_id, achievement_id, unlocked_at)
			 VALUES($1, $2, NOW())
			 ON CONFLICT (user_id, achievement_id) DO NOTHING`,
			userID, achievement.ID,
		)
		if err != nil {
			return nil, err
		}

		if res.RowsAffected() > 0 {
			awarded = append(awarded, achievement)
		}
	}

	return awarded, nil
}
