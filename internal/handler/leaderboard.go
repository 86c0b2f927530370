package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/database"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/middleware"
	model "github.com/canakboyraz/sport-buddy-app-sub000/internal/models"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/utils"
)

// GetLeaderboard classe les utilisateurs par points de succès cumulés.
// Filtre optionnel par ville (?city=).
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 50
	if l, err := strconv.Atoi(query.Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	sqlQuery := `
		WITH scores AS (
			SELECT p.id, p.name, COALESCE(p.avatar, '') AS avatar, COALESCE(p.city, '') AS city,
				p.average_rating,
				COALESCE(SUM(a.points), 0) AS points,
				COUNT(ua.achievement_id) AS achievements_won
			FROM profiles p
			LEFT JOIN user_achievements ua ON ua.user_id = p.id
			LEFT JOIN achievements a ON a.id = ua.achievement_id
			WHERE p.deleted_at IS NULL`
	args := []interface{}{}
	argPos := 1

	if city := query.Get("city"); city != "" {
		sqlQuery += ` AND p.city = $` + strconv.Itoa(argPos)
		args = append(args, city)
		argPos++
	}

	sqlQuery += `
			GROUP BY p.id, p.name, p.avatar, p.city, p.average_rating
		)
		SELECT RANK() OVER (ORDER BY points DESC, achievements_won DESC, name ASC) AS rank,
			id, name, avatar, city, points, achievements_won, average_rating
		FROM scores
		ORDER BY rank
		LIMIT $` + strconv.Itoa(argPos)
	args = append(args, limit)

	rows, err := database.DB.Query(context.Background(), sqlQuery, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query leaderboard", err)
		return
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.Rank, &e.UserID, &e.Name, &e.Avatar, &e.City,
			&e.Points, &e.AchievementsWon, &e.AverageRating); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan leaderboard row", err)
			return
		}
		entries = append(entries, e)
	}

	utils.Success(w, entries)
}

// GetMyRank retourne la position de l'utilisateur connecté dans le
// classement, avec les voisins immédiats (2 au-dessus, 2 en dessous)
func GetMyRank(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	var rank model.UserRank
	rank.UserID = user.ID

	err = database.DB.QueryRow(ctx,
		`WITH scores AS (
			SELECT p.id,
				COALESCE(SUM(a.points), 0) AS points
			FROM profiles p
			LEFT JOIN user_achievements ua ON ua.user_id = p.id
			LEFT JOIN achievements a ON a.id = ua.achievement_id
			WHERE p.deleted_at IS NULL
			GROUP BY p.id
		), ranked AS (
			SELECT id, points,
				RANK() OVER (ORDER BY points DESC) AS rank,
				COUNT(*) OVER () AS total
			FROM scores
		)
		SELECT rank, points, total FROM ranked WHERE id=$1`,
		user.ID,
	).Scan(&rank.Rank, &rank.Points, &rank.TotalUsers)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not compute rank", err)
		return
	}

	rows, err := database.DB.Query(ctx,
		`WITH scores AS (
			SELECT p.id, p.name, COALESCE(p.avatar, '') AS avatar, COALESCE(p.city, '') AS city,
				p.average_rating,
				COALESCE(SUM(a.points), 0) AS points,
				COUNT(ua.achievement_id) AS achievements_won
			FROM profiles p
			LEFT JOIN user_achievements ua ON ua.user_id = p.id
			LEFT JOIN achievements a ON a.id = ua.achievement_id
			WHERE p.deleted_at IS NULL
			GROUP BY p.id, p.name, p.avatar, p.city, p.average_rating
		), ranked AS (
			SELECT RANK() OVER (ORDER BY points DESC, achievements_won DESC, name ASC) AS rank,
				id, name, avatar, city, points, achievements_won, average_rating
			FROM scores
		)
		SELECT rank, id, name, avatar, city, points, achievements_won, average_rating
		FROM ranked
		WHERE rank BETWEEN $1 AND $2
		ORDER BY rank`,
		maxInt(rank.Rank-2, 1), rank.Rank+2,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query nearby ranks", err)
		return
	}
	defer rows.Close()

	nearby := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.Rank, &e.UserID, &e.Name, &e.Avatar, &e.City,
			&e.Points, &e.AchievementsWon, &e.AverageRating); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan leaderboard row", err)
			return
		}
		nearby = append(nearby, e)
	}

	utils.Success(w, map[string]interface{}{
		"rank":   rank,
		"nearby": nearby,
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
