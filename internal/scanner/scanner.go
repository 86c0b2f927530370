package scanner

import (
	"database/sql"

	model "github.com/canakboyraz/sport-buddy-app-sub000/internal/models"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/utils"
	"github.com/lib/pq"
)

// RowScanner abstrait pgx.Row et pgx.Rows
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanUserProfile scanne une ligne SQL vers un UserProfile.
// Ordre des colonnes attendu:
// id, name, email, avatar, bio, city, favorite_sports, skill_level, provider,
// average_rating, total_ratings, positive_reviews_count, join_date, created_at, updated_at
func ScanUserProfile(row RowScanner) (*model.UserProfile, error) {
	var user model.UserProfile
	var avatar, bio, city, skillLevel, provider sql.NullString
	var avgRating sql.NullFloat64
	var totalRatings, positiveReviews sql.NullInt64
	var sports []string

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &avatar, &bio, &city,
		pq.Array(&sports), &skillLevel, &provider,
		&avgRating, &totalRatings, &positiveReviews,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Avatar = utils.NullStringToString(avatar)
	user.Bio = utils.NullStringToString(bio)
	user.City = utils.NullStringToString(city)
	user.SkillLevel = model.SkillLevel(utils.NullStringToString(skillLevel))
	user.Provider = utils.NullStringToString(provider)
	if user.Provider == "" {
		user.Provider = "email"
	}
	user.FavoriteSports = sports
	user.AverageRating = utils.NullFloat64ToFloat64(avgRating)
	user.TotalRatings = utils.NullInt64ToInt(totalRatings)
	user.PositiveReviewsCount = utils.NullInt64ToInt(positiveReviews)

	return &user, nil
}

// ScanSportSession scanne une ligne SQL vers une SportSession.
// Ordre des colonnes attendu:
// id, creator_id, sport, title, description, session_date, latitude, longitude,
// location_text, city, capacity, skill_level, status, participant_count,
// created_at, updated_at
func ScanSportSession(row RowScanner) (*model.SportSession, error) {
	var s model.SportSession
	var skillLevel sql.NullString

	err := row.Scan(
		&s.ID, &s.CreatorID, &s.Sport, &s.Title, &s.Description,
		&s.SessionDate, &s.Latitude, &s.Longitude,
		&s.LocationText, &s.City, &s.Capacity, &skillLevel, &s.Status,
		&s.ParticipantCount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.SkillLevel = model.SkillLevel(utils.NullStringToString(skillLevel))

	return &s, nil
}

// ScanRating scanne une ligne SQL vers un Rating avec le profil de l'évaluateur joint.
// Ordre des colonnes attendu:
// id, session_id, rater_id, rated_id, rating, comment, is_positive, created_at,
// rater_name, rater_avatar
func ScanRating(row RowScanner) (*model.Rating, error) {
	var rt model.Rating
	var raterName, raterAvatar sql.NullString

	err := row.Scan(
		&rt.ID, &rt.SessionID, &rt.RaterID, &rt.RatedID,
		&rt.Rating, &rt.Comment, &rt.IsPositive, &rt.CreatedAt,
		&raterName, &raterAvatar,
	)
	if err != nil {
		return nil, err
	}

	rt.RaterName = utils.NullStringToString(raterName)
	rt.RaterAvatar = utils.NullStringToString(raterAvatar)

	return &rt, nil
}
