package utils

import (
	"context"
	"database/sql"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/database"
	model "github.com/canakboyraz/sport-buddy-app-sub000/internal/models"
	"github.com/lib/pq"
)

const profileColumns = `id, name, email, avatar, bio, city, favorite_sports, skill_level, provider,
	 average_rating, total_ratings, positive_reviews_count, join_date, created_at, updated_at`

// FindUserByEmail recherche un utilisateur par son email
func FindUserByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	row := database.DB.QueryRow(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles WHERE email=$1 AND deleted_at IS NULL`,
		email,
	)
	return scanProfile(row)
}

// FindUserByID recherche un utilisateur par son id
func FindUserByID(ctx context.Context, userID string) (*model.UserProfile, error) {
	row := database.DB.QueryRow(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles WHERE id=$1 AND deleted_at IS NULL`,
		userID,
	)
	return scanProfile(row)
}

// FindUserByEmailWithPassword retourne aussi le hash du mot de passe
func FindUserByEmailWithPassword(ctx context.Context, email string) (*model.UserProfile, string, error) {
	var passwordHash string
	var user model.UserProfile
	var avatar, bio, city, skillLevel, provider sql.NullString
	var sports []string

	err := database.DB.QueryRow(ctx,
		`SELECT id, name, email, avatar, bio, city, favorite_sports, skill_level, provider,
		 average_rating, total_ratings, positive_reviews_count, join_date, created_at, updated_at, password_hash
		 FROM profiles WHERE email=$1 AND deleted_at IS NULL`,
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &avatar, &bio, &city,
		pq.Array(&sports), &skillLevel, &provider,
		&user.AverageRating, &user.TotalRatings, &user.PositiveReviewsCount,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt, &passwordHash)

	if err != nil {
		return nil, "", err
	}

	user.Avatar = NullStringToString(avatar)
	user.Bio = NullStringToString(bio)
	user.City = NullStringToString(city)
	user.SkillLevel = model.SkillLevel(NullStringToString(skillLevel))
	user.Provider = NullStringToString(provider)
	user.FavoriteSports = sports

	return &user, passwordHash, nil
}

// CreateUser crée un nouvel utilisateur
func CreateUser(ctx context.Context, name, email, passwordHash, provider string) (*model.UserProfile, error) {
	var user model.UserProfile
	err := database.DB.QueryRow(ctx,
		`INSERT INTO profiles(name, email, password_hash, provider, average_rating, total_ratings, positive_reviews_count, join_date, created_at, updated_at)
		 VALUES($1, $2, $3, $4, 0, 0, 0, NOW(), NOW(), NOW())
		 RETURNING id, name, email, join_date, created_at, updated_at`,
		name, email, passwordHash, provider,
	).Scan(&user.ID, &user.Name, &user.Email, &user.JoinDate, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, err
	}

	_, _ = database.DB.Exec(ctx, `UPDATE profiles SET created_by=$1 WHERE id=$1`, user.ID)

	user.Provider = provider
	return &user, nil
}

func scanProfile(row interface {
	Scan(dest ...interface{}) error
}) (*model.UserProfile, error) {
	var user model.UserProfile
	var avatar, bio, city, skillLevel, provider sql.NullString
	var sports []string

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &avatar, &bio, &city,
		pq.Array(&sports), &skillLevel, &provider,
		&user.AverageRating, &user.TotalRatings, &user.PositiveReviewsCount,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Avatar = NullStringToString(avatar)
	user.Bio = NullStringToString(bio)
	user.City = NullStringToString(city)
	user.SkillLevel = model.SkillLevel(NullStringToString(skillLevel))
	user.Provider = NullStringToString(provider)
	if user.Provider == "" {
		user.Provider = "email"
	}
	user.FavoriteSports = sports

	return &user, nil
}
