package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/database"
	"github.com/google/uuid"
)

// AuthSessionDuration durée de validité d'un token (24h)
const AuthSessionDuration = 24 * time.Hour

// CreateAuthSession crée une nouvelle session d'authentification.
// La table s'appelle auth_sessions pour ne pas entrer en collision
// avec les sessions sportives.
func CreateAuthSession(ctx context.Context, userID, ipAddress, userAgent string) (string, error) {
	token := uuid.NewString()
	now := time.Now()

	var sessionID string
	err := database.DB.QueryRow(ctx,
		`INSERT INTO auth_sessions(user_id, token, ip_address, user_agent, is_active, created_at, expires_at, created_by)
		 VALUES($1, $2, $3, $4, true, $5, $6, $7)
		 RETURNING id`,
		userID, token, ipAddress, userAgent, now, now.Add(AuthSessionDuration), userID,
	).Scan(&sessionID)

	if err != nil {
		return "", err
	}

	return token, nil
}

// InvalidateAuthSession invalide une session (soft delete)
func InvalidateAuthSession(ctx context.Context, token string) error {
	var userID string
	err := database.DB.QueryRow(ctx,
		`SELECT user_id FROM auth_sessions WHERE token=$1 AND is_active=true AND deleted_at IS NULL`,
		token,
	).Scan(&userID)

	if err != nil {
		return fmt.Errorf("session not found or already invalidated")
	}

	res, err := database.DB.Exec(ctx,
		`UPDATE auth_sessions
		 SET is_active=false, expires_at=$2, deleted_at=NOW(), deleted_by=$3
		 WHERE token=$1 AND is_active=true AND deleted_at IS NULL`,
		token, time.Now(), userID,
	)

	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return fmt.Errorf("no active session for token")
	}

	return nil
}
