package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/database"
	model "github.com/canakboyraz/sport-buddy-app-sub000/internal/models"
	"github.com/jackc/pgx/v5"
)

// findFriendship cherche la relation entre deux utilisateurs, peu importe la direction
func findFriendship(ctx context.Context, userID, otherID string) (*model.Friendship, error) {
	var f model.Friendship
	err := database.DB.QueryRow(ctx,
		`SELECT id, requester_id, addressee_id, status, created_at, updated_at
		 FROM friendships
		 WHERE (requester_id=$1 AND addressee_id=$2)
			OR (requester_id=$2 AND addressee_id=$1)`,
		userID, otherID,
	).Scan(&f.ID, &f.RequesterID, &f.AddresseeID, &f.Status, &f.CreatedAt, &f.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &f, nil
}

// GetFriendshipStatus retourne l'état de la relation entre deux utilisateurs
func GetFriendshipStatus(ctx context.Context, userID, otherID string) (model.FriendshipStatus, *model.Friendship, error) {
	friendship, err := findFriendship(ctx, userID, otherID)
	if err != nil {
		return model.FriendshipNone, nil, err
	}
	if friendship == nil {
		return model.FriendshipNone, nil, nil
	}
	return friendship.Status, friendship, nil
}

// SendFriendRequest crée une demande d'ami (pending).
// Refuse si une relation existe déjà dans n'importe quel état.
func SendFriendRequest(ctx context.Context, requesterID, addresseeID string) error {
	if requesterID == addresseeID {
		return fmt.Errorf("cannot send a friend request to yourself")
	}

	existing, err := findFriendship(ctx, requesterID, addresseeID)
	if err != nil {
		return err
	}
	if existing != nil {
		switch existing.Status {
		case model.FriendshipAccepted:
			return fmt.Errorf("already friends")
		case model.FriendshipBlocked:
			return fmt.Errorf("this user cannot be added")
		default:
			return fmt.Errorf("friend request already pending")
		}
	}

	_, err = database.DB.Exec(ctx,
		`INSERT INTO friendships(requester_id, addressee_id, status, created_at, updated_at)
		 VALUES($1, $2, 'pending', NOW(), NOW())`,
		requesterID, addresseeID,
	)
	return err
}

// AcceptFriendRequest accepte une demande reçue (pending → accepted)
func AcceptFriendRequest(ctx context.Context, userID, requesterID string) error {
	res, err := database.DB.Exec(ctx,
		`UPDATE friendships SET status='accepted', updated_at=NOW()
		 WHERE requester_id=$1 AND addressee_id=$2 AND status='pending'`,
		requesterID, userID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("no pending friend request from this user")
	}
	return nil
}

// RejectFriendRequest rejette une demande reçue
func RejectFriendRequest(ctx context.Context, userID, requesterID string) error {
	res, err := database.DB.Exec(ctx,
		`DELETE FROM friendships
		 WHERE requester_id=$1 AND addressee_id=$2 AND status='pending'`,
		requesterID, userID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("no pending friend request from this user")
	}
	return nil
}

// CancelFriendRequest annule une demande envoyée
func CancelFriendRequest(ctx context.Context, requesterID, addresseeID string) error {
	res, err := database.DB.Exec(ctx,
		`DELETE FROM friendships
		 WHERE requester_id=$1 AND addressee_id=$2 AND status='pending'`,
		requesterID, addresseeID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("no pending friend request to cancel")
	}
	return nil
}

// RemoveFriend supprime une amitié acceptée (dans les deux directions)
func RemoveFriend(ctx context.Context, userID, friendID string) error {
	res, err := database.DB.Exec(ctx,
		`DELETE FROM friendships
		 WHERE status='accepted'
			AND ((requester_id=$1 AND addressee_id=$2)
			  OR (requester_id=$2 AND addressee_id=$1))`,
		userID, friendID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("not friends with this user")
	}
	return nil
}

// BlockUser bloque un utilisateur. Toute relation existante est remplacée;
// le requester de la ligne 'blocked' est toujours celui qui bloque.
func BlockUser(ctx context.Context, blockerID, blockedID string) error {
	if blockerID == blockedID {
		return fmt.Errorf("cannot block yourself")
	}

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM friendships
		 WHERE (requester_id=$1 AND addressee_id=$2)
			OR (requester_id=$2 AND addressee_id=$1)`,
		blockerID, blockedID,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO friendships(requester_id, addressee_id, status, created_at, updated_at)
		 VALUES($1, $2, 'blocked', NOW(), NOW())`,
		blockerID, blockedID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UnblockUser lève un blocage posé par l'utilisateur
func UnblockUser(ctx context.Context, blockerID, blockedID string) error {
	res, err := database.DB.Exec(ctx,
		`DELETE FROM friendships
		 WHERE requester_id=$1 AND addressee_id=$2 AND status='blocked'`,
		blockerID, blockedID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("this user is not blocked")
	}
	return nil
}

// ListFriends retourne les amis acceptés avec leurs infos de profil
func ListFriends(ctx context.Context, userID string) ([]model.FriendInfo, error) {
	rows, err := database.DB.Query(ctx,
		`SELECT
			CASE WHEN f.requester_id=$1 THEN f.addressee_id ELSE f.requester_id END AS friend_id,
			p.name,
			COALESCE(p.avatar, '') AS avatar,
			COALESCE(p.city, '') AS city,
			p.average_rating,
			f.updated_at AS friends_since
		 FROM friendships f
		 INNER JOIN profiles p
			ON p.id = CASE WHEN f.requester_id=$1 THEN f.addressee_id ELSE f.requester_id END
		 WHERE f.status='accepted'
			AND (f.requester_id=$1 OR f.addressee_id=$1)
			AND p.deleted_at IS NULL
		 ORDER BY p.name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friends []model.FriendInfo
	for rows.Next() {
		var f model.FriendInfo
		if err := rows.Scan(&f.UserID, &f.Name, &f.Avatar, &f.City, &f.AverageRating, &f.FriendsSince); err != nil {
			return nil, err
		}
		friends = append(friends, f)
	}

	return friends, rows.Err()
}

// ReportUser enregistre un signalement
func ReportUser(ctx context.Context, reporterID, reportedID, reason, details string) error {
	if reporterID == reportedID {
		return fmt.Errorf("cannot report yourself")
	}
	if reason == "" {
		return fmt.Errorf("a reason is required")
	}

	_, err := database.DB.Exec(ctx,
		`INSERT INTO user_reports(reporter_id, reported_id, reason, details, status, created_at)
		 VALUES($1, $2, $3, NULLIF($4, ''), 'pending', NOW())`,
		reporterID, reportedID, reason, details,
	)
	return err
}
