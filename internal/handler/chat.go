package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/database"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/middleware"
	model "github.com/canakboyraz/sport-buddy-app-sub000/internal/models"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// canAccessSessionChat: le chat d'une session est réservé au créateur et
// aux participants approuvés
func canAccessSessionChat(ctx context.Context, sessionID, userID string) (bool, error) {
	var allowed bool
	err := database.DB.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM sport_sessions
			WHERE id=$1 AND creator_id=$2 AND deleted_at IS NULL
		) OR EXISTS(
			SELECT 1 FROM join_requests
			WHERE session_id=$1 AND user_id=$2 AND status='approved'
		)`,
		sessionID, userID,
	).Scan(&allowed)
	return allowed, err
}

// SendMessage poste un message dans le chat d'une session. Le contenu passe
// par la modération, puis le rate limiter (5 messages / minute). Un message
// refusé par le limiteur ne consomme pas de quota.
func SendMessage(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID := mux.Vars(r)["id"]

	var payload struct {
		Content  string `json:"content"`
		ImageURL string `json:"imageUrl,omitempty"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	ctx := context.Background()

	allowed, err := canAccessSessionChat(ctx, sessionID, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check chat access", err)
		return
	}
	if !allowed {
		utils.ErrorSimple(w, http.StatusForbidden, "you are not part of this session")
		return
	}

	result := moderator.ModerateChatMessage(payload.Content)
	if !result.IsAllowed {
		utils.ErrorSimple(w, http.StatusBadRequest, result.Reason)
		return
	}

	if chatLimiter.IsLimited(user.ID) {
		utils.ErrorSimple(w, http.StatusTooManyRequests,
			"Çok hızlı mesaj gönderiyorsun, lütfen biraz bekle")
		return
	}

	var message model.Message
	err = database.DB.QueryRow(ctx,
		`INSERT INTO messages(session_id, sender_id, content, image_url, created_at)
		 VALUES($1, $2, $3, NULLIF($4, ''), NOW())
		 RETURNING id, session_id, sender_id, content, image_url, created_at`,
		sessionID, user.ID, result.FilteredContent, payload.ImageURL,
	).Scan(&message.ID, &message.SessionID, &message.SenderID,
		&message.Content, &message.ImageURL, &message.CreatedAt)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not send message", err)
		return
	}

	message.SenderName = user.Name
	message.SenderAvatar = user.Avatar

	utils.Success(w, message)
}

// GetMessages liste les messages d'une session, plus récents en premier
func GetMessages(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID := mux.Vars(r)["id"]

	limit := 50
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 200 {
		limit = l
	}

	ctx := context.Background()

	allowed, err := canAccessSessionChat(ctx, sessionID, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check chat access", err)
		return
	}
	if !allowed {
		utils.ErrorSimple(w, http.StatusForbidden, "you are not part of this session")
		return
	}

	rows, err := database.DB.Query(ctx,
		`SELECT m.id, m.session_id, m.sender_id, m.content, m.image_url, m.created_at,
			p.name, COALESCE(p.avatar, '')
		 FROM messages m
		 INNER JOIN profiles p ON p.id = m.sender_id
		 WHERE m.session_id=$1
		 ORDER BY m.created_at DESC
		 LIMIT $2`,
		sessionID, limit,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query messages", err)
		return
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.SenderID, &m.Content, &m.ImageURL,
			&m.CreatedAt, &m.SenderName, &m.SenderAvatar); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan message row", err)
			return
		}
		messages = append(messages, m)
	}

	utils.Success(w, messages)
}

// UploadChatImage upload une image de chat vers Cloudinary et retourne l'URL
func UploadChatImage(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID := mux.Vars(r)["id"]

	if cloudinarySvc == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "image upload is not available")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart form", err)
		return
	}

	ctx := context.Background()

	allowed, err := canAccessSessionChat(ctx, sessionID, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check chat access", err)
		return
	}
	if !allowed {
		utils.ErrorSimple(w, http.StatusForbidden, "you are not part of this session")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "image file is required", err)
		return
	}
	defer file.Close()

	imageURL, err := cloudinarySvc.UploadChatImage(ctx, file, sessionID, uuid.New().String())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload image", err)
		return
	}

	utils.Success(w, map[string]string{"imageUrl": imageURL})
}
