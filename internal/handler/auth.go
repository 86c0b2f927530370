package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/database"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/middleware"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	ctx := context.Background()

	user, hashedPassword, err := utils.FindUserByEmailWithPassword(ctx, req.Email)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateAuthSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing token")
		return
	}

	if err := utils.InvalidateAuthSession(context.Background(), token); err != nil {
		utils.Error(w, http.StatusNotFound, "session not found or already logged out", err)
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}

func Signup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	if payload.Name == "" || payload.Email == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "name and email are required")
		return
	}
	if len(payload.Password) < 8 {
		utils.ErrorSimple(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	ctx := context.Background()

	if existing, _ := utils.FindUserByEmail(ctx, payload.Email); existing != nil {
		utils.ErrorSimple(w, http.StatusConflict, "email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	user, err := utils.CreateUser(ctx, payload.Name, payload.Email, string(hash), "email")
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create user", err)
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateAuthSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Register alias de Signup pour correspondre à l'API du client mobile
func Register(w http.ResponseWriter, r *http.Request) {
	Signup(w, r)
}

// DeleteAccount supprime le compte de l'utilisateur connecté (soft delete)
// et invalide toutes ses sessions
func DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete account", err)
		return
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE profiles SET deleted_at=NOW(), deleted_by=$1, updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`,
		user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete account", err)
		return
	}

	_, err = tx.Exec(ctx,
		`UPDATE auth_sessions SET is_active=false, deleted_at=NOW(), deleted_by=$1
		 WHERE user_id=$1 AND is_active=true AND deleted_at IS NULL`,
		user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete account", err)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete account", err)
		return
	}

	utils.Message(w, "account deleted")
}
