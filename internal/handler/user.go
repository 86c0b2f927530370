package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/badge"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/database"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/middleware"
	model "github.com/canakboyraz/sport-buddy-app-sub000/internal/models"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/utils"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
)

// GetUser récupère un profil public par ID
func GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	user, err := utils.FindUserByID(context.Background(), userID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "user not found", err)
		return
	}

	utils.Success(w, user)
}

// UpdateProfile met à jour le profil de l'utilisateur connecté.
// La bio passe par la modération avant persistance.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if mux.Vars(r)["id"] != user.ID {
		utils.ErrorSimple(w, http.StatusForbidden, "cannot update another user's profile")
		return
	}

	var payload struct {
		Name           *string  `json:"name,omitempty"`
		Bio            *string  `json:"bio,omitempty"`
		City           *string  `json:"city,omitempty"`
		FavoriteSports []string `json:"favoriteSports,omitempty"`
		SkillLevel     *string  `json:"skillLevel,omitempty"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	bio := user.Bio
	if payload.Bio != nil {
		result := moderator.ModerateUserBio(*payload.Bio)
		if !result.IsAllowed {
			utils.ErrorSimple(w, http.StatusBadRequest, result.Reason)
			return
		}
		bio = result.FilteredContent
	}

	name := user.Name
	if payload.Name != nil {
		name = strings.TrimSpace(*payload.Name)
		if name == "" {
			utils.ErrorSimple(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
	}

	city := user.City
	if payload.City != nil {
		city = strings.TrimSpace(*payload.City)
	}

	skillLevel := string(user.SkillLevel)
	if payload.SkillLevel != nil {
		switch model.SkillLevel(*payload.SkillLevel) {
		case model.SkillBeginner, model.SkillIntermediate, model.SkillAdvanced:
			skillLevel = *payload.SkillLevel
		default:
			utils.ErrorSimple(w, http.StatusBadRequest, "invalid skill level")
			return
		}
	}

	sports := user.FavoriteSports
	if payload.FavoriteSports != nil {
		sports = payload.FavoriteSports
	}

	ctx := context.Background()
	_, err = database.DB.Exec(ctx,
		`UPDATE profiles
		 SET name=$2, bio=NULLIF($3, ''), city=NULLIF($4, ''), favorite_sports=$5,
			 skill_level=NULLIF($6, ''), updated_at=NOW(), updated_by=$1
		 WHERE id=$1 AND deleted_at IS NULL`,
		user.ID, name, bio, city, pq.Array(sports), skillLevel,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update profile", err)
		return
	}

	updated, err := utils.FindUserByID(ctx, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not reload profile", err)
		return
	}

	utils.Success(w, updated)
}

// UploadAvatar upload l'avatar de l'utilisateur vers Cloudinary
func UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if cloudinarySvc == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "avatar upload is not available")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart form", err)
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "avatar file is required", err)
		return
	}
	defer file.Close()

	ctx := context.Background()

	avatarURL, err := cloudinarySvc.UploadAvatar(ctx, file, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload avatar", err)
		return
	}

	_, err = database.DB.Exec(ctx,
		`UPDATE profiles SET avatar=$2, updated_at=NOW(), updated_by=$1 WHERE id=$1 AND deleted_at IS NULL`,
		user.ID, avatarURL,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save avatar", err)
		return
	}

	utils.Success(w, map[string]string{"avatar": avatarURL})
}

// GetUserBadge calcule le badge affiché d'un utilisateur à partir de son
// nombre d'avis positifs. Jamais persisté.
func GetUserBadge(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	user, err := utils.FindUserByID(context.Background(), userID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "user not found", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"userId":               user.ID,
		"positiveReviewsCount": user.PositiveReviewsCount,
		"badge":                badge.TierFor(user.PositiveReviewsCount),
	})
}

// GetUserStats retourne les six statistiques agrégées d'un utilisateur
func GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	stats, err := utils.FetchUserStats(context.Background(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch user stats", err)
		return
	}

	utils.Success(w, stats)
}

// RegisterPushToken enregistre le token Expo de l'appareil
func RegisterPushToken(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload struct {
		PushToken string `json:"pushToken"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if payload.PushToken == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "pushToken is required")
		return
	}

	_, err = database.DB.Exec(context.Background(),
		`UPDATE profiles SET push_token=$2, updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`,
		user.ID, payload.PushToken,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save push token", err)
		return
	}

	utils.Message(w, "push token registered")
}
