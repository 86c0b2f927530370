package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/database"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/middleware"
	model "github.com/canakboyraz/sport-buddy-app-sub000/internal/models"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/scanner"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/utils"
	"github.com/gorilla/mux"
)

// CanRate vérifie si l'utilisateur connecté peut noter un participant
// d'une session (1h après le début, pas de doublon)
func CanRate(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	vars := mux.Vars(r)
	sessionID := vars["sessionId"]
	ratedID := vars["userId"]

	ctx := context.Background()

	eligibility, err := utils.CanRateSession(ctx, sessionID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check rating eligibility", err)
		return
	}

	if eligibility.CanRate {
		alreadyRated, err := utils.HasRated(ctx, sessionID, user.ID, ratedID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not check rating eligibility", err)
			return
		}
		if alreadyRated {
			eligibility = model.EligibilityResult{
				CanRate: false,
				Reason:  utils.MsgAlreadyRated,
			}
		}
	}

	utils.Success(w, eligibility)
}

// SubmitRating enregistre une note 1-5 avec commentaire optionnel.
// Les stats agrégées du profil noté sont recalculées dans la même
// transaction.
func SubmitRating(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input model.SubmitRatingInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	if input.RatedID == user.ID {
		utils.ErrorSimple(w, http.StatusBadRequest, "you cannot rate yourself")
		return
	}

	if input.Comment != "" {
		result := moderator.ModerateChatMessage(input.Comment)
		if !result.IsAllowed {
			utils.ErrorSimple(w, http.StatusBadRequest, result.Reason)
			return
		}
		input.Comment = result.FilteredContent
	}

	result, err := utils.SubmitRating(context.Background(), user.ID, input)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not submit rating", err)
		return
	}
	if !result.Success {
		status := http.StatusBadRequest
		switch result.Error {
		case utils.MsgSessionNotFound:
			status = http.StatusNotFound
		case utils.MsgAlreadyRated:
			status = http.StatusConflict
		}
		utils.ErrorSimple(w, status, result.Error)
		return
	}

	utils.Success(w, result.Rating)
}

// GetUserRatings liste les notes reçues par un utilisateur, avec le nom
// et l'avatar du noteur
func GetUserRatings(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	limit := 50
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 200 {
		limit = l
	}

	rows, err := database.DB.Query(context.Background(),
		`SELECT r.id, r.session_id, r.rater_id, r.rated_id, r.rating, r.comment,
			r.is_positive, r.created_at, p.name, COALESCE(p.avatar, '')
		 FROM ratings r
		 INNER JOIN profiles p ON p.id = r.rater_id
		 WHERE r.rated_id=$1
		 ORDER BY r.created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query ratings", err)
		return
	}
	defer rows.Close()

	ratings := []model.Rating{}
	for rows.Next() {
		rating, err := scanner.ScanRating(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan rating row", err)
			return
		}
		ratings = append(ratings, *rating)
	}

	utils.Success(w, ratings)
}

// GetSessionRatings liste les notes données pour une session
func GetSessionRatings(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	rows, err := database.DB.Query(context.Background(),
		`SELECT r.id, r.session_id, r.rater_id, r.rated_id, r.rating, r.comment,
			r.is_positive, r.created_at, p.name, COALESCE(p.avatar, '')
		 FROM ratings r
		 INNER JOIN profiles p ON p.id = r.rater_id
		 WHERE r.session_id=$1
		 ORDER BY r.created_at DESC`,
		sessionID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query ratings", err)
		return
	}
	defer rows.Close()

	ratings := []model.Rating{}
	for rows.Next() {
		rating, err := scanner.ScanRating(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan rating row", err)
			return
		}
		ratings = append(ratings, *rating)
	}

	utils.Success(w, ratings)
}
