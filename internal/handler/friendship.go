package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/database"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/middleware"
	model "github.com/canakboyraz/sport-buddy-app-sub000/internal/models"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/utils"
	"github.com/gorilla/mux"
)

// GetFriends liste les amis de l'utilisateur connecté
func GetFriends(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	friends, err := utils.ListFriends(context.Background(), user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not list friends", err)
		return
	}
	if friends == nil {
		friends = []model.FriendInfo{}
	}

	utils.Success(w, friends)
}

// GetFriendshipStatus retourne l'état de la relation avec un autre utilisateur
func GetFriendshipStatus(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	otherID := mux.Vars(r)["id"]

	status, friendship, err := utils.GetFriendshipStatus(context.Background(), user.ID, otherID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch friendship status", err)
		return
	}

	payload := map[string]interface{}{"status": status}
	if friendship != nil {
		payload["requesterId"] = friendship.RequesterID
		payload["since"] = friendship.UpdatedAt
	}

	utils.Success(w, payload)
}

// SendFriendRequest envoie une demande d'ami et notifie le destinataire
func SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	addresseeID := mux.Vars(r)["id"]

	if err := utils.SendFriendRequest(context.Background(), user.ID, addresseeID); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	go notifyFriendRequest(addresseeID, user.Name)

	utils.Message(w, "friend request sent")
}

// AcceptFriendRequest accepte une demande reçue
func AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	requesterID := mux.Vars(r)["id"]

	if err := utils.AcceptFriendRequest(context.Background(), user.ID, requesterID); err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, err.Error())
		return
	}

	utils.Message(w, "friend request accepted")
}

// RejectFriendRequest rejette une demande reçue
func RejectFriendRequest(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	requesterID := mux.Vars(r)["id"]

	if err := utils.RejectFriendRequest(context.Background(), user.ID, requesterID); err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, err.Error())
		return
	}

	utils.Message(w, "friend request rejected")
}

// CancelFriendRequest annule une demande envoyée
func CancelFriendRequest(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	addresseeID := mux.Vars(r)["id"]

	if err := utils.CancelFriendRequest(context.Background(), user.ID, addresseeID); err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, err.Error())
		return
	}

	utils.Message(w, "friend request cancelled")
}

// RemoveFriend supprime une amitié
func RemoveFriend(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	friendID := mux.Vars(r)["id"]

	if err := utils.RemoveFriend(context.Background(), user.ID, friendID); err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, err.Error())
		return
	}

	utils.Message(w, "friend removed")
}

// BlockUser bloque un utilisateur
func BlockUser(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	blockedID := mux.Vars(r)["id"]

	if err := utils.BlockUser(context.Background(), user.ID, blockedID); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.Message(w, "user blocked")
}

// UnblockUser lève un blocage
func UnblockUser(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	blockedID := mux.Vars(r)["id"]

	if err := utils.UnblockUser(context.Background(), user.ID, blockedID); err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, err.Error())
		return
	}

	utils.Message(w, "user unblocked")
}

// ReportUser enregistre un signalement contre un utilisateur
func ReportUser(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	reportedID := mux.Vars(r)["id"]

	var payload struct {
		Reason  string `json:"reason"`
		Details string `json:"details,omitempty"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	if err := utils.ReportUser(context.Background(), user.ID, reportedID, payload.Reason, payload.Details); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.Message(w, "report submitted")
}

// notifyFriendRequest push au destinataire d'une demande d'ami. Fire-and-forget.
func notifyFriendRequest(addresseeID, requesterName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var pushToken string
	err := database.DB.QueryRow(ctx,
		`SELECT COALESCE(push_token, '') FROM profiles WHERE id=$1 AND deleted_at IS NULL`,
		addresseeID,
	).Scan(&pushToken)
	if err != nil || pushToken == "" {
		return
	}

	if pushSvc != nil {
		body := requesterName + " sana arkadaşlık isteği gönderdi"
		if err := pushSvc.SendPush(ctx, pushToken, "Yeni arkadaşlık isteği", body, map[string]interface{}{
			"type": "friend_request",
		}); err != nil {
			utils.LogError("friend request push failed: %v", err)
		}
	}
}
