package api

import (
	"net/http"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/handler"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/middleware"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/utils"
	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.OptionalAuth)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)
	authenticatedRoutes.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)
	r.HandleFunc("/auth/signup", handler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/account", handler.DeleteAccount).Methods(http.MethodDelete)

	// Users
	r.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/{id}", handler.UpdateProfile).Methods(http.MethodPut, http.MethodPatch)
	authenticatedRoutes.HandleFunc("/users/{id}/avatar", handler.UploadAvatar).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}/badge", handler.GetUserBadge).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/stats", handler.GetUserStats).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/ratings", handler.GetUserRatings).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/achievements", handler.GetUserAchievements).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/push-token", handler.RegisterPushToken).Methods(http.MethodPost)

	// Sport sessions
	r.HandleFunc("/sessions", handler.GetSportSessions).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/sessions", handler.CreateSportSession).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/sessions/recommended", handler.GetRecommendedSessions).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}", handler.GetSportSessionById).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/sessions/{id}", handler.UpdateSportSession).Methods(http.MethodPut, http.MethodPatch)
	authenticatedRoutes.HandleFunc("/sessions/{id}/cancel", handler.CancelSportSession).Methods(http.MethodPost)

	// Join requests
	authenticatedRoutes.HandleFunc("/sessions/{id}/join", handler.JoinSession).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/sessions/{id}/leave", handler.LeaveSession).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/sessions/{id}/requests", handler.GetJoinRequests).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/sessions/{id}/requests/{requestId}", handler.HandleJoinRequest).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/sessions/{id}/recurring", handler.GenerateRecurringSessions).Methods(http.MethodPost)

	// Session extras
	r.HandleFunc("/sessions/{id}/weather", handler.GetSessionWeather).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/ratings", handler.GetSessionRatings).Methods(http.MethodGet)

	// Ratings
	authenticatedRoutes.HandleFunc("/ratings/can-rate/{sessionId}/{userId}", handler.CanRate).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/ratings", handler.SubmitRating).Methods(http.MethodPost)

	// Achievements
	r.HandleFunc("/achievements", handler.GetAchievements).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/achievements/check", handler.CheckAchievements).Methods(http.MethodPost)

	// Chat
	authenticatedRoutes.HandleFunc("/sessions/{id}/messages", handler.GetMessages).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/sessions/{id}/messages", handler.SendMessage).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/sessions/{id}/messages/image", handler.UploadChatImage).Methods(http.MethodPost)

	// Friends
	authenticatedRoutes.HandleFunc("/friends", handler.GetFriends).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/friends/{id}/status", handler.GetFriendshipStatus).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/friends/{id}/request", handler.SendFriendRequest).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/friends/{id}/request", handler.CancelFriendRequest).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/friends/{id}/accept", handler.AcceptFriendRequest).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/friends/{id}/reject", handler.RejectFriendRequest).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/friends/{id}", handler.RemoveFriend).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/friends/{id}/block", handler.BlockUser).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/friends/{id}/block", handler.UnblockUser).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/friends/{id}/report", handler.ReportUser).Methods(http.MethodPost)

	// Leaderboard
	r.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/leaderboard/me", handler.GetMyRank).Methods(http.MethodGet)

	// Moderation
	authenticatedRoutes.HandleFunc("/moderation/blocked-words", handler.AddBlockedWord).Methods(http.MethodPost)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
