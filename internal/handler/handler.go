package handler

import (
	"net/http"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/config"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/logger"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/middleware"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/moderation"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/ratelimit"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/services"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/utils"
)

// État partagé du package handler: politique de modération, rate limiter
// de chat et clients SaaS. Initialisé une fois au démarrage.
var (
	moderationPolicy = moderation.DefaultPolicy()
	moderator        = moderation.NewModerator(moderationPolicy)
	chatLimiter      = ratelimit.NewLimiter()

	cloudinarySvc *services.CloudinaryService
	weatherSvc    *services.WeatherService
	pushSvc       *services.PushService
	assistantSvc  *services.AssistantService
)

// InitServices initialise les clients SaaS. Les services optionnels
// absents de la config sont désactivés avec un warning, pas une erreur.
func InitServices(cfg *config.Config) {
	var err error

	cloudinarySvc, err = services.NewCloudinaryService(cfg)
	if err != nil {
		logger.Warning("Cloudinary disabled: %v", err)
		cloudinarySvc = nil
	}

	weatherSvc, err = services.NewWeatherService(cfg)
	if err != nil {
		logger.Warning("Weather disabled: %v", err)
		weatherSvc = nil
	}

	pushSvc = services.NewPushService(cfg)
	assistantSvc = services.NewAssistantService(cfg)
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}

// AddBlockedWord ajoute un mot à la liste de modération au runtime.
// Non persisté: repart des listes par défaut au redémarrage.
func AddBlockedWord(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.GetUserFromContext(r); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload struct {
		Word string `json:"word"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if payload.Word == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "word is required")
		return
	}

	moderationPolicy.AddBlockedWord(payload.Word)

	utils.Message(w, "word added to moderation list")
}
