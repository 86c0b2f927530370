package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/database"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/services"
	"github.com/canakboyraz/sport-buddy-app-sub000/internal/utils"
	"github.com/gorilla/mux"
)

// GetSessionWeather retourne la météo actuelle au lieu de la session et,
// si la session est dans les 5 prochains jours, la prévision la plus
// proche de l'heure de début.
func GetSessionWeather(w http.ResponseWriter, r *http.Request) {
	if weatherSvc == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "weather is not available")
		return
	}

	sessionID := mux.Vars(r)["id"]
	ctx := context.Background()

	var lat, lon float64
	var sessionDate time.Time
	err := database.DB.QueryRow(ctx,
		`SELECT latitude, longitude, session_date
		 FROM sport_sessions WHERE id=$1 AND deleted_at IS NULL`,
		sessionID,
	).Scan(&lat, &lon, &sessionDate)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, utils.MsgSessionNotFound)
		return
	}

	current, err := weatherSvc.GetCurrentWeather(ctx, lat, lon)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, "could not fetch weather", err)
		return
	}

	payload := map[string]interface{}{
		"current": current,
	}

	// prévision uniquement si la date tombe dans l'horizon de l'API (5 jours)
	if until := time.Until(sessionDate); until > 0 && until < 5*24*time.Hour {
		forecast, err := weatherSvc.GetForecast(ctx, lat, lon)
		if err == nil {
			payload["sessionForecast"] = closestForecast(forecast, sessionDate)
		}
	}

	utils.Success(w, payload)
}

// closestForecast retourne l'entrée de prévision la plus proche de target
func closestForecast(forecast []services.ForecastEntry, target time.Time) *services.ForecastEntry {
	var best *services.ForecastEntry
	var bestDelta time.Duration

	for i := range forecast {
		delta := forecast[i].Time.Sub(target)
		if delta < 0 {
			delta = -delta
		}
		if best == nil || delta < bestDelta {
			best = &forecast[i]
			bestDelta = delta
		}
	}

	return best
}
