package utils

import (
	"encoding/json"
	"net/http"
)

// APIResponse enveloppe JSON standard de toutes les réponses
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// Success répond 200 avec les données
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// Error répond avec un message d'erreur; l'erreur sous-jacente est loguée
// mais jamais exposée au client
func Error(w http.ResponseWriter, status int, message string, errs ...error) {
	for _, err := range errs {
		if err != nil {
			LogError("[%d] %s: %v", status, message, err)
		}
	}
	JSON(w, status, APIResponse{Success: false, Error: message})
}

// ErrorSimple répond avec un message d'erreur sans erreur sous-jacente
func ErrorSimple(w http.ResponseWriter, status int, message string) {
	LogError("[%d] %s", status, message)
	JSON(w, status, APIResponse{Success: false, Error: message})
}

// Message répond 200 avec un message simple
func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Message: msg})
}
