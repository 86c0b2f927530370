package handler

import (
	"net/http"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "SportBuddy API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/login", "description": "Connexion utilisateur"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion utilisateur"},
				{"method": "POST", "path": "/auth/signup", "description": "Inscription utilisateur"},
				{"method": "POST", "path": "/auth/register", "description": "Inscription utilisateur (alias)"},
				{"method": "DELETE", "path": "/auth/account", "description": "Supprimer son compte (soft delete)"},
			},
			"users": []map[string]string{
				{"method": "GET", "path": "/users/{id}", "description": "Récupérer un profil par ID"},
				{"method": "PUT", "path": "/users/{id}", "description": "Mettre à jour son profil"},
				{"method": "POST", "path": "/users/{id}/avatar", "description": "Upload avatar utilisateur"},
				{"method": "GET", "path": "/users/{id}/badge", "description": "Badge calculé à partir des avis positifs"},
				{"method": "GET", "path": "/users/{id}/stats", "description": "Statistiques agrégées d'un utilisateur"},
				{"method": "GET", "path": "/users/{id}/ratings", "description": "Notes reçues par un utilisateur"},
				{"method": "GET", "path": "/users/{id}/achievements", "description": "Progression des succès d'un utilisateur"},
				{"method": "POST", "path": "/users/push-token", "description": "Enregistrer le token push Expo"},
			},
			"sessions": []map[string]string{
				{"method": "GET", "path": "/sessions", "description": "Lister les sessions (params: sport, city, status, limit)"},
				{"method": "POST", "path": "/sessions", "description": "Créer une session sportive"},
				{"method": "GET", "path": "/sessions/recommended", "description": "Sessions recommandées (params: lat, lon, limit)"},
				{"method": "GET", "path": "/sessions/{id}", "description": "Récupérer une session par ID"},
				{"method": "PUT", "path": "/sessions/{id}", "description": "Mettre à jour une session (créateur)"},
				{"method": "POST", "path": "/sessions/{id}/cancel", "description": "Annuler une session (créateur)"},
				{"method": "POST", "path": "/sessions/{id}/join", "description": "Demander à rejoindre une session"},
				{"method": "POST", "path": "/sessions/{id}/leave", "description": "Quitter une session"},
				{"method": "GET", "path": "/sessions/{id}/requests", "description": "Demandes en attente (créateur)"},
				{"method": "POST", "path": "/sessions/{id}/requests/{requestId}", "description": "Approuver/rejeter une demande"},
				{"method": "POST", "path": "/sessions/{id}/recurring", "description": "Générer des sessions récurrentes"},
				{"method": "GET", "path": "/sessions/{id}/weather", "description": "Météo au lieu de la session"},
				{"method": "GET", "path": "/sessions/{id}/ratings", "description": "Notes données pour une session"},
			},
			"ratings": []map[string]string{
				{"method": "GET", "path": "/ratings/can-rate/{sessionId}/{userId}", "description": "Vérifier l'éligibilité d'évaluation"},
				{"method": "POST", "path": "/ratings", "description": "Soumettre une note 1-5"},
			},
			"achievements": []map[string]string{
				{"method": "GET", "path": "/achievements", "description": "Catalogue des succès"},
				{"method": "POST", "path": "/achievements/check", "description": "Débloquer les succès atteints"},
			},
			"chat": []map[string]string{
				{"method": "GET", "path": "/sessions/{id}/messages", "description": "Messages du chat de session"},
				{"method": "POST", "path": "/sessions/{id}/messages", "description": "Envoyer un message (modéré + rate limité)"},
				{"method": "POST", "path": "/sessions/{id}/messages/image", "description": "Upload image de chat"},
			},
			"friends": []map[string]string{
				{"method": "GET", "path": "/friends", "description": "Lister ses amis"},
				{"method": "GET", "path": "/friends/{id}/status", "description": "État de la relation avec un utilisateur"},
				{"method": "POST", "path": "/friends/{id}/request", "description": "Envoyer une demande d'ami"},
				{"method": "POST", "path": "/friends/{id}/accept", "description": "Accepter une demande"},
				{"method": "POST", "path": "/friends/{id}/reject", "description": "Rejeter une demande"},
				{"method": "DELETE", "path": "/friends/{id}/request", "description": "Annuler une demande envoyée"},
				{"method": "DELETE", "path": "/friends/{id}", "description": "Supprimer un ami"},
				{"method": "POST", "path": "/friends/{id}/block", "description": "Bloquer un utilisateur"},
				{"method": "DELETE", "path": "/friends/{id}/block", "description": "Débloquer un utilisateur"},
				{"method": "POST", "path": "/friends/{id}/report", "description": "Signaler un utilisateur"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard", "description": "Classement par points de succès (params: city, limit)"},
				{"method": "GET", "path": "/leaderboard/me", "description": "Son rang dans le classement"},
			},
			"moderation": []map[string]string{
				{"method": "POST", "path": "/moderation/blocked-words", "description": "Ajouter un mot à la liste de modération"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour SportBuddy - Trouve des partenaires de sport près de chez toi",
			"contact":     "support@sportbuddy.app",
		},
	}

	utils.Success(w, routes)
}
