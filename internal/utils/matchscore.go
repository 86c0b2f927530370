package utils

import (
	"math"
	"time"

	model "github.com/canakboyraz/sport-buddy-app-sub000/internal/models"
)

// Pondérations du score de recommandation
const (
	sportMatchWeight = 40.0
	skillMatchWeight = 25.0
	distanceWeight   = 20.0
	recencyWeight    = 15.0

	maxRelevantDistanceKm = 30.0
	maxRelevantHorizon    = 7 * 24 * time.Hour
)

// SessionMatchScore calcule la pertinence d'une session pour un utilisateur
// donné (0-100). Le score vit côté serveur pour que tous les clients
// partagent la même logique de tri.
func SessionMatchScore(user model.UserProfile, userLat, userLon float64, session model.SportSession, now time.Time) float64 {
	score := 0.0

	// sport favori
	for _, sport := range user.FavoriteSports {
		if sport == session.Sport {
			score += sportMatchWeight
			break
		}
	}

	// proximité de niveau: score plein si identique, moitié si adjacent
	score += skillMatchWeight * skillProximity(user.SkillLevel, session.SkillLevel)

	// distance: décroissance linéaire jusqu'à 30 km
	distance := HaversineKm(userLat, userLon, session.Latitude, session.Longitude)
	if distance < maxRelevantDistanceKm {
		score += distanceWeight * (1 - distance/maxRelevantDistanceKm)
	}

	// les sessions proches dans le temps remontent
	until := session.SessionDate.Sub(now)
	if until > 0 && until < maxRelevantHorizon {
		score += recencyWeight * (1 - until.Hours()/maxRelevantHorizon.Hours())
	}

	return math.Round(score*100) / 100
}

func skillProximity(a, b model.SkillLevel) float64 {
	ranks := map[model.SkillLevel]int{
		model.SkillBeginner:     0,
		model.SkillIntermediate: 1,
		model.SkillAdvanced:     2,
	}

	ra, okA := ranks[a]
	rb, okB := ranks[b]
	if !okA || !okB {
		return 0
	}

	switch abs(ra - rb) {
	case 0:
		return 1
	case 1:
		return 0.5
	default:
		return 0
	}
}

// HaversineKm distance orthodromique entre deux points en kilomètres
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
