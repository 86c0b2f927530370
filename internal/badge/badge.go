package badge

// Tier est le badge d'un utilisateur, dérivé uniquement du nombre
// d'évaluations positives (score >= 4). Jamais persisté.
type Tier struct {
	Level         string `json:"level"`
	Icon          string `json:"icon"`
	Color         string `json:"color"`
	NextMilestone *int   `json:"nextMilestone,omitempty"`
}

// Seuils fixes des paliers
const (
	milestoneGoodStart = 3
	milestoneLiked     = 10
	milestoneWellLiked = 25
	milestoneLegend    = 50
	milestoneSuperstar = 100
)

// TierFor calcule le palier pour un nombre d'avis positifs donné.
// Fonction totale sur les entiers non négatifs.
func TierFor(positiveCount int) Tier {
	switch {
	case positiveCount >= milestoneSuperstar:
		return Tier{Level: "Süperstar", Icon: "👑", Color: "#FFD700"}
	case positiveCount >= milestoneLegend:
		return tier("Efsane", "🔥", "#FF4500", milestoneSuperstar)
	case positiveCount >= milestoneWellLiked:
		return tier("Çok Beğenilen", "🏆", "#9370DB", milestoneLegend)
	case positiveCount >= milestoneLiked:
		return tier("Beğenilen", "⭐", "#1E90FF", milestoneWellLiked)
	case positiveCount >= milestoneGoodStart:
		return tier("İyi Başlangıç", "👍", "#32CD32", milestoneLiked)
	default:
		return tier("Yeni", "🌱", "#9E9E9E", milestoneGoodStart)
	}
}

func tier(level, icon, color string, next int) Tier {
	return Tier{Level: level, Icon: icon, Color: color, NextMilestone: &next}
}
