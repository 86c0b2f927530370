package model

// LeaderboardEntry ligne du classement par points de succès
type LeaderboardEntry struct {
	Rank            int     `json:"rank"`
	UserID          string  `json:"userId"`
	Name            string  `json:"name"`
	Avatar          string  `json:"avatar,omitempty"`
	City            string  `json:"city,omitempty"`
	Points          int     `json:"points"`
	AchievementsWon int     `json:"achievementsWon"`
	AverageRating   float64 `json:"averageRating"`
}

// UserRank position d'un utilisateur dans le classement
type UserRank struct {
	UserID     string `json:"userId"`
	Rank       int    `json:"rank"`
	Points     int    `json:"points"`
	TotalUsers int    `json:"totalUsers"`
}
