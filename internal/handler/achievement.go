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
	"golang.org/x/sync/errgroup"
)

// GetAchievements retourne le catalogue complet des succès
func GetAchievements(w http.ResponseWriter, r *http.Request) {
	catalog, err := utils.FetchAchievementCatalog(context.Background())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch achievements", err)
		return
	}

	utils.Success(w, catalog)
}

// GetUserAchievements retourne la progression d'un utilisateur sur tout le
// catalogue: stats, succès débloqués et catalogue sont chargés en parallèle.
func GetUserAchievements(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	ctx := context.Background()

	var (
		catalog  []model.Achievement
		unlocked map[string]time.Time
		stats    model.UserStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = utils.FetchAchievementCatalog(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		unlocked, err = utils.FetchUnlockedAchievements(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = utils.FetchUserStats(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch user achievements", err)
		return
	}

	progress := utils.BuildProgress(catalog, unlocked, stats)

	earned := 0
	totalPoints := 0
	for _, p := range progress {
		if p.Earned {
			earned++
			totalPoints += p.Achievement.Points
		}
	}

	utils.Success(w, map[string]interface{}{
		"achievements": progress,
		"earnedCount":  earned,
		"totalCount":   len(progress),
		"totalPoints":  totalPoints,
	})
}

// CheckAchievements débloque les succès dont le prérequis est atteint et
// retourne les nouveaux. Les notifications push partent en arrière-plan.
func CheckAchievements(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	awarded, err := utils.CheckAndAwardAchievements(context.Background(), user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check achievements", err)
		return
	}

	if len(awarded) > 0 {
		go notifyNewAchievements(user.ID, awarded)
	}

	utils.Success(w, map[string]interface{}{
		"newAchievements": awarded,
		"count":           len(awarded),
	})
}

// notifyNewAchievements envoie une push par succès débloqué. Fire-and-forget.
func notifyNewAchievements(userID string, awarded []model.Achievement) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var pushToken string
	err := database.DB.QueryRow(ctx,
		`SELECT COALESCE(push_token, '') FROM profiles WHERE id=$1 AND deleted_at IS NULL`,
		userID,
	).Scan(&pushToken)
	if err != nil || pushToken == "" {
		return
	}

	for _, achievement := range awarded {
		body := achievement.Icon + " \"" + achievement.Name + "\" başarısını kazandın!"
		if assistantSvc != nil && assistantSvc.Enabled() {
			if text, err := assistantSvc.NotificationText(ctx,
				"Kullanıcı \""+achievement.Name+"\" başarısını kazandı: "+achievement.Description); err == nil {
				body = text
			}
		}

		if pushSvc != nil {
			if err := pushSvc.SendPush(ctx, pushToken, "Yeni Başarı!", body, map[string]interface{}{
				"type":          "achievement",
				"achievementId": achievement.ID,
			}); err != nil {
				utils.LogError("achievement push failed: %v", err)
			}
		}
	}
}
