package utils

import (
	"testing"
	"time"

	model "github.com/canakboyraz/sport-buddy-app-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []model.Achievement {
	return []model.Achievement{
		{ID: "a1", Code: "first_session", RequirementType: model.RequirementSessionsCreated, RequirementValue: 1, Points: 10},
		{ID: "a2", Code: "organizer", RequirementType: model.RequirementSessionsCreated, RequirementValue: 10, Points: 50},
		{ID: "a3", Code: "social_butterfly", RequirementType: model.RequirementMessagesSent, RequirementValue: 100, Points: 25},
		{ID: "a4", Code: "five_star_player", RequirementType: model.RequirementFiveStarRatings, RequirementValue: 5, Points: 40},
	}
}

func TestBuildProgressRatios(t *testing.T) {
	stats := model.UserStats{
		SessionsCreated: 4,
		MessagesSent:    250,
		FiveStarRatings: 0,
	}

	progress := BuildProgress(testCatalog(), nil, stats)
	require.Len(t, progress, 4)

	byCode := make(map[string]model.AchievementProgress)
	for _, p := range progress {
		byCode[p.Achievement.Code] = p
	}

	// prérequis atteint: plafonné à 1
	assert.Equal(t, 1.0, byCode["first_session"].Progress)
	assert.Equal(t, 4, byCode["first_session"].Current)

	// en cours: ratio exact
	assert.InDelta(t, 0.4, byCode["organizer"].Progress, 1e-9)

	// au-delà du prérequis: plafonné à 1
	assert.Equal(t, 1.0, byCode["social_butterfly"].Progress)
	assert.Equal(t, 250, byCode["social_butterfly"].Current)

	// aucun progrès
	assert.Equal(t, 0.0, byCode["five_star_player"].Progress)
}

func TestBuildProgressEarned(t *testing.T) {
	unlockedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	unlocked := map[string]time.Time{"a1": unlockedAt}

	progress := BuildProgress(testCatalog(), unlocked, model.UserStats{SessionsCreated: 1})

	byCode := make(map[string]model.AchievementProgress)
	for _, p := range progress {
		byCode[p.Achievement.Code] = p
	}

	require.True(t, byCode["first_session"].Earned)
	require.NotNil(t, byCode["first_session"].UnlockedAt)
	assert.Equal(t, unlockedAt, *byCode["first_session"].UnlockedAt)

	assert.False(t, byCode["organizer"].Earned)
	assert.Nil(t, byCode["organizer"].UnlockedAt)
}

func TestBuildProgressEmptyCatalog(t *testing.T) {
	progress := BuildProgress(nil, nil, model.UserStats{})
	assert.Empty(t, progress)
}

func TestBuildProgressUnknownRequirementType(t *testing.T) {
	catalog := []model.Achievement{
		{ID: "x", Code: "mystery", RequirementType: "unknown_stat", RequirementValue: 5},
	}

	progress := BuildProgress(catalog, nil, model.UserStats{SessionsCreated: 99})

	require.Len(t, progress, 1)
	assert.Equal(t, 0, progress[0].Current)
	assert.Equal(t, 0.0, progress[0].Progress)
}

func TestStatFor(t *testing.T) {
	stats := model.UserStats{
		SessionsCreated: 1,
		SessionsJoined:  2,
		RatingsReceived: 3,
		FiveStarRatings: 4,
		MessagesSent:    5,
		DaysMember:      6,
	}

	assert.Equal(t, 1, stats.StatFor(model.RequirementSessionsCreated))
	assert.Equal(t, 2, stats.StatFor(model.RequirementSessionsJoined))
	assert.Equal(t, 3, stats.StatFor(model.RequirementRatingsReceived))
	assert.Equal(t, 4, stats.StatFor(model.RequirementFiveStarRatings))
	assert.Equal(t, 5, stats.StatFor(model.RequirementMessagesSent))
	assert.Equal(t, 6, stats.StatFor(model.RequirementDaysMember))
	assert.Equal(t, 0, stats.StatFor("nope"))
}
