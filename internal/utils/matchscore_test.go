package utils

import (
	"testing"
	"time"

	model "github.com/canakboyraz/sport-buddy-app-sub000/internal/models"
	"github.com/stretchr/testify/assert"
)

// Kadıköy et Beşiktaş, ~8 km
const (
	kadikoyLat  = 40.9901
	kadikoyLon  = 29.0254
	besiktasLat = 41.0430
	besiktasLon = 29.0061
)

func testUser() model.UserProfile {
	return model.UserProfile{
		ID:             "u1",
		FavoriteSports: []string{"basketbol", "futbol"},
		SkillLevel:     model.SkillIntermediate,
	}
}

func testSession(sport string, skill model.SkillLevel, date time.Time) model.SportSession {
	return model.SportSession{
		Sport:       sport,
		SkillLevel:  skill,
		SessionDate: date,
		Latitude:    besiktasLat,
		Longitude:   besiktasLon,
	}
}

func TestSessionMatchScorePrefersFavoriteSport(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := testUser()
	date := now.Add(24 * time.Hour)

	favorite := SessionMatchScore(user, kadikoyLat, kadikoyLon, testSession("futbol", model.SkillIntermediate, date), now)
	other := SessionMatchScore(user, kadikoyLat, kadikoyLon, testSession("yüzme", model.SkillIntermediate, date), now)

	assert.Greater(t, favorite, other)
	assert.InDelta(t, 40.0, favorite-other, 1e-6)
}

func TestSessionMatchScoreSkillProximity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := testUser() // intermediate
	date := now.Add(24 * time.Hour)

	same := SessionMatchScore(user, kadikoyLat, kadikoyLon, testSession("futbol", model.SkillIntermediate, date), now)
	adjacent := SessionMatchScore(user, kadikoyLat, kadikoyLon, testSession("futbol", model.SkillBeginner, date), now)

	assert.Greater(t, same, adjacent)
	assert.InDelta(t, 12.5, same-adjacent, 1e-6)
}

func TestSessionMatchScoreDistanceDecay(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := testUser()
	date := now.Add(24 * time.Hour)

	near := testSession("futbol", model.SkillIntermediate, date)
	near.Latitude, near.Longitude = kadikoyLat, kadikoyLon

	far := testSession("futbol", model.SkillIntermediate, date)
	far.Latitude, far.Longitude = 39.9208, 32.8541 // Ankara, ~350 km

	nearScore := SessionMatchScore(user, kadikoyLat, kadikoyLon, near, now)
	farScore := SessionMatchScore(user, kadikoyLat, kadikoyLon, far, now)

	assert.Greater(t, nearScore, farScore)
}

func TestSessionMatchScorePastSessionNoRecency(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := testUser()

	past := SessionMatchScore(user, kadikoyLat, kadikoyLon, testSession("futbol", model.SkillIntermediate, now.Add(-2*time.Hour)), now)
	upcoming := SessionMatchScore(user, kadikoyLat, kadikoyLon, testSession("futbol", model.SkillIntermediate, now.Add(2*time.Hour)), now)

	assert.Greater(t, upcoming, past)
}

func TestSessionMatchScoreBounds(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := testUser()

	// meilleur cas plausible
	best := testSession("futbol", model.SkillIntermediate, now.Add(time.Hour))
	best.Latitude, best.Longitude = kadikoyLat, kadikoyLon

	score := SessionMatchScore(user, kadikoyLat, kadikoyLon, best, now)
	assert.LessOrEqual(t, score, 100.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestHaversineKm(t *testing.T) {
	// même point
	assert.InDelta(t, 0, HaversineKm(kadikoyLat, kadikoyLon, kadikoyLat, kadikoyLon), 1e-9)

	// Kadıköy-Beşiktaş: autour de 6 km
	d := HaversineKm(kadikoyLat, kadikoyLon, besiktasLat, besiktasLon)
	assert.Greater(t, d, 3.0)
	assert.Less(t, d, 12.0)
}
