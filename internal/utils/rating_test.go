package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingEligibilityAfterCooldown(t *testing.T) {
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	// plus de 60 minutes après le début
	for _, elapsed := range []time.Duration{
		61 * time.Minute,
		2 * time.Hour,
		48 * time.Hour,
	} {
		result := RatingEligibility(now.Add(-elapsed), now)
		assert.True(t, result.CanRate, "elapsed=%v", elapsed)
		assert.Empty(t, result.Reason)
		assert.Nil(t, result.HoursRemaining)
	}
}

func TestRatingEligibilityTooEarly(t *testing.T) {
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	// session commencée il y a 30 minutes → encore 1 heure (arrondi sup)
	result := RatingEligibility(now.Add(-30*time.Minute), now)

	assert.False(t, result.CanRate)
	assert.Equal(t, MsgTooEarlyToRate, result.Reason)
	require.NotNil(t, result.HoursRemaining)
	assert.Equal(t, 1, *result.HoursRemaining)
}

func TestRatingEligibilityFutureSession(t *testing.T) {
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	// session dans 2 heures → 3 heures d'attente (2h + cooldown, arrondi sup)
	result := RatingEligibility(now.Add(2*time.Hour), now)

	assert.False(t, result.CanRate)
	require.NotNil(t, result.HoursRemaining)
	assert.Equal(t, 3, *result.HoursRemaining)
}

func TestRatingEligibilityHoursRemainingAtLeastOne(t *testing.T) {
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	// balaye la fenêtre refusée par pas de 5 minutes
	for minutes := 0; minutes < 60; minutes += 5 {
		result := RatingEligibility(now.Add(-time.Duration(minutes)*time.Minute), now)
		assert.False(t, result.CanRate, "minutes=%d", minutes)
		require.NotNil(t, result.HoursRemaining, "minutes=%d", minutes)
		assert.GreaterOrEqual(t, *result.HoursRemaining, 1, "minutes=%d", minutes)
	}
}

func TestRatingEligibilityBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	// exactement 60 minutes: la fenêtre est exclusive, l'évaluation passe
	result := RatingEligibility(now.Add(-time.Hour), now)
	assert.True(t, result.CanRate)

	// 59 minutes: refusé
	result = RatingEligibility(now.Add(-59*time.Minute), now)
	assert.False(t, result.CanRate)
}
