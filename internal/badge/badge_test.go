package badge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierForZero(t *testing.T) {
	tier := TierFor(0)

	assert.Equal(t, "Yeni", tier.Level)
	require.NotNil(t, tier.NextMilestone)
	assert.Equal(t, 3, *tier.NextMilestone)
}

func TestTierForSuperstar(t *testing.T) {
	tier := TierFor(100)

	assert.Equal(t, "Süperstar", tier.Level)
	assert.Nil(t, tier.NextMilestone)
}

func TestTierBreakpoints(t *testing.T) {
	cases := []struct {
		count int
		level string
		next  *int
	}{
		{0, "Yeni", intPtr(3)},
		{2, "Yeni", intPtr(3)},
		{3, "İyi Başlangıç", intPtr(10)},
		{9, "İyi Başlangıç", intPtr(10)},
		{10, "Beğenilen", intPtr(25)},
		{24, "Beğenilen", intPtr(25)},
		{25, "Çok Beğenilen", intPtr(50)},
		{49, "Çok Beğenilen", intPtr(50)},
		{50, "Efsane", intPtr(100)},
		{99, "Efsane", intPtr(100)},
		{100, "Süperstar", nil},
		{250, "Süperstar", nil},
	}

	for _, c := range cases {
		tier := TierFor(c.count)
		assert.Equal(t, c.level, tier.Level, "count=%d", c.count)
		if c.next == nil {
			assert.Nil(t, tier.NextMilestone, "count=%d", c.count)
		} else {
			require.NotNil(t, tier.NextMilestone, "count=%d", c.count)
			assert.Equal(t, *c.next, *tier.NextMilestone, "count=%d", c.count)
		}
	}
}

// Le prochain palier est toujours strictement supérieur au compteur courant
func TestNextMilestoneAlwaysAhead(t *testing.T) {
	for n := 0; n <= 150; n++ {
		tier := TierFor(n)
		if tier.NextMilestone != nil {
			assert.Greater(t, *tier.NextMilestone, n, "count=%d", n)
		}
	}
}

// Les niveaux ne régressent jamais quand le compteur augmente
func TestTierMonotonic(t *testing.T) {
	rank := map[string]int{
		"Yeni":          0,
		"İyi Başlangıç": 1,
		"Beğenilen":     2,
		"Çok Beğenilen": 3,
		"Efsane":        4,
		"Süperstar":     5,
	}

	prev := -1
	for n := 0; n <= 150; n++ {
		current := rank[TierFor(n).Level]
		assert.GreaterOrEqual(t, current, prev, "count=%d", n)
		prev = current
	}
}

func intPtr(v int) *int { return &v }
