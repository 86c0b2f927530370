package moderation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerateSessionTitleTooShort(t *testing.T) {
	m := NewModerator(nil)

	result := m.ModerateSessionTitle("Hi")

	assert.False(t, result.IsAllowed)
	assert.Equal(t, "Title is too short (min 3 characters)", result.Reason)
}

func TestModerateSessionTitleTooLong(t *testing.T) {
	m := NewModerator(nil)

	result := m.ModerateSessionTitle(strings.Repeat("ab", 51))

	assert.False(t, result.IsAllowed)
	assert.Equal(t, "Title is too long (max 100 characters)", result.Reason)
}

func TestModerateChatMessageEmpty(t *testing.T) {
	m := NewModerator(nil)

	for _, content := range []string{"", "   ", "\t\n"} {
		result := m.ModerateChatMessage(content)
		assert.False(t, result.IsAllowed, "content %q should be rejected", content)
	}
}

func TestModerateOptionalKindsAllowEmpty(t *testing.T) {
	m := NewModerator(nil)

	desc := m.ModerateSessionDescription("   ")
	bio := m.ModerateUserBio("")

	assert.True(t, desc.IsAllowed)
	assert.Empty(t, desc.FilteredContent)
	assert.True(t, bio.IsAllowed)
}

func TestModerateChatMessageRepeatedChars(t *testing.T) {
	m := NewModerator(nil)

	// 10 caractères identiques consécutifs
	result := m.ModerateChatMessage("AAAAAAAAAA")

	assert.False(t, result.IsAllowed)
	assert.Equal(t, "Content looks like spam", result.Reason)
}

func TestModerateChatMessageUppercaseRun(t *testing.T) {
	m := NewModerator(nil)

	result := m.ModerateChatMessage("COME PLAY WITH US NOW EVERYONE")

	assert.False(t, result.IsAllowed)
	assert.Equal(t, "Content looks like spam", result.Reason)
}

func TestModerateChatMessageURL(t *testing.T) {
	m := NewModerator(nil)

	for _, content := range []string{
		"check this out https://spam.example.com",
		"visit www.cheap-stuff.io today",
	} {
		result := m.ModerateChatMessage(content)
		assert.False(t, result.IsAllowed, "content %q should be rejected", content)
	}
}

func TestModerateBlockedWordsCaseInsensitive(t *testing.T) {
	m := NewModerator(nil)

	result := m.ModerateChatMessage("sen tam bir SALAK gibisin")

	assert.False(t, result.IsAllowed)
	assert.Equal(t, "Content contains inappropriate language", result.Reason)
}

func TestModerateAllowsNormalContent(t *testing.T) {
	m := NewModerator(nil)

	result := m.ModerateChatMessage("  Yarın sahada görüşürüz, 18:00 uygun mu?  ")

	require.True(t, result.IsAllowed)
	assert.Equal(t, "Yarın sahada görüşürüz, 18:00 uygun mu?", result.FilteredContent)
}

// Modérer la sortie filtrée doit redonner le même verdict
func TestModerateIdempotentOnFilteredContent(t *testing.T) {
	m := NewModerator(nil)

	inputs := []string{
		"  hello there  ",
		"Basketbol maçı arıyorum",
		"short",
	}

	for _, input := range inputs {
		first := m.ModerateChatMessage(input)
		require.True(t, first.IsAllowed)

		second := m.ModerateChatMessage(first.FilteredContent)
		assert.Equal(t, first.IsAllowed, second.IsAllowed)
		assert.Equal(t, first.FilteredContent, second.FilteredContent)
	}
}

func TestAddBlockedWord(t *testing.T) {
	policy := NewPolicy([]string{"spamword"})
	m := NewModerator(policy)

	assert.True(t, m.ModerateChatMessage("yeni bir kelime").IsAllowed)

	policy.AddBlockedWord("Kelime")

	result := m.ModerateChatMessage("yeni bir kelime")
	assert.False(t, result.IsAllowed)
}

func TestAddBlockedWordDeduplicates(t *testing.T) {
	policy := NewPolicy(nil)

	policy.AddBlockedWord("foo")
	policy.AddBlockedWord("  FOO ")
	policy.AddBlockedWord("")

	assert.Len(t, policy.BlockedWords(), 1)
}

func TestModerateDescriptionTooLong(t *testing.T) {
	m := NewModerator(nil)

	result := m.ModerateSessionDescription(strings.Repeat("x", 1001))

	assert.False(t, result.IsAllowed)
	assert.Equal(t, "Description is too long (max 1000 characters)", result.Reason)
}

func TestModerateBioTooLong(t *testing.T) {
	m := NewModerator(nil)

	result := m.ModerateUserBio(strings.Repeat("y", 501))

	assert.False(t, result.IsAllowed)
	assert.Equal(t, "Bio is too long (max 500 characters)", result.Reason)
}
