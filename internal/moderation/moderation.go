package moderation

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifie le type de contenu à modérer
type Kind string

const (
	KindChatMessage        Kind = "chat_message"
	KindSessionTitle       Kind = "session_title"
	KindSessionDescription Kind = "session_description"
	KindUserBio            Kind = "user_bio"
)

// Length bounds per content kind
const (
	MaxChatMessageLen = 2000
	MinTitleLen       = 3
	MaxTitleLen       = 100
	MaxDescriptionLen = 1000
	MaxBioLen         = 500
)

// Result est le verdict de modération pour un contenu donné
type Result struct {
	IsAllowed       bool   `json:"isAllowed"`
	Reason          string `json:"reason,omitempty"`
	FilteredContent string `json:"filteredContent,omitempty"`
}

// Moderator valide le contenu libre saisi par les utilisateurs avant persistance.
// Toutes les règles sont pures: aucune I/O, premier échec gagne.
type Moderator struct {
	policy *Policy
}

func NewModerator(policy *Policy) *Moderator {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Moderator{policy: policy}
}

var (
	// ≥20 consecutive uppercase letters/spaces reads as shouting
	uppercaseRunRe = regexp.MustCompile(`[A-Z ]{20,}`)
	// URL-like: at least 5 non-space chars after the scheme/prefix
	urlRe = regexp.MustCompile(`(?i)(https?://|www\.)\S{5,}`)
)

// Moderate applique les règles dans l'ordre: vide, longueur, mots interdits, spam.
// En cas de succès FilteredContent contient l'entrée trimée.
func (m *Moderator) Moderate(content string, kind Kind) Result {
	trimmed := strings.TrimSpace(content)

	if trimmed == "" {
		// description et bio sont optionnelles
		if kind == KindSessionDescription || kind == KindUserBio {
			return Result{IsAllowed: true, FilteredContent: ""}
		}
		if kind == KindSessionTitle {
			return Result{IsAllowed: false, Reason: "Title cannot be empty"}
		}
		return Result{IsAllowed: false, Reason: "Message cannot be empty"}
	}

	if reason := m.checkLength(trimmed, kind); reason != "" {
		return Result{IsAllowed: false, Reason: reason}
	}

	if m.policy.ContainsBlockedWord(trimmed) {
		return Result{IsAllowed: false, Reason: "Content contains inappropriate language"}
	}

	if isSpam(trimmed) {
		return Result{IsAllowed: false, Reason: "Content looks like spam"}
	}

	return Result{IsAllowed: true, FilteredContent: trimmed}
}

// ModerateChatMessage valide un message de chat (1-2000 caractères)
func (m *Moderator) ModerateChatMessage(content string) Result {
	return m.Moderate(content, KindChatMessage)
}

// ModerateSessionTitle valide un titre de session (3-100 caractères)
func (m *Moderator) ModerateSessionTitle(content string) Result {
	return m.Moderate(content, KindSessionTitle)
}

// ModerateSessionDescription valide une description (optionnelle, max 1000)
func (m *Moderator) ModerateSessionDescription(content string) Result {
	return m.Moderate(content, KindSessionDescription)
}

// ModerateUserBio valide une bio utilisateur (optionnelle, max 500)
func (m *Moderator) ModerateUserBio(content string) Result {
	return m.Moderate(content, KindUserBio)
}

func (m *Moderator) checkLength(content string, kind Kind) string {
	length := len([]rune(content))

	switch kind {
	case KindChatMessage:
		if length > MaxChatMessageLen {
			return fmt.Sprintf("Message is too long (max %d characters)", MaxChatMessageLen)
		}
	case KindSessionTitle:
		if length < MinTitleLen {
			return fmt.Sprintf("Title is too short (min %d characters)", MinTitleLen)
		}
		if length > MaxTitleLen {
			return fmt.Sprintf("Title is too long (max %d characters)", MaxTitleLen)
		}
	case KindSessionDescription:
		if length > MaxDescriptionLen {
			return fmt.Sprintf("Description is too long (max %d characters)", MaxDescriptionLen)
		}
	case KindUserBio:
		if length > MaxBioLen {
			return fmt.Sprintf("Bio is too long (max %d characters)", MaxBioLen)
		}
	}

	return ""
}

// isSpam détecte les patterns de spam: répétition de caractères,
// texte en majuscules, liens
func isSpam(content string) bool {
	if hasRepeatedRun(content, 6) {
		return true
	}
	if uppercaseRunRe.MatchString(content) {
		return true
	}
	if urlRe.MatchString(content) {
		return true
	}
	return false
}

// hasRepeatedRun détecte un même caractère répété au moins n fois de suite.
// RE2 ne supporte pas les backreferences, donc boucle manuelle.
func hasRepeatedRun(content string, n int) bool {
	var prev rune
	count := 0
	for _, r := range content {
		if r == prev {
			count++
			if count >= n {
				return true
			}
		} else {
			prev = r
			count = 1
		}
	}
	return false
}
