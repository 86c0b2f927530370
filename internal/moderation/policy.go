package moderation

import (
	"strings"
	"sync"
)

// Policy porte la liste des mots interdits. Injectée dans le Moderator
// pour rendre la dépendance visible et testable (pas d'état global).
type Policy struct {
	mu           sync.RWMutex
	blockedWords []string
}

// Listes turque et anglaise fusionnées au démarrage
var turkishBlockedWords = []string{
	"aptal",
	"salak",
	"gerizekalı",
	"ahmak",
	"şerefsiz",
	"dolandırıcı",
	"sahtekar",
}

var englishBlockedWords = []string{
	"idiot",
	"stupid",
	"moron",
	"loser",
	"scammer",
	"fraudster",
}

// DefaultPolicy retourne la politique par défaut (listes TR + EN)
func DefaultPolicy() *Policy {
	words := make([]string, 0, len(turkishBlockedWords)+len(englishBlockedWords))
	words = append(words, turkishBlockedWords...)
	words = append(words, englishBlockedWords...)
	return &Policy{blockedWords: words}
}

// NewPolicy crée une politique avec une liste personnalisée
func NewPolicy(words []string) *Policy {
	copied := make([]string, len(words))
	copy(copied, words)
	return &Policy{blockedWords: copied}
}

// AddBlockedWord ajoute un mot à la liste au runtime.
// Non persisté: la liste repart des valeurs par défaut au redémarrage.
func (p *Policy) AddBlockedWord(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, existing := range p.blockedWords {
		if existing == word {
			return
		}
	}
	p.blockedWords = append(p.blockedWords, word)
}

// ContainsBlockedWord teste le contenu contre la liste (substring, insensible à la casse)
func (p *Policy) ContainsBlockedWord(content string) bool {
	lowered := strings.ToLower(content)

	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, word := range p.blockedWords {
		if strings.Contains(lowered, strings.ToLower(word)) {
			return true
		}
	}
	return false
}

// BlockedWords retourne une copie de la liste courante
func (p *Policy) BlockedWords() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]string, len(p.blockedWords))
	copy(out, p.blockedWords)
	return out
}
