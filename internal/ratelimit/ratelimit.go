package ratelimit

import (
	"sync"
	"time"
)

// Valeurs par défaut: 5 messages par minute
const (
	DefaultMaxMessages = 5
	DefaultWindow      = time.Minute
)

// Limiter est un rate limiter à fenêtre glissante, en mémoire, par utilisateur.
// Best-effort uniquement: non persisté, non partagé entre instances,
// remis à zéro au redémarrage du serveur.
type Limiter struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	now     func() time.Time
}

func NewLimiter() *Limiter {
	return &Limiter{
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// IsLimited applique les valeurs par défaut (5 messages / 60s)
func (l *Limiter) IsLimited(userID string) bool {
	return l.IsLimitedWithin(userID, DefaultMaxMessages, DefaultWindow)
}

// IsLimitedWithin purge les entrées expirées puis vérifie la fenêtre.
// Si la limite est atteinte, l'appel n'est PAS enregistré; sinon
// l'horodatage courant est ajouté à la fenêtre.
func (l *Limiter) IsLimitedWithin(userID string, maxMessages int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-window)

	kept := l.windows[userID][:0]
	for _, ts := range l.windows[userID] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= maxMessages {
		l.windows[userID] = kept
		return true
	}

	l.windows[userID] = append(kept, now)
	return false
}

// Reset vide la fenêtre d'un utilisateur
func (l *Limiter) Reset(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, userID)
}
