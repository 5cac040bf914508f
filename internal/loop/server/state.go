package server

import (
	"slices"
	"sync"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	seq      uint64 // Earlier scores win ties
}

// scoreboard keeps the best score per username, capped at size entries.
type scoreboard struct {
	mu      sync.Mutex
	size    int
	best    map[string]TopScoreEntry
	nextSeq uint64
}

func newScoreboard(size int) *scoreboard {
	return &scoreboard{
		size: size,
		best: make(map[string]TopScoreEntry),
	}
}

// offer records score for username. It returns a fresh copy of the top
// entries and whether it changed.
func (b *scoreboard) offer(username string, score int) ([]TopScoreEntry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.size == 0 {
		return nil, false
	}
	if prev, ok := b.best[username]; ok && prev.Score >= score {
		return nil, false
	}
	b.nextSeq++
	b.best[username] = TopScoreEntry{Username: username, Score: score, seq: b.nextSeq}

	top := make([]TopScoreEntry, 0, len(b.best))
	for _, e := range b.best {
		top = append(top, e)
	}
	slices.SortFunc(top, func(a, b TopScoreEntry) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return int(a.seq) - int(b.seq)
	})

	// Forget players who fell off the board so the map stays bounded.
	if len(top) > b.size {
		for _, e := range top[b.size:] {
			delete(b.best, e.Username)
		}
		top = top[:b.size]
	}
	return top, true
}
