// Package server holds the lobby shared by every connected player. Each
// player runs an independent world; the lobby only tracks who is connected,
// keeps the scoreboard and broadcasts shutdown.
package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Lobby tracks connected sessions and their best scores.
type Lobby struct {
	clients map[uuid.UUID]*ClientHandle
	mu      sync.RWMutex

	board     *scoreboard
	topScores atomic.Pointer[[]TopScoreEntry] // Read without locking by renderers
	boardSize int
	closing   atomic.Bool
}

// ClientHandle represents a session's membership in the lobby.
type ClientHandle struct {
	ID       uuid.UUID
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to the client (shutdown, etc.)
}

// ClientEvent represents an event sent from the lobby to a client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// NewLobby creates a lobby that keeps the best boardSize scores.
func NewLobby(boardSize int) *Lobby {
	l := &Lobby{
		clients:   make(map[uuid.UUID]*ClientHandle),
		board:     newScoreboard(max(boardSize, 0)),
		boardSize: max(boardSize, 0),
	}
	empty := []TopScoreEntry{}
	l.topScores.Store(&empty)
	return l
}

// RegisterClient registers a new client with the given username and returns its handle.
func (l *Lobby) RegisterClient(username string) *ClientHandle {
	handle := &ClientHandle{
		ID:       uuid.New(),
		Username: username,
		EventsCh: make(chan ClientEvent, 4),
	}

	l.mu.Lock()
	l.clients[handle.ID] = handle
	l.mu.Unlock()

	// A client joining during shutdown hears about it right away.
	if l.closing.Load() {
		handle.notify(ClientEvent{Type: EventServerShutdown})
	}
	return handle
}

// UnregisterClient removes a client. Its events channel is closed.
func (l *Lobby) UnregisterClient(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if handle, ok := l.clients[id]; ok {
		close(handle.EventsCh)
		delete(l.clients, id)
	}
}

// Active returns the number of connected clients.
func (l *Lobby) Active() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.clients)
}

// RecordScore offers a finished game's score to the scoreboard.
// Only each player's best score is kept.
func (l *Lobby) RecordScore(id uuid.UUID, score int) {
	l.mu.RLock()
	handle, ok := l.clients[id]
	l.mu.RUnlock()
	if !ok {
		return
	}

	if top, changed := l.board.offer(handle.Username, score); changed {
		l.topScores.Store(&top)
	}
}

// TopScores returns the current leaderboard, best first.
// The returned slice must not be modified.
func (l *Lobby) TopScores() []TopScoreEntry {
	return *l.topScores.Load()
}

// Shutdown notifies all connected clients and waits for them to
// disconnect, up to the given timeout. Returns the number still connected.
func (l *Lobby) Shutdown(timeout time.Duration) int {
	l.closing.Store(true)

	l.mu.RLock()
	for _, handle := range l.clients {
		handle.notify(ClientEvent{Type: EventServerShutdown})
	}
	l.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if remaining := l.Active(); remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			return l.Active()
		case <-ticker.C:
		}
	}
}

// notify delivers an event without blocking; a full queue drops it.
func (h *ClientHandle) notify(ev ClientEvent) {
	select {
	case h.EventsCh <- ev:
	default:
	}
}
