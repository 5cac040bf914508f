package server

import (
	"testing"
	"time"
)

func TestRegisterAssignsUniqueIDs(t *testing.T) {
	l := NewLobby(5)
	a := l.RegisterClient("alice")
	b := l.RegisterClient("alice")

	if a.ID == b.ID {
		t.Error("Expected distinct session IDs for the same user")
	}
	if l.Active() != 2 {
		t.Errorf("Expected 2 active clients, got %d", l.Active())
	}

	l.UnregisterClient(a.ID)
	if l.Active() != 1 {
		t.Errorf("Expected 1 active client, got %d", l.Active())
	}
	if _, ok := <-a.EventsCh; ok {
		t.Error("Expected the events channel to be closed on unregister")
	}

	// Unregistering twice is harmless.
	l.UnregisterClient(a.ID)
}

func TestTopScoresKeepsBestPerUser(t *testing.T) {
	l := NewLobby(3)
	alice := l.RegisterClient("alice")
	bob := l.RegisterClient("bob")
	carol := l.RegisterClient("carol")
	dave := l.RegisterClient("dave")

	l.RecordScore(alice.ID, 120)
	l.RecordScore(bob.ID, 300)
	l.RecordScore(alice.ID, 80) // Below alice's best
	l.RecordScore(carol.ID, 120)
	l.RecordScore(dave.ID, 10)

	tests := []struct {
		username string
		score    int
	}{
		{"bob", 300},
		{"alice", 120}, // Reached 120 before carol
		{"carol", 120},
	}

	top := l.TopScores()
	if len(top) != len(tests) {
		t.Fatalf("Expected %d entries, got %d: %+v", len(tests), len(top), top)
	}
	for i, tt := range tests {
		if top[i].Username != tt.username || top[i].Score != tt.score {
			t.Errorf("Entry %d: expected %s=%d, got %s=%d", i, tt.username, tt.score, top[i].Username, top[i].Score)
		}
	}
}

func TestRecordScoreIgnoresUnknownClient(t *testing.T) {
	l := NewLobby(3)
	h := l.RegisterClient("eve")
	l.UnregisterClient(h.ID)

	l.RecordScore(h.ID, 500)
	if len(l.TopScores()) != 0 {
		t.Errorf("Expected empty board, got %+v", l.TopScores())
	}
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	l := NewLobby(3)
	h := l.RegisterClient("frank")

	go func() {
		ev := <-h.EventsCh
		if ev.Type == EventServerShutdown {
			l.UnregisterClient(h.ID)
		}
	}()

	if remaining := l.Shutdown(time.Second); remaining != 0 {
		t.Errorf("Expected every client to leave, %d remain", remaining)
	}
}

func TestShutdownTimesOut(t *testing.T) {
	l := NewLobby(3)
	l.RegisterClient("grace")

	start := time.Now()
	if remaining := l.Shutdown(20 * time.Millisecond); remaining != 1 {
		t.Errorf("Expected 1 lingering client, got %d", remaining)
	}
	if time.Since(start) > time.Second {
		t.Error("Expected Shutdown to give up at the timeout")
	}

	late := l.RegisterClient("heidi")
	select {
	case ev := <-late.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Errorf("Expected shutdown event, got %v", ev.Type)
		}
	default:
		t.Error("Expected a late joiner to be told about the shutdown")
	}
}
