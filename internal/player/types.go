package player

import "sync"

// Track is one accepted playback request. Immutable once created.
type Track struct {
	Title     string
	Source    string
	Requester string
}

// ChatState holds the playback state of a single conversation. All
// mutation goes through the Orchestrator, which serializes access with the
// embedded mutex; the UI layer only ever reads through Snapshot.
type ChatState struct {
	mu      sync.Mutex
	queue   []Track
	playing *Track
	paused  bool
}

// Snapshot is a point-in-time copy of a conversation's state, safe to
// render without holding the state lock.
type Snapshot struct {
	Playing *Track
	Queue   []Track
	Paused  bool
}

func (s *ChatState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Paused: s.paused}
	if s.playing != nil {
		playing := *s.playing
		snap.Playing = &playing
	}
	if len(s.queue) > 0 {
		snap.Queue = make([]Track, len(s.queue))
		copy(snap.Queue, s.queue)
	}
	return snap
}
