package player

import "sync"

// Registry maps conversation ids to their ChatState. States are created
// lazily on first access and live for the process lifetime; eviction is a
// deliberate non-feature for now, which is why the registry is an injected
// object rather than a package global.
type Registry struct {
	mu    sync.Mutex
	chats map[int64]*ChatState
}

func NewRegistry() *Registry {
	return &Registry{
		chats: make(map[int64]*ChatState),
	}
}

// GetOrCreate returns the state for chatID, inserting an empty one if the
// conversation has never been seen. Safe for concurrent use; the registry
// lock covers only the lookup, never a transport call.
func (r *Registry) GetOrCreate(chatID int64) *ChatState {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.chats[chatID]; ok {
		return st
	}

	st := &ChatState{}
	r.chats[chatID] = st
	return st
}

// Len reports how many conversations have state.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chats)
}
