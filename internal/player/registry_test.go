package player

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry()

	first := r.GetOrCreate(-1001234)
	second := r.GetOrCreate(-1001234)

	assert.Same(t, first, second, "same chat must return the same state")
	assert.Equal(t, 1, r.Len())

	other := r.GetOrCreate(42)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	states := make([]*ChatState, 64)
	for i := range states {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			states[i] = r.GetOrCreate(int64(i % 4))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, r.Len())
	for i := range states {
		assert.Same(t, states[i%4], states[i], "one state per chat id")
	}
}

func TestChatState_SnapshotIsACopy(t *testing.T) {
	st := &ChatState{
		queue:   []Track{{Title: "a", Source: "https://x/a.mp3"}},
		playing: &Track{Title: "now", Source: "https://x/now.mp3"},
		paused:  true,
	}

	snap := st.Snapshot()
	snap.Queue[0].Title = "mutated"
	snap.Playing.Title = "mutated"

	assert.Equal(t, "a", st.queue[0].Title)
	assert.Equal(t, "now", st.playing.Title)
	assert.True(t, snap.Paused)
}
