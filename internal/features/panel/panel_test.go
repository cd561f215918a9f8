package panel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvara/voicebox/internal/player"
	"github.com/nvara/voicebox/internal/search"
)

func TestCallbackDataRoundTrip(t *testing.T) {
	for _, action := range []string{ActionPause, ActionSkip, ActionStop, ActionQueue} {
		data := MakeCallbackData(action, -1001234567)
		got, chatID, ok := ParseCallbackData(data)
		require.True(t, ok, "parse %q", data)
		assert.Equal(t, action, got)
		assert.Equal(t, int64(-1001234567), chatID)
	}
}

func TestParseCallbackData_Rejects(t *testing.T) {
	cases := []string{
		"",
		"pl:pause",
		"pl:pause:notanumber",
		"pl:dance:123",
		"other:pause:123",
		"pl:pause:1:extra",
	}
	for _, data := range cases {
		_, _, ok := ParseCallbackData(data)
		assert.False(t, ok, "expected reject for %q", data)
	}
}

func TestPlayerKeyboard_PauseLabelToggles(t *testing.T) {
	kb := PlayerKeyboard(42, false)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "⏸ Pause", kb.InlineKeyboard[0][0].Text)

	kb = PlayerKeyboard(42, true)
	assert.Equal(t, "▶️ Resume", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "pl:pause:42", kb.InlineKeyboard[0][0].CallbackData)
}

func TestQueueText(t *testing.T) {
	assert.Equal(t, "Queue is empty.", QueueText(player.Snapshot{}))

	snap := player.Snapshot{
		Playing: &player.Track{Title: "current"},
		Queue:   []player.Track{{Title: "next one"}, {Title: "after that"}},
	}
	text := QueueText(snap)
	assert.Contains(t, text, "🎶 Now: current")
	assert.Contains(t, text, "1. next one")
	assert.Contains(t, text, "2. after that")
	assert.NotContains(t, text, "more.")
}

func TestQueueText_Overflow(t *testing.T) {
	snap := player.Snapshot{}
	for i := 0; i < 20; i++ {
		snap.Queue = append(snap.Queue, player.Track{Title: fmt.Sprintf("t%d", i)})
	}

	text := QueueText(snap)
	assert.Contains(t, text, "15. t14")
	assert.NotContains(t, text, "16. t15")
	assert.Contains(t, text, "…and 5 more.")
}

func TestSearchKeyboard(t *testing.T) {
	results := []search.Result{
		{Title: "a", URL: "https://www.youtube.com/watch?v=1"},
		{Title: "b", URL: "https://www.youtube.com/watch?v=2"},
	}

	kb := SearchKeyboard("lofi beats", results)
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Equal(t, "https://www.youtube.com/watch?v=1", kb.InlineKeyboard[0][0].URL)
	assert.Equal(t, "https://www.youtube.com/results?search_query=lofi+beats", kb.InlineKeyboard[2][0].URL)
}

func TestSearchURL_Empty(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com", SearchURL("  "))
}
