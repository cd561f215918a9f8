// Package panel renders the inline player control surface, the queue view
// and the search-result keyboards, plus the callback-data scheme the
// control buttons are tagged with.
package panel

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nvara/voicebox/internal/player"
	"github.com/nvara/voicebox/internal/search"
	"github.com/nvara/voicebox/internal/telegram"
)

const (
	CallbackPrefix = "pl"

	ActionPause = "pause"
	ActionSkip  = "skip"
	ActionStop  = "stop"
	ActionQueue = "queue"

	// Queued tracks shown before the overflow line.
	queueViewLimit = 15
)

// MakeCallbackData builds "pl:<action>:<chatID>" for a control button.
func MakeCallbackData(action string, chatID int64) string {
	return fmt.Sprintf("%s:%s:%d", CallbackPrefix, action, chatID)
}

// ParseCallbackData splits control-button callback data back into its
// action and target conversation.
func ParseCallbackData(data string) (action string, chatID int64, ok bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[0] != CallbackPrefix {
		return "", 0, false
	}

	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", 0, false
	}

	switch parts[1] {
	case ActionPause, ActionSkip, ActionStop, ActionQueue:
		return parts[1], id, true
	}
	return "", 0, false
}

// PlayerKeyboard is the four-button control surface. The pause button's
// label toggles with the paused state.
func PlayerKeyboard(chatID int64, paused bool) *telegram.InlineKeyboardMarkup {
	pauseLabel := "⏸ Pause"
	if paused {
		pauseLabel = "▶️ Resume"
	}

	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{
				{Text: pauseLabel, CallbackData: MakeCallbackData(ActionPause, chatID)},
				{Text: "⏭ Skip", CallbackData: MakeCallbackData(ActionSkip, chatID)},
			},
			{
				{Text: "⏹ Stop", CallbackData: MakeCallbackData(ActionStop, chatID)},
				{Text: "📜 Queue", CallbackData: MakeCallbackData(ActionQueue, chatID)},
			},
		},
	}
}

// NowPlayingText renders the announcement sent when a track starts.
func NowPlayingText(track player.Track) string {
	return fmt.Sprintf("🎶 Now playing:\n%s\nRequested by: %s", track.Title, track.Requester)
}

// QueueText renders the current conversation state: the playing track and
// up to queueViewLimit queued titles with an overflow count.
func QueueText(snap player.Snapshot) string {
	if snap.Playing == nil && len(snap.Queue) == 0 {
		return "Queue is empty."
	}

	var lines []string
	if snap.Playing != nil {
		lines = append(lines, fmt.Sprintf("🎶 Now: %s", snap.Playing.Title))
	}
	if len(snap.Queue) > 0 {
		lines = append(lines, "", "📜 Next:")
		for i, t := range snap.Queue {
			if i >= queueViewLimit {
				break
			}
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, t.Title))
		}
		if len(snap.Queue) > queueViewLimit {
			lines = append(lines, fmt.Sprintf("…and %d more.", len(snap.Queue)-queueViewLimit))
		}
	}
	return strings.Join(lines, "\n")
}

// SearchResultsText lists search hits as a numbered summary.
func SearchResultsText(results []search.Result) string {
	lines := make([]string, 0, len(results)+1)
	lines = append(lines, "🔎 Results (pick one):")
	for i, r := range results {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, r.Title))
	}
	return strings.Join(lines, "\n")
}

// SearchKeyboard links each result plus an open-search fallback row.
func SearchKeyboard(query string, results []search.Result) *telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(results)+1)
	for i, r := range results {
		rows = append(rows, []telegram.InlineKeyboardButton{
			{Text: fmt.Sprintf("%d. Open", i+1), URL: r.URL},
		})
	}
	rows = append(rows, []telegram.InlineKeyboardButton{
		{Text: "Open YouTube Search", URL: SearchURL(query)},
	})
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// SearchURL builds the watchable search-page URL for a keyword query.
func SearchURL(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return "https://www.youtube.com"
	}
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)
}

// LinkKeyboard is a single open-this-URL button.
func LinkKeyboard(label, target string) *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: label, URL: target}},
		},
	}
}
