// Package features routes incoming updates to command handlers and the
// inline-button callback path.
package features

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/nvara/voicebox/internal/database"
	"github.com/nvara/voicebox/internal/player"
	"github.com/nvara/voicebox/internal/search"
	"github.com/nvara/voicebox/internal/telegram"
)

type Handlers struct {
	tg       *telegram.Client
	orch     *player.Orchestrator
	registry *player.Registry
	search   *search.YouTubeClient
	panels   *database.PanelRepository
	log      *zap.Logger
}

func New(
	tg *telegram.Client,
	orch *player.Orchestrator,
	registry *player.Registry,
	searchClient *search.YouTubeClient,
	panels *database.PanelRepository,
	log *zap.Logger,
) *Handlers {
	return &Handlers{
		tg:       tg,
		orch:     orch,
		registry: registry,
		search:   searchClient,
		panels:   panels,
		log:      log,
	}
}

// Dispatch routes one update. Unknown commands and non-command messages
// are ignored.
func (h *Handlers) Dispatch(ctx context.Context, upd telegram.Update) {
	switch {
	case upd.CallbackQuery != nil:
		h.HandleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil && strings.HasPrefix(upd.Message.Text, "/"):
		h.dispatchCommand(ctx, upd.Message)
	}
}

func (h *Handlers) dispatchCommand(ctx context.Context, m *telegram.Message) {
	cmd, args := parseCommand(m.Text)

	switch cmd {
	case "start", "help":
		h.handleHelp(ctx, m)
	case "play":
		h.handlePlay(ctx, m, args)
	case "cplay":
		h.handleCrossPlay(ctx, m, args)
	case "pause":
		h.handlePause(ctx, m)
	case "resume":
		h.handleResume(ctx, m)
	case "skip":
		h.handleSkip(ctx, m)
	case "stop":
		h.handleStop(ctx, m)
	case "queue":
		h.handleQueue(ctx, m)
	}
}

// parseCommand splits "/play@SomeBot foo bar" into ("play", ["foo" "bar"]).
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil
	}

	cmd := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}

	return strings.ToLower(cmd), fields[1:]
}

// reply sends a message and logs the failure; command replies are not
// worth failing a handler over.
func (h *Handlers) reply(ctx context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) {
	if _, err := h.tg.SendMessage(ctx, chatID, text, markup); err != nil {
		h.log.Warn("reply failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handlers) handleHelp(ctx context.Context, m *telegram.Message) {
	const help = "🎵 Voicebox\n\n" +
		"Commands:\n" +
		"/play <stream url | title | video link>\n" +
		"/cplay <@channel|-100…id> <stream url | title | video link>\n" +
		"/pause, /resume, /skip, /stop, /queue\n\n" +
		"Playback needs an active voice chat in the target conversation."
	h.reply(ctx, m.Chat.ID, help, nil)
}
