package features

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nvara/voicebox/internal/features/panel"
	"github.com/nvara/voicebox/internal/player"
	"github.com/nvara/voicebox/internal/telegram"
)

func (h *Handlers) handlePlay(ctx context.Context, m *telegram.Message, args []string) {
	if m.Chat.ID > 0 {
		h.reply(ctx, m.Chat.ID, "Use /play in a group or channel. In private chat I can only search and hand out links.", nil)
		return
	}

	query := strings.TrimSpace(strings.Join(args, " "))
	h.handlePlayQuery(ctx, m, m.Chat.ID, query)
}

func (h *Handlers) handleCrossPlay(ctx context.Context, m *telegram.Message, args []string) {
	token, query := splitCrossPlayArgs(args)

	targetChatID, err := ResolveTarget(ctx, h.tg, m.Chat.ID, token)
	if err != nil {
		h.reply(ctx, m.Chat.ID, fmt.Sprintf("❌ Invalid target.\n%v", err), nil)
		return
	}

	h.handlePlayQuery(ctx, m, targetChatID, query)
}

// handlePlayQuery classifies the query and either queues a playable
// stream or answers with search/link guidance. Search results never feed
// the queue directly; the user resubmits a stream link.
func (h *Handlers) handlePlayQuery(ctx context.Context, m *telegram.Message, targetChatID int64, query string) {
	if query == "" {
		h.reply(ctx, m.Chat.ID, "Usage: /play <title|url>", nil)
		return
	}

	if player.IsStreamURL(query) {
		h.enqueueStream(ctx, m, targetChatID, query)
		return
	}

	if player.IsVideoHostURL(query) {
		h.reply(ctx, m.Chat.ID,
			"✅ Video link ready to open.\nFor voice-chat playback, send a direct stream link (.m3u8/.mp3).",
			panel.LinkKeyboard("Open", query))
		return
	}

	if !player.IsURL(query) {
		h.handleSearch(ctx, m, query)
		return
	}

	h.reply(ctx, m.Chat.ID,
		"That URL is not a directly playable audio/video stream.\nSend an .m3u8/.mp3/radio stream link to play it in the voice chat.",
		nil)
}

func (h *Handlers) enqueueStream(ctx context.Context, m *telegram.Message, targetChatID int64, source string) {
	track := player.Track{
		Title:     source,
		Source:    source,
		Requester: m.From.DisplayName(),
	}

	pos, err := h.orch.Enqueue(ctx, targetChatID, m.Chat.ID, track)
	if err != nil {
		if errors.Is(err, player.ErrQueueFull) {
			h.reply(ctx, m.Chat.ID, "❌ Queue is full.", nil)
			return
		}
		// Join failures were already announced through the notifier.
		h.log.Warn("enqueue failed",
			zap.Int64("chat_id", targetChatID),
			zap.Error(err))
		return
	}

	if pos > 0 {
		h.reply(ctx, m.Chat.ID, fmt.Sprintf("✅ Queued.\nPosition: %d", pos), nil)
	}
}

func (h *Handlers) handleSearch(ctx context.Context, m *telegram.Message, query string) {
	if !h.search.Enabled() {
		h.reply(ctx, m.Chat.ID,
			"I can help you search with this button (no scraping).\nSet YOUTUBE_API_KEY for inline results.\nFor voice-chat playback, use a direct stream link.",
			panel.LinkKeyboard("Open Search", panel.SearchURL(query)))
		return
	}

	results, err := h.search.Search(ctx, query)
	if err != nil {
		h.log.Warn("search failed", zap.String("query", query), zap.Error(err))
		h.reply(ctx, m.Chat.ID, "❌ Search failed, try again later.", nil)
		return
	}
	if len(results) == 0 {
		h.reply(ctx, m.Chat.ID, "❌ No results.", nil)
		return
	}

	h.reply(ctx, m.Chat.ID, panel.SearchResultsText(results), panel.SearchKeyboard(query, results))
}
