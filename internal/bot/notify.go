package bot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nvara/voicebox/internal/database"
	"github.com/nvara/voicebox/internal/features/panel"
	"github.com/nvara/voicebox/internal/player"
	"github.com/nvara/voicebox/internal/telegram"
	"github.com/nvara/voicebox/internal/voice"
)

// announcer implements player.Notifier on top of the messaging transport.
// It also keeps the panel repository pointed at the freshest control
// message per conversation.
type announcer struct {
	tg     *telegram.Client
	panels *database.PanelRepository
	log    *zap.Logger
}

func (a *announcer) NowPlaying(ctx context.Context, announceChatID, chatID int64, track player.Track) {
	msg, err := a.tg.SendMessage(ctx, announceChatID,
		panel.NowPlayingText(track),
		panel.PlayerKeyboard(chatID, false))
	if err != nil {
		a.log.Warn("now-playing announce failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}

	entry := database.PanelEntry{
		ChatID:      chatID,
		PanelChatID: announceChatID,
		MessageID:   msg.MessageID,
	}
	if err := a.panels.Upsert(entry); err != nil {
		a.log.Debug("panel entry upsert failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (a *announcer) QueueDrained(ctx context.Context, announceChatID, chatID int64) {
	if _, err := a.tg.SendMessage(ctx, announceChatID, "Queue finished. Left the voice chat.", nil); err != nil {
		a.log.Warn("queue-drained announce failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	if err := a.panels.Delete(chatID); err != nil {
		a.log.Debug("panel entry delete failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (a *announcer) JoinFailed(ctx context.Context, announceChatID int64, err error) {
	text := fmt.Sprintf("❌ Failed to join/play.\n%v", err)
	if errors.Is(err, voice.ErrNoActiveCall) {
		text = "❌ The voice chat is not active. Start it first, then /play again."
	}

	if _, sendErr := a.tg.SendMessage(ctx, announceChatID, text, nil); sendErr != nil {
		a.log.Warn("join-failed announce failed", zap.Int64("chat_id", announceChatID), zap.Error(sendErr))
	}
}
