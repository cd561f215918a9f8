package features

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nvara/voicebox/internal/features/panel"
	"github.com/nvara/voicebox/internal/telegram"
)

// HandleCallback services the inline control surface. Callback data
// carries (action, target conversation); the panel message itself may
// live in a different chat than the playback target.
func (h *Handlers) HandleCallback(ctx context.Context, q *telegram.CallbackQuery) {
	action, chatID, ok := panel.ParseCallbackData(q.Data)
	if !ok {
		h.answer(ctx, q.ID, "Invalid button.", true)
		return
	}

	announceChatID := chatID
	if q.Message != nil {
		announceChatID = q.Message.Chat.ID
	}

	switch action {
	case panel.ActionPause:
		h.callbackTogglePause(ctx, q, chatID)
	case panel.ActionSkip:
		h.callbackSkip(ctx, q, chatID, announceChatID)
	case panel.ActionStop:
		h.callbackStop(ctx, q, chatID)
	case panel.ActionQueue:
		h.answer(ctx, q.ID, "Queue", false)
		snap := h.registry.GetOrCreate(chatID).Snapshot()
		h.reply(ctx, announceChatID, panel.QueueText(snap), nil)
	}
}

func (h *Handlers) callbackTogglePause(ctx context.Context, q *telegram.CallbackQuery, chatID int64) {
	snap := h.registry.GetOrCreate(chatID).Snapshot()
	if snap.Playing == nil {
		h.answer(ctx, q.ID, "No playback.", true)
		return
	}

	var err error
	var nowPaused bool
	if snap.Paused {
		err = h.orch.Resume(ctx, chatID)
		nowPaused = false
	} else {
		err = h.orch.Pause(ctx, chatID)
		nowPaused = true
	}

	if err != nil {
		h.answer(ctx, q.ID, fmt.Sprintf("Failed: %v", err), true)
		return
	}

	if nowPaused {
		h.answer(ctx, q.ID, "Paused", false)
	} else {
		h.answer(ctx, q.ID, "Resumed", false)
	}

	if q.Message != nil {
		err := h.tg.EditMessageReplyMarkup(ctx, q.Message.Chat.ID, q.Message.MessageID,
			panel.PlayerKeyboard(chatID, nowPaused))
		if err != nil {
			h.log.Debug("panel keyboard update failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}

func (h *Handlers) callbackSkip(ctx context.Context, q *telegram.CallbackQuery, chatID, announceChatID int64) {
	snap := h.registry.GetOrCreate(chatID).Snapshot()
	if snap.Playing == nil {
		h.answer(ctx, q.ID, "No playback.", true)
		return
	}

	h.answer(ctx, q.ID, "Skipping...", false)
	if err := h.orch.Advance(ctx, chatID, announceChatID); err != nil {
		h.reply(ctx, announceChatID, fmt.Sprintf("❌ Failed to skip.\n%v", err), nil)
	}
}

func (h *Handlers) callbackStop(ctx context.Context, q *telegram.CallbackQuery, chatID int64) {
	if err := h.orch.Stop(ctx, chatID); err != nil {
		h.log.Warn("stop failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	if err := h.panels.Delete(chatID); err != nil {
		h.log.Debug("panel delete failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	h.answer(ctx, q.ID, "Stopped", false)

	if q.Message != nil {
		err := h.tg.EditMessageText(ctx, q.Message.Chat.ID, q.Message.MessageID,
			"⏹ Stopped. Left the voice chat.", nil)
		if err != nil {
			h.log.Debug("panel edit failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}

func (h *Handlers) answer(ctx context.Context, callbackID, text string, alert bool) {
	if err := h.tg.AnswerCallbackQuery(ctx, callbackID, text, alert); err != nil {
		h.log.Debug("callback answer failed", zap.Error(err))
	}
}
