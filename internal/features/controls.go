package features

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nvara/voicebox/internal/features/panel"
	"github.com/nvara/voicebox/internal/player"
	"github.com/nvara/voicebox/internal/telegram"
)

func (h *Handlers) handlePause(ctx context.Context, m *telegram.Message) {
	err := h.orch.Pause(ctx, m.Chat.ID)
	switch {
	case errors.Is(err, player.ErrNothingPlaying):
		h.reply(ctx, m.Chat.ID, "Nothing is playing.", nil)
	case err != nil:
		h.reply(ctx, m.Chat.ID, fmt.Sprintf("❌ Failed to pause.\n%v", err), nil)
	default:
		h.reply(ctx, m.Chat.ID, "⏸ Paused.", panel.PlayerKeyboard(m.Chat.ID, true))
	}
}

func (h *Handlers) handleResume(ctx context.Context, m *telegram.Message) {
	err := h.orch.Resume(ctx, m.Chat.ID)
	switch {
	case errors.Is(err, player.ErrNothingPlaying):
		h.reply(ctx, m.Chat.ID, "Nothing is playing.", nil)
	case err != nil:
		h.reply(ctx, m.Chat.ID, fmt.Sprintf("❌ Failed to resume.\n%v", err), nil)
	default:
		h.reply(ctx, m.Chat.ID, "▶️ Resumed.", panel.PlayerKeyboard(m.Chat.ID, false))
	}
}

func (h *Handlers) handleSkip(ctx context.Context, m *telegram.Message) {
	snap := h.registry.GetOrCreate(m.Chat.ID).Snapshot()
	if snap.Playing == nil {
		h.reply(ctx, m.Chat.ID, "Nothing is playing.", nil)
		return
	}

	h.reply(ctx, m.Chat.ID, "⏭ Skipping...", nil)
	if err := h.orch.Advance(ctx, m.Chat.ID, m.Chat.ID); err != nil {
		h.reply(ctx, m.Chat.ID, fmt.Sprintf("❌ Failed to skip.\n%v", err), nil)
	}
}

func (h *Handlers) handleStop(ctx context.Context, m *telegram.Message) {
	if err := h.orch.Stop(ctx, m.Chat.ID); err != nil {
		h.log.Warn("stop failed", zap.Int64("chat_id", m.Chat.ID), zap.Error(err))
	}
	if err := h.panels.Delete(m.Chat.ID); err != nil {
		h.log.Debug("panel delete failed", zap.Int64("chat_id", m.Chat.ID), zap.Error(err))
	}
	h.reply(ctx, m.Chat.ID, "⏹ Stopped. Left the voice chat.", nil)
}

func (h *Handlers) handleQueue(ctx context.Context, m *telegram.Message) {
	snap := h.registry.GetOrCreate(m.Chat.ID).Snapshot()
	if snap.Playing == nil && len(snap.Queue) == 0 {
		h.reply(ctx, m.Chat.ID, "Queue is empty.", nil)
		return
	}
	h.reply(ctx, m.Chat.ID, panel.QueueText(snap), panel.PlayerKeyboard(m.Chat.ID, snap.Paused))
}
