package player

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/nvara/voicebox/internal/voice"
)

var (
	ErrNothingPlaying = errors.New("nothing is playing")
	ErrQueueFull      = errors.New("queue is full")
)

// Notifier delivers user-facing announcements for orchestrator-initiated
// transitions. announceChatID is where the message goes (the chat the
// command came from), chatID is the conversation the playback targets —
// they differ for cross-posted play commands.
type Notifier interface {
	NowPlaying(ctx context.Context, announceChatID, chatID int64, track Track)
	QueueDrained(ctx context.Context, announceChatID, chatID int64)
	JoinFailed(ctx context.Context, announceChatID int64, err error)
}

// Orchestrator drives the per-conversation playback state machine. Every
// operation acquires the conversation's state lock and holds it across the
// transport call, so two operations on the same conversation can never
// interleave; different conversations proceed independently.
type Orchestrator struct {
	registry *Registry
	calls    voice.Caller
	notify   Notifier
	maxQueue int
	log      *zap.Logger
}

func NewOrchestrator(registry *Registry, calls voice.Caller, notify Notifier, maxQueue int, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		calls:    calls,
		notify:   notify,
		maxQueue: maxQueue,
		log:      log,
	}
}

// Enqueue appends the track. If nothing is playing the track starts
// immediately (position 0); otherwise the returned position is the track's
// 1-based slot in the queue.
func (o *Orchestrator) Enqueue(ctx context.Context, chatID, announceChatID int64, track Track) (int, error) {
	st := o.registry.GetOrCreate(chatID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if o.maxQueue > 0 && len(st.queue) >= o.maxQueue {
		return 0, ErrQueueFull
	}

	st.queue = append(st.queue, track)

	if st.playing == nil {
		if err := o.joinAndPlayLocked(ctx, st, chatID, announceChatID); err != nil {
			return 0, err
		}
		return 0, nil
	}

	return len(st.queue), nil
}

// AttemptJoinAndPlay starts playback from the queue head if the
// conversation is idle. A no-op when something is already playing or the
// queue is empty, so duplicate triggers are harmless.
func (o *Orchestrator) AttemptJoinAndPlay(ctx context.Context, chatID, announceChatID int64) error {
	st := o.registry.GetOrCreate(chatID)
	st.mu.Lock()
	defer st.mu.Unlock()
	return o.joinAndPlayLocked(ctx, st, chatID, announceChatID)
}

func (o *Orchestrator) joinAndPlayLocked(ctx context.Context, st *ChatState, chatID, announceChatID int64) error {
	if st.playing != nil || len(st.queue) == 0 {
		return nil
	}

	next := st.queue[0]
	st.queue = st.queue[1:]
	st.playing = &next
	st.paused = false

	if err := o.calls.JoinAndStream(ctx, chatID, next.Source); err != nil {
		// The track is dropped, not requeued: the operator restarts the
		// request once the live call exists.
		st.playing = nil
		if o.notify != nil {
			o.notify.JoinFailed(ctx, announceChatID, err)
		}
		return err
	}

	if o.notify != nil {
		o.notify.NowPlaying(ctx, announceChatID, chatID, next)
	}
	return nil
}

// Advance moves to the next queued track, or leaves the call when the
// queue is exhausted. The call is assumed active: advancing uses
// change-stream, never join.
func (o *Orchestrator) Advance(ctx context.Context, chatID, announceChatID int64) error {
	st := o.registry.GetOrCreate(chatID)
	st.mu.Lock()
	defer st.mu.Unlock()
	return o.advanceLocked(ctx, st, chatID, announceChatID)
}

func (o *Orchestrator) advanceLocked(ctx context.Context, st *ChatState, chatID, announceChatID int64) error {
	st.paused = false

	if len(st.queue) == 0 {
		st.playing = nil
		o.leaveBestEffort(ctx, chatID)
		if o.notify != nil {
			o.notify.QueueDrained(ctx, announceChatID, chatID)
		}
		return nil
	}

	next := st.queue[0]
	st.queue = st.queue[1:]
	st.playing = &next

	if err := o.calls.ChangeStream(ctx, chatID, next.Source); err != nil {
		// Fall back to idle instead of pretending the new track plays.
		st.playing = nil
		return err
	}

	if o.notify != nil {
		o.notify.NowPlaying(ctx, announceChatID, chatID, next)
	}
	return nil
}

// Pause pauses the current stream. The transport call is a pass-through
// even when already paused; the flag only flips on transport success.
func (o *Orchestrator) Pause(ctx context.Context, chatID int64) error {
	st := o.registry.GetOrCreate(chatID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.playing == nil {
		return ErrNothingPlaying
	}

	if err := o.calls.Pause(ctx, chatID); err != nil {
		return err
	}

	st.paused = true
	return nil
}

// Resume resumes the current stream. Same pass-through semantics as Pause.
func (o *Orchestrator) Resume(ctx context.Context, chatID int64) error {
	st := o.registry.GetOrCreate(chatID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.playing == nil {
		return ErrNothingPlaying
	}

	if err := o.calls.Resume(ctx, chatID); err != nil {
		return err
	}

	st.paused = false
	return nil
}

// Stop clears everything and leaves the call. Safe from any state.
func (o *Orchestrator) Stop(ctx context.Context, chatID int64) error {
	st := o.registry.GetOrCreate(chatID)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.queue = nil
	st.playing = nil
	st.paused = false
	o.leaveBestEffort(ctx, chatID)
	return nil
}

// OnStreamEnded handles the transport's end-of-stream notification. There
// is no synchronous caller to report to, so failures are logged and the
// conversation settles wherever the attempt left it.
func (o *Orchestrator) OnStreamEnded(chatID int64) {
	ctx := context.Background()

	st := o.registry.GetOrCreate(chatID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.queue) > 0 {
		if err := o.advanceLocked(ctx, st, chatID, chatID); err != nil {
			o.log.Warn("advance after stream end failed",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		}
		return
	}

	st.playing = nil
	st.paused = false
	o.leaveBestEffort(ctx, chatID)
}

// Leaving is best-effort cleanup: a failure must never block the state
// reset, so it is logged and dropped here, at the one place that decides.
func (o *Orchestrator) leaveBestEffort(ctx context.Context, chatID int64) {
	if err := o.calls.Leave(ctx, chatID); err != nil {
		o.log.Debug("leave call failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
