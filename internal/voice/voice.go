// Package voice defines the contract to the external voice-call transport
// and provides the websocket bridge adapter that implements it.
//
// The orchestrator only depends on [Caller]; everything about how a stream
// handle is actually constructed for a given daemon version is the
// adapter's problem.
package voice

import (
	"context"
	"errors"
)

// ErrNoActiveCall is returned by JoinAndStream when the target conversation
// has no live voice call to join. Callers treat this as actionable user
// feedback, not an internal failure.
var ErrNoActiveCall = errors.New("no active group call")

// Caller performs the call-level operations for one conversation. All
// methods may block until the underlying daemon responds; implementations
// must enforce a bounded wait.
type Caller interface {
	JoinAndStream(ctx context.Context, chatID int64, source string) error
	ChangeStream(ctx context.Context, chatID int64, source string) error
	Pause(ctx context.Context, chatID int64) error
	Resume(ctx context.Context, chatID int64) error
	Leave(ctx context.Context, chatID int64) error
}

// StreamHandle is the fixed description of a playable stream handed to the
// call daemon. Daemon-version differences in stream construction live
// behind BuildStreamHandle, not in the orchestrator.
type StreamHandle struct {
	Source string `json:"source"`
	Kind   string `json:"kind"`
}

// BuildStreamHandle wraps a raw source URL in the handle shape the daemon
// expects. Sources are always piped audio for this bot.
func BuildStreamHandle(source string) StreamHandle {
	return StreamHandle{
		Source: source,
		Kind:   "audio_piped",
	}
}
