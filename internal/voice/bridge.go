package voice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	opJoin   = "join"
	opChange = "change"
	opPause  = "pause"
	opResume = "resume"
	opLeave  = "leave"

	eventStreamEnded = "stream_ended"

	// Error code the daemon reports when the conversation has no live call.
	codeNoActiveCall = "NO_ACTIVE_CALL"
)

type bridgeRequest struct {
	Op     string        `json:"op"`
	ID     string        `json:"id"`
	ChatID int64         `json:"chat_id"`
	Stream *StreamHandle `json:"stream,omitempty"`
}

type bridgeMessage struct {
	// Response fields, correlated by ID.
	ID    string `json:"id,omitempty"`
	OK    bool   `json:"ok,omitempty"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`

	// Event fields.
	Event  string `json:"event,omitempty"`
	ChatID int64  `json:"chat_id,omitempty"`
}

// Bridge is a websocket client to the external call daemon. It satisfies
// [Caller] with request/response correlation over a single connection and
// forwards stream-ended events to a subscribed handler.
type Bridge struct {
	url     string
	timeout time.Duration
	log     *zap.Logger

	writeMu sync.Mutex
	conn    *websocket.Conn

	mu            sync.Mutex
	pending       map[string]chan bridgeMessage
	onStreamEnded func(chatID int64)
	closed        bool
}

func NewBridge(url string, timeout time.Duration, log *zap.Logger) *Bridge {
	return &Bridge{
		url:     url,
		timeout: timeout,
		log:     log,
		pending: make(map[string]chan bridgeMessage),
	}
}

// Connect dials the daemon, retrying with exponential backoff until it is
// reachable or attempts are exhausted, then starts the read loop.
func (b *Bridge) Connect(maxAttempts int) error {
	delay := 200 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		conn, _, err := websocket.DefaultDialer.Dial(b.url, nil)
		if err == nil {
			b.writeMu.Lock()
			b.conn = conn
			b.writeMu.Unlock()

			go b.readLoop(conn)
			b.log.Info("voice bridge connected", zap.String("url", b.url), zap.Int("attempt", attempt))
			return nil
		}

		lastErr = err
		if attempt < maxAttempts {
			b.log.Debug("voice bridge not ready, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("retry_delay", delay),
				zap.Error(err))
			time.Sleep(delay)
			delay *= 2
			if delay > 5*time.Second {
				delay = 5 * time.Second
			}
		}
	}

	return fmt.Errorf("voice bridge unreachable after %d attempts: %w", maxAttempts, lastErr)
}

// OnStreamEnded registers the handler invoked once per completed stream.
// Must be called before Connect.
func (b *Bridge) OnStreamEnded(fn func(chatID int64)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onStreamEnded = fn
}

func (b *Bridge) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	if b.conn == nil {
		return nil
	}
	return b.conn.Close()
}

func (b *Bridge) JoinAndStream(ctx context.Context, chatID int64, source string) error {
	handle := BuildStreamHandle(source)
	return b.request(ctx, bridgeRequest{Op: opJoin, ChatID: chatID, Stream: &handle})
}

func (b *Bridge) ChangeStream(ctx context.Context, chatID int64, source string) error {
	handle := BuildStreamHandle(source)
	return b.request(ctx, bridgeRequest{Op: opChange, ChatID: chatID, Stream: &handle})
}

func (b *Bridge) Pause(ctx context.Context, chatID int64) error {
	return b.request(ctx, bridgeRequest{Op: opPause, ChatID: chatID})
}

func (b *Bridge) Resume(ctx context.Context, chatID int64) error {
	return b.request(ctx, bridgeRequest{Op: opResume, ChatID: chatID})
}

func (b *Bridge) Leave(ctx context.Context, chatID int64) error {
	return b.request(ctx, bridgeRequest{Op: opLeave, ChatID: chatID})
}

// request sends one op and waits for its correlated response. The wait is
// bounded by the configured timeout so a wedged daemon surfaces as an
// ordinary transport error instead of blocking the conversation forever.
func (b *Bridge) request(ctx context.Context, req bridgeRequest) error {
	req.ID = uuid.NewString()

	replyCh := make(chan bridgeMessage, 1)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("voice bridge is closed")
	}
	b.pending[req.ID] = replyCh
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.pending, req.ID)
		b.mu.Unlock()
	}()

	b.writeMu.Lock()
	conn := b.conn
	if conn == nil {
		b.writeMu.Unlock()
		return fmt.Errorf("voice bridge not connected")
	}
	err := conn.WriteJSON(req)
	b.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("voice bridge write: %w", err)
	}

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case reply := <-replyCh:
		if reply.OK {
			return nil
		}
		if reply.Code == codeNoActiveCall {
			return fmt.Errorf("%w: chat %d", ErrNoActiveCall, req.ChatID)
		}
		return fmt.Errorf("voice bridge %s failed: %s", req.Op, reply.Error)
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("voice bridge %s timed out after %s", req.Op, b.timeout)
	}
}

func (b *Bridge) readLoop(conn *websocket.Conn) {
	for {
		var msg bridgeMessage
		if err := conn.ReadJSON(&msg); err != nil {
			b.mu.Lock()
			closed := b.closed
			b.mu.Unlock()
			if !closed {
				b.log.Warn("voice bridge read loop ended", zap.Error(err))
			}
			return
		}

		if msg.Event == eventStreamEnded {
			b.mu.Lock()
			handler := b.onStreamEnded
			b.mu.Unlock()
			if handler != nil {
				go handler(msg.ChatID)
			}
			continue
		}

		if msg.ID == "" {
			continue
		}

		b.mu.Lock()
		replyCh, ok := b.pending[msg.ID]
		b.mu.Unlock()
		if ok {
			replyCh <- msg
		}
	}
}
