package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.telegram.org"

var ErrChatNotFound = errors.New("chat not found")

// Client is a minimal Bot API client covering the methods this bot needs:
// long-polling, replies with inline keyboards, keyboard edits, callback
// acknowledgements and chat lookup by handle.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(token string, log *zap.Logger) *Client {
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		// Long polls block server-side for up to POLL_TIMEOUT; leave headroom.
		httpClient: &http.Client{Timeout: 50 * time.Second},
		log:        log,
	}
}

// WithBaseURL overrides the API host. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]Update, error) {
	payload := map[string]any{
		"offset":          offset,
		"timeout":         timeoutSeconds,
		"allowed_updates": []string{"message", "callback_query"},
	}

	raw, err := c.call(ctx, "getUpdates", payload)
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(raw, &updates); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	return updates, nil
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, markup *InlineKeyboardMarkup) (*Message, error) {
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if markup != nil {
		payload["reply_markup"] = markup
	}

	raw, err := c.call(ctx, "sendMessage", payload)
	if err != nil {
		return nil, err
	}

	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("decode sent message: %w", err)
	}
	return &msg, nil
}

func (c *Client) EditMessageText(ctx context.Context, chatID, messageID int64, text string, markup *InlineKeyboardMarkup) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	}
	if markup != nil {
		payload["reply_markup"] = markup
	}

	_, err := c.call(ctx, "editMessageText", payload)
	return err
}

func (c *Client) EditMessageReplyMarkup(ctx context.Context, chatID, messageID int64, markup *InlineKeyboardMarkup) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
	}
	if markup != nil {
		payload["reply_markup"] = markup
	}

	_, err := c.call(ctx, "editMessageReplyMarkup", payload)
	return err
}

func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID, text string, showAlert bool) error {
	payload := map[string]any{
		"callback_query_id": callbackID,
	}
	if text != "" {
		payload["text"] = text
	}
	if showAlert {
		payload["show_alert"] = true
	}

	_, err := c.call(ctx, "answerCallbackQuery", payload)
	return err
}

// GetChat resolves an @handle (or stringified id) to a chat. Fails when the
// handle is unknown or the bot has no access to the chat.
func (c *Client) GetChat(ctx context.Context, ref string) (*Chat, error) {
	raw, err := c.call(ctx, "getChat", map[string]any{"chat_id": ref})
	if err != nil {
		return nil, err
	}

	var chat Chat
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, fmt.Errorf("decode chat: %w", err)
	}
	return &chat, nil
}

func (c *Client) call(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("telegram %s: decode response: %w", method, err)
	}

	if !envelope.OK {
		if method == "getChat" && envelope.ErrorCode == 400 {
			return nil, fmt.Errorf("%w: %s", ErrChatNotFound, envelope.Description)
		}
		return nil, fmt.Errorf("telegram %s: api error %d: %s", method, envelope.ErrorCode, envelope.Description)
	}

	return envelope.Result, nil
}
