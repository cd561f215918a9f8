package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-token", zap.NewNop()).WithBaseURL(srv.URL), srv
}

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"result": map[string]any{
				"message_id": 42,
				"chat":       map[string]any{"id": -1001234},
				"text":       "hello",
			},
		})
	})

	msg, err := client.SendMessage(context.Background(), -1001234, "hello", nil)
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "hello", gotPayload["text"])
	assert.Equal(t, float64(-1001234), gotPayload["chat_id"])
	assert.NotContains(t, gotPayload, "reply_markup")

	assert.Equal(t, int64(42), msg.MessageID)
	assert.Equal(t, int64(-1001234), msg.Chat.ID)
}

func TestSendMessage_WithKeyboard(t *testing.T) {
	var gotPayload map[string]any

	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"result": map[string]any{"message_id": 1},
		})
	})

	markup := &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: "Stop", CallbackData: "pl:stop:-1001234"}},
		},
	}

	_, err := client.SendMessage(context.Background(), -1001234, "panel", markup)
	require.NoError(t, err)
	assert.Contains(t, gotPayload, "reply_markup")
}

func TestGetUpdates(t *testing.T) {
	var gotPayload map[string]any

	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"result": []map[string]any{
				{
					"update_id": 100,
					"message": map[string]any{
						"message_id": 7,
						"chat":       map[string]any{"id": -1005},
						"text":       "/play lofi",
					},
				},
				{
					"update_id": 101,
					"callback_query": map[string]any{
						"id":   "cb1",
						"data": "pl:pause:-1005",
					},
				},
			},
		})
	})

	updates, err := client.GetUpdates(context.Background(), 100, 30)
	require.NoError(t, err)
	require.Len(t, updates, 2)

	assert.Equal(t, float64(100), gotPayload["offset"])
	assert.Equal(t, float64(30), gotPayload["timeout"])

	assert.Equal(t, int64(100), updates[0].UpdateID)
	require.NotNil(t, updates[0].Message)
	assert.Equal(t, "/play lofi", updates[0].Message.Text)

	require.NotNil(t, updates[1].CallbackQuery)
	assert.Equal(t, "pl:pause:-1005", updates[1].CallbackQuery.Data)
}

func TestGetChat_NotFound(t *testing.T) {
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"ok":          false,
			"error_code":  400,
			"description": "Bad Request: chat not found",
		})
	})

	_, err := client.GetChat(context.Background(), "@nosuchchannel")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestCall_APIError(t *testing.T) {
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"ok":          false,
			"error_code":  403,
			"description": "Forbidden: bot was kicked",
		})
	})

	_, err := client.SendMessage(context.Background(), -1001234, "hi", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrChatNotFound)
	assert.Contains(t, err.Error(), "403")
}
