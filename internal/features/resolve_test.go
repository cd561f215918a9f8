package features

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvara/voicebox/internal/telegram"
)

type fakeLookup struct {
	chats map[string]int64
}

func (f *fakeLookup) GetChat(_ context.Context, ref string) (*telegram.Chat, error) {
	if id, ok := f.chats[ref]; ok {
		return &telegram.Chat{ID: id, Type: "channel"}, nil
	}
	return nil, errors.New("chat not found")
}

func TestResolveTarget(t *testing.T) {
	ctx := context.Background()
	lookup := &fakeLookup{chats: map[string]int64{"@mychannel": -1005555}}

	t.Run("no token returns origin", func(t *testing.T) {
		id, err := ResolveTarget(ctx, lookup, -100123, "")
		require.NoError(t, err)
		assert.Equal(t, int64(-100123), id)
	})

	t.Run("handle resolves via lookup", func(t *testing.T) {
		id, err := ResolveTarget(ctx, lookup, -100123, "@mychannel")
		require.NoError(t, err)
		assert.Equal(t, int64(-1005555), id)
	})

	t.Run("unknown handle fails", func(t *testing.T) {
		_, err := ResolveTarget(ctx, lookup, -100123, "@nobody")
		assert.ErrorIs(t, err, ErrBadTarget)
	})

	t.Run("numeric id passes through unvalidated", func(t *testing.T) {
		id, err := ResolveTarget(ctx, lookup, -100123, "-1009999999")
		require.NoError(t, err)
		assert.Equal(t, int64(-1009999999), id)
	})

	t.Run("garbage token fails", func(t *testing.T) {
		_, err := ResolveTarget(ctx, lookup, -100123, "not-a-chat")
		assert.ErrorIs(t, err, ErrBadTarget)
	})
}

func TestSplitCrossPlayArgs(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		target string
		query  string
	}{
		{"empty", nil, "", ""},
		{"handle target", []string{"@chan", "lofi", "beats"}, "@chan", "lofi beats"},
		{"channel id target", []string{"-1001234", "https://x/a.mp3"}, "-1001234", "https://x/a.mp3"},
		{"no target", []string{"lofi", "beats"}, "", "lofi beats"},
		{"negative non-channel id is query", []string{"-42", "x"}, "", "-42 x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target, query := splitCrossPlayArgs(tc.args)
			assert.Equal(t, tc.target, target)
			assert.Equal(t, tc.query, query)
		})
	}
}

func TestParseCommand(t *testing.T) {
	cases := []struct {
		text string
		cmd  string
		args []string
	}{
		{"/play https://x/a.mp3", "play", []string{"https://x/a.mp3"}},
		{"/PLAY@VoiceboxBot lofi beats", "play", []string{"lofi", "beats"}},
		{"/queue", "queue", []string{}},
		{"hello", "", nil},
		{"", "", nil},
	}

	for _, tc := range cases {
		cmd, args := parseCommand(tc.text)
		assert.Equal(t, tc.cmd, cmd, "text %q", tc.text)
		if len(tc.args) == 0 {
			assert.Empty(t, args)
		} else {
			assert.Equal(t, tc.args, args)
		}
	}
}
