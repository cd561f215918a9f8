package features

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nvara/voicebox/internal/telegram"
)

var ErrBadTarget = errors.New("invalid target conversation")

// ChatLookup is the one messaging-transport capability the target
// resolver needs.
type ChatLookup interface {
	GetChat(ctx context.Context, ref string) (*telegram.Chat, error)
}

// ResolveTarget maps an optional target token to a conversation id.
// Empty token → the invoking conversation. "@handle" → transport lookup.
// A bare integer is returned verbatim; correctness is the caller's
// problem and an invalid id fails later at join time.
func ResolveTarget(ctx context.Context, lookup ChatLookup, originChatID int64, token string) (int64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return originChatID, nil
	}

	if strings.HasPrefix(token, "@") {
		chat, err := lookup.GetChat(ctx, token)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrBadTarget, err)
		}
		return chat.ID, nil
	}

	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTarget, token)
	}
	return id, nil
}

// splitCrossPlayArgs separates the optional target token from the query.
// The first argument counts as a target when it looks like a handle or a
// channel/supergroup id.
func splitCrossPlayArgs(args []string) (target string, query string) {
	if len(args) == 0 {
		return "", ""
	}

	first := args[0]
	if strings.HasPrefix(first, "@") || strings.HasPrefix(first, "-100") {
		return first, strings.TrimSpace(strings.Join(args[1:], " "))
	}
	return "", strings.TrimSpace(strings.Join(args, " "))
}
