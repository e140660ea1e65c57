package storage

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/go2048/internal/game"
)

// encodeActions stores one digit per action, e.g. "0123".
func encodeActions(actions []game.Action) string {
	var sb strings.Builder
	sb.Grow(len(actions))
	for _, a := range actions {
		sb.WriteByte(byte('0' + a))
	}
	return sb.String()
}

func decodeActions(s string) ([]game.Action, error) {
	actions := make([]game.Action, 0, len(s))
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return nil, fmt.Errorf("%w: %q at offset %d", game.ErrInvalidAction, s[i], i)
		}
		a, err := game.ParseAction(s[i : i+1])
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}
