package core

import (
	"errors"
	"fmt"
	"strings"
)

// Action identifies what a button press asks for.
type Action string

const (
	ActionInfo     Action = "info"
	ActionDownload Action = "download"
	ActionQuality  Action = "quality"
	ActionCancel   Action = "cancel"
	ActionClose    Action = "close"
)

// ErrBadQuery is reported for payloads that do not decode to a known action.
var ErrBadQuery = errors.New("malformed callback payload")

// Query is the decoded form of a button payload. The wire format is
// ASCII and colon-delimited: "info:<key>", "download:<key>",
// "quality:<key>:<height|audio>", "cancel:<key>", "close".
type Query struct {
	Action  Action
	Key     string
	Quality string
}

// String serializes the query back to its wire format.
func (q Query) String() string {
	switch q.Action {
	case ActionClose:
		return string(ActionClose)
	case ActionQuality:
		return fmt.Sprintf("%s:%s:%s", q.Action, q.Key, q.Quality)
	default:
		return fmt.Sprintf("%s:%s", q.Action, q.Key)
	}
}

// ParseQuery decodes a button payload. For quality payloads the key may
// itself be a raw URL containing colons (the legacy short-link fallback),
// so the quality suffix is split off the right end, never the left.
func ParseQuery(data string) (Query, error) {
	if data == string(ActionClose) {
		return Query{Action: ActionClose}, nil
	}

	action, rest, ok := strings.Cut(data, ":")
	if !ok || rest == "" {
		return Query{}, fmt.Errorf("%w: %q", ErrBadQuery, data)
	}

	switch Action(action) {
	case ActionInfo, ActionDownload, ActionCancel:
		return Query{Action: Action(action), Key: rest}, nil
	case ActionQuality:
		i := strings.LastIndexByte(rest, ':')
		if i <= 0 || i == len(rest)-1 {
			return Query{}, fmt.Errorf("%w: %q", ErrBadQuery, data)
		}
		return Query{Action: ActionQuality, Key: rest[:i], Quality: rest[i+1:]}, nil
	default:
		return Query{}, fmt.Errorf("%w: unknown action in %q", ErrBadQuery, data)
	}
}
