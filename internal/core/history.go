package core

import (
	"fmt"
	"iter"
)

// ReplayPolicy selects how a room's stored history is re-emitted to the view.
type ReplayPolicy int

const (
	// ReplayDeduplicated skips a message when an identical (sender, body, kind)
	// triple was already emitted earlier in the same replay.
	ReplayDeduplicated ReplayPolicy = iota
	// ReplayFull emits every stored message.
	ReplayFull
)

func (p ReplayPolicy) String() string {
	switch p {
	case ReplayDeduplicated:
		return "dedup"
	case ReplayFull:
		return "full"
	default:
		return fmt.Sprintf("ReplayPolicy(%d)", int(p))
	}
}

// ParseReplayPolicy maps a config value to a policy.
func ParseReplayPolicy(s string) (ReplayPolicy, error) {
	switch s {
	case "dedup", "deduplicated", "":
		return ReplayDeduplicated, nil
	case "full":
		return ReplayFull, nil
	default:
		return 0, fmt.Errorf("unknown replay policy %q", s)
	}
}

// History keeps the per-room message buffers for one session. Storage is
// append-only and never deduplicated; only Replay may filter.
type History struct {
	rooms map[string][]Message
}

// NewHistory constructs an empty store.
func NewHistory() *History {
	return &History{rooms: make(map[string][]Message)}
}

// Append adds msg to the end of the room's buffer, creating it on first use.
func (h *History) Append(room string, msg Message) {
	h.rooms[room] = append(h.rooms[room], msg)
}

// Len reports how many messages are stored for room.
func (h *History) Len(room string) int {
	return len(h.rooms[room])
}

// Messages returns a copy of the room's stored buffer.
func (h *History) Messages(room string) []Message {
	stored := h.rooms[room]
	out := make([]Message, len(stored))
	copy(out, stored)
	return out
}

// Replay returns a lazy sequence over the room's buffer. Each iteration starts
// from the beginning with a fresh seen-set, so the sequence can be ranged over
// any number of times. The buffer is captured when Replay is called; later
// appends are not visible to the returned sequence.
func (h *History) Replay(room string, policy ReplayPolicy) iter.Seq[Message] {
	stored := h.rooms[room]
	stored = stored[:len(stored):len(stored)]

	return func(yield func(Message) bool) {
		var seen map[messageKey]struct{}
		if policy == ReplayDeduplicated {
			seen = make(map[messageKey]struct{}, len(stored))
		}
		for _, msg := range stored {
			if seen != nil {
				k := msg.key()
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
			}
			if !yield(msg) {
				return
			}
		}
	}
}
