package core

import (
	"strings"
	"unicode"
)

// DirectedPrefix starts a private message: "@user body".
const DirectedPrefix = "@"

// Route classifies raw user input into an outbound send. The second return is
// nil when a command should be emitted; otherwise it says why nothing is sent.
// Classification is purely syntactic: target users are not validated here.
func Route(raw, currentRoom string) (Command, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return Command{}, ErrEmptySubmission
	}

	if !strings.HasPrefix(input, DirectedPrefix) {
		return Command{Kind: CommandSendRoomMessage, Room: currentRoom, Body: input}, nil
	}

	rest := input[len(DirectedPrefix):]
	target, body := rest, ""
	if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
		target, body = rest[:i], strings.TrimSpace(rest[i:])
	}
	if target == "" {
		return Command{}, ErrMissingTarget
	}
	if body == "" {
		return Command{}, ErrMissingBody
	}
	return Command{Kind: CommandSendDirected, Target: target, Body: body}, nil
}

// DirectedDraft returns the input prefix for a private message to user.
func DirectedDraft(user string) string {
	return DirectedPrefix + user + " "
}
