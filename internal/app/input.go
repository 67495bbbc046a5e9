package app

import (
	"context"
	"strings"

	"github.com/vovakirdan/wirechat-client/internal/core"
)

// handleLine turns one line of terminal input into a session action. It
// returns true when the user asked to quit.
func (a *App) handleLine(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit":
		return true
	case "/join":
		if arg == "" {
			a.do(ctx, func(*core.Session) { a.view.Notice("usage: /join <room>") })
			return false
		}
		a.do(ctx, func(s *core.Session) { s.SelectRoom(arg) })
	case "/dm":
		if arg == "" {
			a.do(ctx, func(*core.Session) { a.view.Notice("usage: /dm <user>") })
			return false
		}
		user, _, _ := strings.Cut(arg, " ")
		a.do(ctx, func(s *core.Session) {
			s.PrefillDirectedTo(user)
			a.view.Notice("next line goes to " + user)
		})
	case "/rooms":
		a.do(ctx, func(s *core.Session) { a.view.Rooms(s.CurrentRoom()) })
	case "/who":
		a.do(ctx, func(s *core.Session) { a.view.PresenceChanged(s.Presence()) })
	default:
		// Every terminal line ends with a plain Enter.
		a.do(ctx, func(s *core.Session) {
			s.SetDraft(s.Draft() + line)
			s.OnSubmitKey(core.KeyEvent{Key: core.KeyEnter})
		})
	}
	return false
}

func (a *App) do(ctx context.Context, action core.Action) {
	if !a.loop.Do(ctx, action) {
		a.log.Debug().Msg("input dropped, loop stopped")
	}
}
