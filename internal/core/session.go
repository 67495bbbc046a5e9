package core

import (
	"strings"

	"github.com/rs/zerolog"
)

// Options selects between the two observed client behaviors.
type Options struct {
	// Replay controls how history is re-emitted on a room switch.
	Replay ReplayPolicy
	// GuardReentry makes SwitchRoom to the already-current room a no-op.
	GuardReentry bool
}

// DefaultOptions returns the guard-on, deduplicated-replay pair.
func DefaultOptions() Options {
	return Options{Replay: ReplayDeduplicated, GuardReentry: true}
}

// Config is everything a Session needs at construction.
type Config struct {
	Self        string
	DefaultRoom string
	Options     Options
	Transport   Transport
	View        View
	Logger      *zerolog.Logger
}

// Session owns all mutable client state for one connection: the current room,
// per-room history, presence and the input draft. It is not safe for
// concurrent use; drive it from a single goroutine (see Loop).
type Session struct {
	self        string
	defaultRoom string
	opts        Options

	currentRoom string
	joined      bool
	draft       string

	history   *History
	presence  *Presence
	transport Transport
	view      View
	log       *zerolog.Logger
}

// NewSession constructs a session. CurrentRoom reports DefaultRoom until the
// first join completes.
func NewSession(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	view := cfg.View
	if view == nil {
		view = nopView{}
	}
	return &Session{
		self:        cfg.Self,
		defaultRoom: cfg.DefaultRoom,
		opts:        cfg.Options,
		currentRoom: cfg.DefaultRoom,
		history:     NewHistory(),
		presence:    NewPresence(cfg.Self),
		transport:   cfg.Transport,
		view:        view,
		log:         logger,
	}
}

// Self returns the local username.
func (s *Session) Self() string { return s.self }

// CurrentRoom returns the active room.
func (s *Session) CurrentRoom() string { return s.currentRoom }

// Joined reports whether a first join has happened.
func (s *Session) Joined() bool { return s.joined }

// History exposes the store for read-only inspection.
func (s *Session) History() *History { return s.history }

// Presence returns the latest presence snapshot.
func (s *Session) Presence() PresenceSnapshot { return s.presence.Snapshot() }

// Connect runs each time the transport is established. The first call joins
// the default room without a leave. A later call goes back to the default
// room; with GuardReentry on and the default room already current, nothing is
// sent and the new connection has no room membership.
func (s *Session) Connect() {
	if s.joined {
		if s.opts.GuardReentry && s.currentRoom == s.defaultRoom {
			s.log.Warn().Str("room", s.currentRoom).Msg("reconnected without re-join; room broadcasts stop until the room is switched")
		} else {
			s.log.Info().Str("from", s.currentRoom).Str("to", s.defaultRoom).Msg("reconnected")
		}
	}
	s.SwitchRoom(s.defaultRoom)
}

// SwitchRoom makes target the current room, emitting leave for the previous
// room (except on the first join) and join for target, then replays target's
// history to the view.
func (s *Session) SwitchRoom(target string) {
	if s.opts.GuardReentry && s.joined && target == s.currentRoom {
		s.log.Debug().Str("room", target).Msg("already in room")
		return
	}

	previous := s.currentRoom
	if s.joined {
		s.send(Command{Kind: CommandLeaveRoom, Room: previous})
	}
	s.currentRoom = target
	s.send(Command{Kind: CommandJoinRoom, Room: target})
	first := !s.joined
	s.joined = true

	s.log.Info().Str("from", previous).Str("to", target).Bool("first", first).Msg("switched room")
	s.view.RoomChanged(target, s.history.Replay(target, s.opts.Replay))
}

// SelectRoom is the user-facing alias of SwitchRoom.
func (s *Session) SelectRoom(room string) {
	s.SwitchRoom(room)
}

// Submit routes raw input to a room or directed send and clears the draft.
// Empty input and directed sends without a body are dropped silently.
func (s *Session) Submit(raw string) {
	s.draft = ""
	cmd, err := Route(raw, s.currentRoom)
	if err != nil {
		s.log.Debug().Err(err).Msg("submission dropped")
		return
	}
	s.send(cmd)
}

// Draft returns the pending input text.
func (s *Session) Draft() string { return s.draft }

// SetDraft replaces the pending input text.
func (s *Session) SetDraft(text string) { s.draft = text }

// PrefillDirectedTo replaces the draft with a directed-message prefix for user.
func (s *Session) PrefillDirectedTo(user string) {
	s.draft = DirectedDraft(user)
}

// Handle applies one inbound event.
func (s *Session) Handle(ev Event) {
	switch e := ev.(type) {
	case Connected:
		s.Connect()
	case Broadcast:
		s.handleBroadcast(e)
	case Directed:
		s.appendCurrent(Message{Sender: e.From, Body: PrivatePrefix + e.Body, Kind: KindPrivate})
	case Joined:
		s.appendSystem(e.Notice)
	case Left:
		s.appendSystem(e.Notice)
	case Status:
		s.appendSystem(e.Notice)
	case PresenceUpdate:
		s.presence.Update(e.Users)
		s.view.PresenceChanged(s.presence.Snapshot())
	default:
		s.log.Warn().Type("event", ev).Msg("unhandled event")
	}
}

func (s *Session) handleBroadcast(e Broadcast) {
	if e.Room != "" && e.Room != s.currentRoom {
		s.log.Debug().Err(ErrForeignRoom).Str("room", e.Room).Str("current", s.currentRoom).Msg("broadcast dropped")
		return
	}
	kind := KindOther
	if e.Sender == s.self {
		kind = KindOwn
	}
	s.appendCurrent(Message{Sender: e.Sender, Body: e.Body, Kind: kind})
}

func (s *Session) appendSystem(notice string) {
	if strings.TrimSpace(notice) == "" {
		return
	}
	s.appendCurrent(Message{Sender: SystemSender, Body: notice, Kind: KindSystem})
}

func (s *Session) appendCurrent(msg Message) {
	s.history.Append(s.currentRoom, msg)
	s.view.MessageAdded(s.currentRoom, msg)
}

func (s *Session) send(cmd Command) {
	if s.transport == nil {
		return
	}
	if err := s.transport.Send(cmd); err != nil {
		s.log.Warn().Err(err).Stringer("kind", cmd.Kind).Str("room", cmd.Room).Msg("send failed")
	}
}
