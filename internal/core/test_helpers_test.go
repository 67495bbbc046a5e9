package core

import (
	"errors"
	"iter"
	"slices"
	"testing"
	"time"
)

type fakeTransport struct {
	sent []Command
	err  error
}

func (f *fakeTransport) Send(cmd Command) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, cmd)
	return nil
}

func (f *fakeTransport) reset() { f.sent = nil }

type roomChange struct {
	room    string
	history []Message
}

type recordingView struct {
	changes  []roomChange
	added    []Message
	rooms    []string
	presence []PresenceSnapshot
}

func (v *recordingView) RoomChanged(room string, history iter.Seq[Message]) {
	v.changes = append(v.changes, roomChange{room: room, history: slices.Collect(history)})
}

func (v *recordingView) MessageAdded(room string, msg Message) {
	v.rooms = append(v.rooms, room)
	v.added = append(v.added, msg)
}

func (v *recordingView) PresenceChanged(snapshot PresenceSnapshot) {
	v.presence = append(v.presence, snapshot)
}

func newTestSession(t *testing.T, opts Options) (*Session, *fakeTransport, *recordingView) {
	t.Helper()

	tr := &fakeTransport{}
	view := &recordingView{}
	s := NewSession(Config{
		Self:        "me",
		DefaultRoom: "General",
		Options:     opts,
		Transport:   tr,
		View:        view,
	})
	return s, tr, view
}

func mustCommands(t *testing.T, got []Command, want ...Command) {
	t.Helper()

	if !slices.Equal(got, want) {
		t.Fatalf("unexpected commands:\n got  %+v\n want %+v", got, want)
	}
}

func join(room string) Command  { return Command{Kind: CommandJoinRoom, Room: room} }
func leave(room string) Command { return Command{Kind: CommandLeaveRoom, Room: room} }

var errBoom = errors.New("boom")

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}
