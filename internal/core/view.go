package core

import "iter"

// View renders session state. It only reads what it is given.
type View interface {
	// RoomChanged is called after every room switch with the replayed history
	// of the new room.
	RoomChanged(room string, history iter.Seq[Message])
	// MessageAdded is called for every message appended while room is current.
	MessageAdded(room string, msg Message)
	// PresenceChanged is called with each new presence snapshot.
	PresenceChanged(snapshot PresenceSnapshot)
}

type nopView struct{}

func (nopView) RoomChanged(string, iter.Seq[Message]) {}
func (nopView) MessageAdded(string, Message)          {}
func (nopView) PresenceChanged(PresenceSnapshot)      {}
