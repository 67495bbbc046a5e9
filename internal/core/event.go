package core

// Event is an inbound notification from the transport. The set of
// implementations is closed; Session.Handle switches over all of them.
type Event interface {
	isEvent()
}

// Connected is delivered every time the transport (re)establishes its channel.
type Connected struct{}

// Joined is a server notice that someone joined the current room.
type Joined struct {
	Notice string
}

// Left is a server notice that someone left the current room.
type Left struct {
	Notice string
}

// Broadcast is a room message. Room is empty when the server did not tag it,
// in which case it belongs to whatever room is current.
type Broadcast struct {
	Room   string
	Sender string
	Body   string
}

// Directed is a private message addressed to the local user.
type Directed struct {
	From string
	To   string
	Body string
}

// Status is any other server notice.
type Status struct {
	Notice string
}

// PresenceUpdate carries a full snapshot of connected users.
type PresenceUpdate struct {
	Users []string
}

func (Connected) isEvent()      {}
func (Joined) isEvent()         {}
func (Left) isEvent()           {}
func (Broadcast) isEvent()      {}
func (Directed) isEvent()       {}
func (Status) isEvent()         {}
func (PresenceUpdate) isEvent() {}
