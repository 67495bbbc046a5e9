package core

// CommandKind describes what the client asks the server to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the connection to a room's broadcasts.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom unsubscribes the connection from a room.
	CommandLeaveRoom
	// CommandSendRoomMessage broadcasts a message to a room.
	CommandSendRoomMessage
	// CommandSendDirected sends a private message to one user.
	CommandSendDirected
)

func (k CommandKind) String() string {
	switch k {
	case CommandJoinRoom:
		return "join"
	case CommandLeaveRoom:
		return "leave"
	case CommandSendRoomMessage:
		return "room_message"
	case CommandSendDirected:
		return "directed_message"
	default:
		return "unknown"
	}
}

// Command is an outbound emission handed to the transport.
type Command struct {
	Kind   CommandKind
	Room   string // join, leave, room message
	Target string // directed message
	Body   string // room and directed messages
}

// Transport delivers commands to the server. Send must not block on the
// network; delivery is fire-and-forget from the session's point of view.
type Transport interface {
	Send(cmd Command) error
}
