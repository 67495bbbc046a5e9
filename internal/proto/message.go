package proto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Envelope is the frame exchanged in both directions over the socket.
type Envelope struct {
	Event string          `json:"event"`
	ID    string          `json:"id,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

const (
	// Outbound (client -> server).
	EventJoin    = "join"
	EventLeave   = "leave"
	EventMessage = "message"

	// Inbound (server -> client). EventMessage is shared with outbound.
	EventPrivateMessage = "private_message"
	EventStatus         = "status"
	EventActiveUsers    = "active_users"

	// MessageTypePrivate marks an outbound message as directed.
	MessageTypePrivate = "private"

	// Status types sent by the server for membership changes.
	StatusTypeJoin  = "join"
	StatusTypeLeave = "leave"
)

var ErrMissingEvent = errors.New("missing field: event")

// Validate performs structural validation of an envelope.
func (e Envelope) Validate() error {
	if strings.TrimSpace(e.Event) == "" {
		return ErrMissingEvent
	}
	switch e.Event {
	case EventJoin, EventLeave, EventMessage, EventPrivateMessage, EventStatus, EventActiveUsers:
		return nil
	default:
		return fmt.Errorf("unknown event: %q", e.Event)
	}
}

// RoomData is the payload of join and leave.
type RoomData struct {
	Room string `json:"room"`
}

// SendData is the payload of an outbound message. Room is set for broadcasts,
// Type and Target for directed sends.
type SendData struct {
	Msg    string `json:"msg"`
	Room   string `json:"room,omitempty"`
	Type   string `json:"type,omitempty"`
	Target string `json:"target,omitempty"`
}

// MessageData is a room broadcast from the server.
type MessageData struct {
	Username  string `json:"username"`
	Msg       string `json:"msg"`
	Room      string `json:"room,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// PrivateMessageData is a directed message from the server.
type PrivateMessageData struct {
	From      string `json:"from"`
	To        string `json:"to,omitempty"`
	Msg       string `json:"msg"`
	Timestamp string `json:"timestamp,omitempty"`
}

// StatusData is a system notice.
type StatusData struct {
	Msg       string `json:"msg"`
	Type      string `json:"type,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ActiveUsersData is a full presence snapshot.
type ActiveUsersData struct {
	Users []string `json:"users"`
}
