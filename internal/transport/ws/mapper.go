package ws

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/wirechat-client/internal/core"
	"github.com/vovakirdan/wirechat-client/internal/proto"
)

func envelopeFromCommand(cmd core.Command, id string) (proto.Envelope, error) {
	var (
		event string
		data  any
	)
	switch cmd.Kind {
	case core.CommandJoinRoom:
		event, data = proto.EventJoin, proto.RoomData{Room: cmd.Room}
	case core.CommandLeaveRoom:
		event, data = proto.EventLeave, proto.RoomData{Room: cmd.Room}
	case core.CommandSendRoomMessage:
		event, data = proto.EventMessage, proto.SendData{Msg: cmd.Body, Room: cmd.Room}
	case core.CommandSendDirected:
		event, data = proto.EventMessage, proto.SendData{
			Msg:    cmd.Body,
			Type:   proto.MessageTypePrivate,
			Target: cmd.Target,
		}
	default:
		return proto.Envelope{}, fmt.Errorf("unknown command kind %d", cmd.Kind)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return proto.Envelope{}, fmt.Errorf("marshal %s: %w", event, err)
	}
	return proto.Envelope{Event: event, ID: id, Data: raw}, nil
}

func eventFromEnvelope(env proto.Envelope) (core.Event, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}

	switch env.Event {
	case proto.EventMessage:
		var msg proto.MessageData
		if err := decode(env, &msg); err != nil {
			return nil, err
		}
		return core.Broadcast{Room: msg.Room, Sender: msg.Username, Body: msg.Msg}, nil
	case proto.EventPrivateMessage:
		var msg proto.PrivateMessageData
		if err := decode(env, &msg); err != nil {
			return nil, err
		}
		return core.Directed{From: msg.From, To: msg.To, Body: msg.Msg}, nil
	case proto.EventStatus:
		var st proto.StatusData
		if err := decode(env, &st); err != nil {
			return nil, err
		}
		switch st.Type {
		case proto.StatusTypeJoin:
			return core.Joined{Notice: st.Msg}, nil
		case proto.StatusTypeLeave:
			return core.Left{Notice: st.Msg}, nil
		default:
			return core.Status{Notice: st.Msg}, nil
		}
	case proto.EventActiveUsers:
		var users proto.ActiveUsersData
		if err := decode(env, &users); err != nil {
			return nil, err
		}
		return core.PresenceUpdate{Users: users.Users}, nil
	default:
		// join and leave are client -> server only.
		return nil, fmt.Errorf("unexpected inbound event %q", env.Event)
	}
}

func decode(env proto.Envelope, v any) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("%s: missing data", env.Event)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%s: %w", env.Event, err)
	}
	return nil
}
