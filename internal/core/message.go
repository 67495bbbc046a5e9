package core

// MessageKind tells the view how a message should be grouped and styled.
// It says nothing about the path the message took to get here.
type MessageKind int

const (
	// KindOwn is a room broadcast sent by the local user.
	KindOwn MessageKind = iota
	// KindOther is a room broadcast sent by someone else.
	KindOther
	// KindPrivate is a directed message addressed to the local user.
	KindPrivate
	// KindSystem is a server notice (joins, leaves, errors).
	KindSystem
)

// String returns the class name used by views for the kind.
func (k MessageKind) String() string {
	switch k {
	case KindOwn:
		return "own"
	case KindOther:
		return "other"
	case KindPrivate:
		return "private"
	case KindSystem:
		return "system"
	default:
		return "unknown"
	}
}

const (
	// SystemSender is the sender shown for status notices.
	SystemSender = "System"
	// PrivatePrefix marks the body of an inbound directed message.
	PrivatePrefix = "[Private] "
)

// Message is a single displayed chat line.
type Message struct {
	Sender string
	Body   string
	Kind   MessageKind
}

type messageKey struct {
	sender string
	body   string
	kind   MessageKind
}

func (m Message) key() messageKey {
	return messageKey{sender: m.Sender, body: m.Body, kind: m.Kind}
}
