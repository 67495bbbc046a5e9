package core

import "context"

// Action is a user-side operation applied to the session on the loop goroutine.
type Action func(*Session)

// Loop serializes transport events and user actions onto one goroutine, so the
// session never sees two handlers at once.
type Loop struct {
	session *Session
	events  chan Event
	actions chan Action
}

// NewLoop constructs a loop around session with the given queue depth.
func NewLoop(session *Session, depth int) *Loop {
	if depth <= 0 {
		depth = 1
	}
	return &Loop{
		session: session,
		events:  make(chan Event, depth),
		actions: make(chan Action, depth),
	}
}

// Deliver queues an inbound event. It blocks while the queue is full and
// returns false if ctx ends first.
func (l *Loop) Deliver(ctx context.Context, ev Event) bool {
	select {
	case l.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// Do queues a user action. It blocks while the queue is full and returns false
// if ctx ends first.
func (l *Loop) Do(ctx context.Context, action Action) bool {
	select {
	case l.actions <- action:
		return true
	case <-ctx.Done():
		return false
	}
}

// Run processes queued events until ctx is done. Events are handled in the
// order the transport delivered them, actions in the order they were queued.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-l.events:
			l.session.Handle(ev)
		case action := <-l.actions:
			action(l.session)
		}
	}
}
