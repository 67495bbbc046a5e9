package core

import (
	"context"
	"testing"
	"time"
)

func TestLoopSerializesEventsAndActions(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	s, tr, _ := newTestSession(t, DefaultOptions())
	loop := NewLoop(s, 4)
	go loop.Run(ctx)

	loop.Deliver(ctx, Connected{})
	loop.Deliver(ctx, Broadcast{Sender: "alice", Body: "one"})
	loop.Deliver(ctx, Broadcast{Sender: "alice", Body: "two"})

	type state struct {
		room    string
		stored  int
		sentCnt int
	}
	got := make(chan state, 1)

	// Poll through the loop so reads happen on the session's goroutine.
	waitFor(t, func() bool {
		loop.Do(ctx, func(s *Session) {
			got <- state{room: s.CurrentRoom(), stored: s.History().Len("General"), sentCnt: len(tr.sent)}
		})
		st := <-got
		return st.room == "General" && st.stored == 2 && st.sentCnt == 1
	})

	loop.Do(ctx, func(s *Session) { s.SelectRoom("Random") })
	waitFor(t, func() bool {
		loop.Do(ctx, func(s *Session) {
			got <- state{room: s.CurrentRoom(), sentCnt: len(tr.sent)}
		})
		st := <-got
		return st.room == "Random" && st.sentCnt == 3
	})
}

func TestLoopDeliverHonorsContext(t *testing.T) {
	s, _, _ := newTestSession(t, DefaultOptions())
	loop := NewLoop(s, 1)

	ctx, cancel := context.WithCancel(context.Background())
	if !loop.Deliver(ctx, Status{Notice: "fills the queue"}) {
		t.Fatalf("first deliver should succeed")
	}
	cancel()
	if loop.Deliver(ctx, Status{Notice: "blocked"}) {
		t.Fatalf("deliver on a full queue with cancelled ctx should fail")
	}
	if !loop.Do(context.Background(), func(*Session) {}) {
		t.Fatalf("action queue is separate and should accept")
	}
	if loop.Do(ctx, func(*Session) {}) {
		t.Fatalf("do on a full queue with cancelled ctx should fail")
	}
}
