package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/wirechat-client/internal/core"
	"github.com/vovakirdan/wirechat-client/internal/proto"
)

// fakeServer speaks the chat protocol on /ws. Each accepted connection is
// published on conns; frames from the client arrive on received.
type fakeServer struct {
	ts       *httptest.Server
	conns    chan *websocket.Conn
	received chan proto.Envelope

	mu      sync.Mutex
	headers []string
}

func startFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	fs := &fakeServer{
		conns:    make(chan *websocket.Conn, 4),
		received: make(chan proto.Envelope, 16),
	}

	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		fs.mu.Lock()
		fs.headers = append(fs.headers, c.GetHeader("Authorization"))
		fs.mu.Unlock()

		conn, err := websocket.Accept(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		fs.conns <- conn

		ctx := c.Request.Context()
		for {
			var env proto.Envelope
			if err := wsjson.Read(ctx, conn, &env); err != nil {
				return
			}
			fs.received <- env
		}
	})

	fs.ts = httptest.NewServer(router)
	t.Cleanup(fs.ts.Close)
	return fs
}

func (fs *fakeServer) url() string {
	return strings.Replace(fs.ts.URL, "http", "ws", 1) + "/ws"
}

func (fs *fakeServer) accept(t *testing.T) *websocket.Conn {
	t.Helper()

	select {
	case conn := <-fs.conns:
		return conn
	case <-time.After(2 * time.Second):
		t.Fatalf("client did not connect")
		return nil
	}
}

func (fs *fakeServer) next(t *testing.T) proto.Envelope {
	t.Helper()

	select {
	case env := <-fs.received:
		return env
	case <-time.After(2 * time.Second):
		t.Fatalf("server received nothing")
		return proto.Envelope{}
	}
}

func push(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, wsjson.Write(ctx, conn, proto.Envelope{Event: event, Data: raw}))
}

type eventSink struct {
	events chan core.Event
}

func newEventSink() *eventSink {
	return &eventSink{events: make(chan core.Event, 16)}
}

func (s *eventSink) deliver(ctx context.Context, ev core.Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *eventSink) next(t *testing.T) core.Event {
	t.Helper()

	select {
	case ev := <-s.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("no event delivered")
		return nil
	}
}
