// Command ws_smoke connects to a chat server, joins a room, sends one message
// and waits for the server to broadcast it back.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"iter"
	"log"
	"os"
	"time"

	"github.com/vovakirdan/wirechat-client/internal/core"
	"github.com/vovakirdan/wirechat-client/internal/transport/ws"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

// echoView waits for the local user's own broadcast to come back.
type echoView struct {
	text   string
	joined chan string
	echo   chan core.Message
}

func newEchoView(text string) *echoView {
	return &echoView{text: text, joined: make(chan string, 1), echo: make(chan core.Message, 1)}
}

func (v *echoView) RoomChanged(room string, _ iter.Seq[core.Message]) {
	fmt.Printf("Joined: room=%s\n", room)
	select {
	case v.joined <- room:
	default:
	}
}

func (v *echoView) MessageAdded(room string, msg core.Message) {
	fmt.Printf("Message: room=%s kind=%s sender=%s body=%q\n", room, msg.Kind, msg.Sender, msg.Body)
	if msg.Kind == core.KindOwn && msg.Body == v.text {
		select {
		case v.echo <- msg:
		default:
		}
	}
}

func (v *echoView) PresenceChanged(snapshot core.PresenceSnapshot) {
	fmt.Printf("Presence: %v\n", snapshot.Users)
}

func run() error {
	addr := flag.String("addr", "ws://localhost:5000/ws", "WebSocket address")
	user := flag.String("user", "tester", "username the server assigns to this connection")
	room := flag.String("room", "General", "room name")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	transport := ws.New(ws.Options{URL: *addr, DialTimeout: *timeout}, nil)
	view := newEchoView(*text)
	session := core.NewSession(core.Config{
		Self:        *user,
		DefaultRoom: *room,
		Options:     core.DefaultOptions(),
		Transport:   transport,
		View:        view,
	})
	loop := core.NewLoop(session, 16)
	go loop.Run(ctx)

	transportErr := make(chan error, 1)
	go func() { transportErr <- transport.Run(ctx, loop.Deliver) }()

	if err := submitAfterJoin(ctx, loop, view.joined, *text); err != nil {
		return err
	}

	select {
	case msg := <-view.echo:
		fmt.Printf("OK: %s echoed %q\n", msg.Sender, msg.Body)
		cancel()
		return <-transportErr
	case <-ctx.Done():
		return fmt.Errorf("no echo before timeout: %w", ctx.Err())
	}
}

// submitAfterJoin queues text once the session has joined a room. The server
// only broadcasts to members, so a message sent before the join never echoes.
func submitAfterJoin(ctx context.Context, loop *core.Loop, joined <-chan string, text string) error {
	select {
	case <-joined:
	case <-ctx.Done():
		return fmt.Errorf("no join before timeout: %w", ctx.Err())
	}
	if !loop.Do(ctx, func(s *core.Session) { s.Submit(text) }) {
		return errors.New("session loop stopped before send")
	}
	return nil
}
