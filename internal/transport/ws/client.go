package ws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vovakirdan/wirechat-client/internal/core"
	"github.com/vovakirdan/wirechat-client/internal/proto"
)

const maxReadBytes = 1 << 20

var (
	// ErrClosed is returned by Send after Close.
	ErrClosed = errors.New("transport closed")
	// ErrQueueFull is returned by Send when the outbound queue has no room.
	ErrQueueFull = errors.New("outbound queue full")
)

// DeliverFunc hands an inbound event to the session loop. It returns false
// when the loop is no longer accepting events.
type DeliverFunc func(ctx context.Context, ev core.Event) bool

// Options configures a Client.
type Options struct {
	URL          string
	Header       http.Header
	DialTimeout  time.Duration
	WriteTimeout time.Duration
	ReconnectMin time.Duration
	ReconnectMax time.Duration
	QueueSize    int
}

// Client is a reconnecting WebSocket transport. Send is safe to call from any
// goroutine and never waits on the network; frames queued while disconnected
// go out once the next connection is up.
type Client struct {
	opts   Options
	log    *zerolog.Logger
	outbox chan proto.Envelope

	closeOnce sync.Once
	closed    chan struct{}
}

// New constructs a client. Nothing is dialed until Run.
func New(opts Options, logger *zerolog.Logger) *Client {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 32
	}
	if opts.ReconnectMin <= 0 {
		opts.ReconnectMin = 500 * time.Millisecond
	}
	if opts.ReconnectMax < opts.ReconnectMin {
		opts.ReconnectMax = opts.ReconnectMin
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Client{
		opts:   opts,
		log:    logger,
		outbox: make(chan proto.Envelope, opts.QueueSize),
		closed: make(chan struct{}),
	}
}

// Send implements core.Transport.
func (c *Client) Send(cmd core.Command) error {
	select {
	case <-c.closed:
		return ErrClosed
	default:
	}

	env, err := envelopeFromCommand(cmd, uuid.NewString())
	if err != nil {
		return err
	}

	select {
	case c.outbox <- env:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting sends. Run returns once its context ends.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

// Run dials, pumps frames and redials with exponential backoff until ctx is
// done. Every established connection delivers core.Connected first.
func (c *Client) Run(ctx context.Context, deliver DeliverFunc) error {
	defer c.Close()

	backoff := c.opts.ReconnectMin
	for {
		conn, err := c.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Warn().Err(err).Str("url", c.opts.URL).Dur("retry_in", backoff).Msg("dial failed")
		} else {
			backoff = c.opts.ReconnectMin
			c.log.Info().Str("url", c.opts.URL).Msg("connected")

			err = c.serve(ctx, conn, deliver)
			if ctx.Err() != nil {
				return nil
			}
			c.log.Warn().Err(err).Dur("retry_in", backoff).Msg("connection lost")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, c.opts.ReconnectMax)
	}
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx := ctx
	if c.opts.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.opts.DialTimeout)
		defer cancel()
	}

	conn, _, err := websocket.Dial(dialCtx, c.opts.URL, &websocket.DialOptions{
		HTTPHeader: c.opts.Header,
	})
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	conn.SetReadLimit(maxReadBytes)
	return conn, nil
}

func (c *Client) serve(ctx context.Context, conn *websocket.Conn, deliver DeliverFunc) error {
	defer conn.Close(websocket.StatusInternalError, "internal error")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !deliver(ctx, core.Connected{}) {
		return context.Canceled
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- c.readLoop(ctx, conn, deliver)
	}()
	go func() {
		errCh <- c.writeLoop(ctx, conn)
	}()

	err := <-errCh
	cancel() // stop the other pump
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if s := websocket.CloseStatus(err); s != -1 {
		status = s
	}
	conn.Close(status, reason)

	if errors.Is(err, io.EOF) || status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
		return fmt.Errorf("closed by server: %w", err)
	}
	return err
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn, deliver DeliverFunc) error {
	for {
		var env proto.Envelope
		if err := wsjson.Read(ctx, conn, &env); err != nil {
			return err
		}

		ev, err := eventFromEnvelope(env)
		if err != nil {
			c.log.Warn().Err(err).Str("event", env.Event).Msg("dropping inbound frame")
			continue
		}
		if !deliver(ctx, ev) {
			return context.Canceled
		}
	}
}

func (c *Client) writeLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		select {
		case env := <-c.outbox:
			if err := c.write(ctx, conn, env); err != nil {
				c.log.Error().Err(err).Str("event", env.Event).Msg("write frame")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Client) write(ctx context.Context, conn *websocket.Conn, env proto.Envelope) error {
	if c.opts.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.WriteTimeout)
		defer cancel()
	}
	return wsjson.Write(ctx, conn, env)
}
