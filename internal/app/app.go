package app

import (
	"bufio"
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/vovakirdan/wirechat-client/internal/config"
	"github.com/vovakirdan/wirechat-client/internal/core"
	"github.com/vovakirdan/wirechat-client/internal/identity"
	"github.com/vovakirdan/wirechat-client/internal/transport/ws"
	"github.com/vovakirdan/wirechat-client/internal/view/console"
)

const loopDepth = 64

// App wires the session core to the WebSocket transport and a terminal.
type App struct {
	session   *core.Session
	loop      *core.Loop
	transport *ws.Client
	view      *console.View
	in        io.Reader
	log       *zerolog.Logger
}

// New constructs the application for one connection.
func New(cfg config.Config, id identity.Identity, in io.Reader, out io.Writer, logger *zerolog.Logger) (*App, error) {
	opts, err := cfg.SessionOptions()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	header := http.Header{}
	if id.Token != "" {
		header.Set("Authorization", "Bearer "+id.Token)
	}
	transport := ws.New(ws.Options{
		URL:          cfg.ServerURL,
		Header:       header,
		DialTimeout:  cfg.DialTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ReconnectMin: cfg.ReconnectMin,
		ReconnectMax: cfg.ReconnectMax,
		QueueSize:    cfg.SendQueue,
	}, logger)

	view := console.New(out, cfg.Rooms)
	session := core.NewSession(core.Config{
		Self:        id.Username,
		DefaultRoom: cfg.DefaultRoom,
		Options:     opts,
		Transport:   transport,
		View:        view,
		Logger:      logger,
	})

	return &App{
		session:   session,
		loop:      core.NewLoop(session, loopDepth),
		transport: transport,
		view:      view,
		in:        in,
		log:       logger,
	}, nil
}

// Run blocks until ctx is cancelled, input ends or the user types /quit.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.log.Info().Str("user", a.session.Self()).Msg("starting chat client")

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		a.loop.Run(ctx)
	}()

	transportErr := make(chan error, 1)
	go func() {
		transportErr <- a.transport.Run(ctx, a.loop.Deliver)
	}()

	a.readInput(ctx)
	cancel()

	<-loopDone
	return <-transportErr
}

func (a *App) readInput(ctx context.Context) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(a.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if quit := a.handleLine(ctx, line); quit {
				return
			}
		}
	}
}
