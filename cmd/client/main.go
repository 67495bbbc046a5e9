package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vovakirdan/wirechat-client/internal/app"
	"github.com/vovakirdan/wirechat-client/internal/config"
	"github.com/vovakirdan/wirechat-client/internal/identity"
	wclog "github.com/vovakirdan/wirechat-client/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "wirechat-client",
		Short:         "Terminal client for multi-room chat",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, configPath)
		},
	}

	defaults := config.Default()
	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to config file (default ./client.yaml)")
	flags.String("server", defaults.ServerURL, "chat server WebSocket URL")
	flags.String("user", "", "username when no token is given")
	flags.String("token", "", "JWT issued by the chat server")
	flags.String("room", defaults.DefaultRoom, "room joined on connect")
	flags.String("replay", defaults.ReplayPolicy, "history replay policy on room switch (dedup|full)")
	flags.Bool("guard-reentry", defaults.GuardReentry, "ignore re-selecting the current room")
	flags.String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")

	return cmd
}

func run(cmd *cobra.Command, configPath string) error {
	bootLog := wclog.New("info", os.Stderr)

	cfg, resolvedPath, err := config.Load(bootLog, configPath, cmd.Flags())
	if err != nil {
		bootLog.Error().Err(err).Str("path", resolvedPath).Msg("load config")
		return err
	}

	logger := wclog.New(cfg.LogLevel, os.Stderr)
	logger.Debug().Str("path", resolvedPath).Msg("config loaded")

	id, err := identity.Resolve(cfg.IdentityOptions())
	if err != nil {
		logger.Error().Err(err).Msg("resolve identity")
		return fmt.Errorf("resolve identity: %w", err)
	}

	application, err := app.New(cfg, id, os.Stdin, os.Stdout, logger)
	if err != nil {
		logger.Error().Err(err).Msg("init app")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("client exited with error")
		return err
	}
	logger.Info().Msg("client stopped")
	return nil
}
