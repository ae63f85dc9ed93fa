package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zulandar/slackbridge/internal/config"
	"github.com/zulandar/slackbridge/internal/db"
	"github.com/zulandar/slackbridge/internal/server"
	"github.com/zulandar/slackbridge/internal/slackapi"
	"github.com/zulandar/slackbridge/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the bridge HTTP server",
		Long:  "Loads configuration from the environment, migrates the credential table, and serves the bridge API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gdb, err := db.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	return server.Start(ctx, server.Opts{
		Store:         store.New(gdb),
		NewClient:     slackapi.New,
		OAuth:         slackapi.NewOAuth(cfg.SlackClientID, cfg.SlackClientSecret),
		AppID:         cfg.SlackAppID,
		SigningSecret: cfg.SlackSigningKey,
		Port:          cfg.Port,
		Out:           cmd.OutOrStdout(),
	})
}
