package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/livecanvas/dashboard-backend/config"
	"github.com/livecanvas/dashboard-backend/internal/logging"
)

const usage = `usage: worker <command> [args]

commands:
  migrate [down <steps>]                         apply (or roll back) schema migrations
  push-value <code> <value>                      upsert a live value
  list-values                                    print all live values
  create-user <usercode> <username> <password>   register an account`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.New(logging.Options{
		Level:       cfg.App.LogLevel,
		Environment: cfg.App.Environment,
		Service:     "dashboard-worker",
		Version:     cfg.App.Version,
		Writer:      os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args[2:]
	switch os.Args[1] {
	case "migrate":
		err = runMigrate(ctx, cfg, args)
	case "push-value":
		err = runPushValue(ctx, cfg, args)
	case "list-values":
		err = runListValues(ctx, cfg, os.Stdout)
	case "create-user":
		err = runCreateUser(ctx, cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("command failed")
	}
}
