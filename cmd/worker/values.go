package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/livecanvas/dashboard-backend/config"
	"github.com/livecanvas/dashboard-backend/internal/bootstrap"
	"github.com/livecanvas/dashboard-backend/internal/livevalues/repository"
	"github.com/livecanvas/dashboard-backend/internal/storage/postgres"
)

func openLiveStore(ctx context.Context, cfg *config.Config) (*repository.PGStore, func(), error) {
	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database), MaxConns: 2})
	if err != nil {
		return nil, nil, err
	}
	return repository.NewPGStore(pool), pool.Close, nil
}

func runPushValue(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 || args[0] == "" {
		return fmt.Errorf("usage: worker push-value <code> <value>")
	}

	store, closeFn, err := openLiveStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	v, err := store.Upsert(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	log.Info().Str("code", v.Code).Str("value", v.Value).Msg("live value stored")
	return nil
}

func runListValues(ctx context.Context, cfg *config.Config, out io.Writer) error {
	store, closeFn, err := openLiveStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	values, err := store.List(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tVALUE\tUPDATED")
	for _, v := range values {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Code, v.Value, v.UpdatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}
