package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/livecanvas/dashboard-backend/config"
	"github.com/livecanvas/dashboard-backend/internal/storage/postgres"
)

func runMigrate(ctx context.Context, cfg *config.Config, args []string) error {
	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if len(args) > 0 {
		if args[0] != "down" || len(args) != 2 {
			return fmt.Errorf("usage: worker migrate [down <steps>]")
		}
		steps, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid steps %q: %w", args[1], err)
		}
		if err := postgres.MigrateDown(db, steps); err != nil {
			return err
		}
		log.Info().Int("steps", steps).Msg("migrations rolled back")
		return nil
	}

	version, err := postgres.Migrate(db)
	if err != nil {
		return err
	}
	log.Info().Uint("version", version).Msg("migrations applied")
	return nil
}
