package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/livecanvas/dashboard-backend/config"
	"github.com/livecanvas/dashboard-backend/internal/auth/domain"
	"github.com/livecanvas/dashboard-backend/internal/auth/repository"
	"github.com/livecanvas/dashboard-backend/internal/auth/service"
	"github.com/livecanvas/dashboard-backend/internal/storage/postgres"
)

func runCreateUser(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: worker create-user <usercode> <username> <password>")
	}

	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := service.NewAuthService(
		repository.NewUserRepository(db),
		service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		service.NewMemoryRevocationStore(),
	)
	user, err := svc.Signup(ctx, domain.SignupRequest{Usercode: args[0], Username: args[1], Password: args[2]})
	if err != nil {
		return err
	}
	log.Info().Str("id", user.ID).Str("usercode", user.Usercode).Msg("user created")
	return nil
}
