package http

import (
	"context"
	"time"

	"github.com/livecanvas/dashboard-backend/internal/auth/domain"
)

// Service is the auth surface the handlers use.
type Service interface {
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error)
	Login(ctx context.Context, usercode, password string) (*domain.Session, error)
	Logout(ctx context.Context, id domain.Identity) error
	Profile(ctx context.Context, id domain.Identity) (*domain.User, error)
	UpdateProfile(ctx context.Context, id domain.Identity, username string) (*domain.User, error)
	ChangePassword(ctx context.Context, id domain.Identity, current, next string) error
	Withdraw(ctx context.Context, id domain.Identity, password string) error
}

type Handler struct {
	svc          Service
	cookieSecure bool
	now          func() time.Time
}

func New(svc Service, cookieSecure bool) *Handler {
	return &Handler{svc: svc, cookieSecure: cookieSecure, now: time.Now}
}

type signupReq struct {
	Usercode string `json:"usercode" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginReq struct {
	Usercode string `json:"usercode" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type profileReq struct {
	Username string `json:"username" binding:"required"`
}

type passwordReq struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type withdrawReq struct {
	Password string `json:"password" binding:"required"`
}
