package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/livecanvas/dashboard-backend/internal/auth/domain"
)

// UserRepository is the persistence contract for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsercode(ctx context.Context, usercode string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateUsername(ctx context.Context, id, username string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Deactivate(ctx context.Context, id string) error
}

type AuthService struct {
	users   UserRepository
	tokens  *TokenManager
	revoked RevocationStore
	cost    int
}

func NewAuthService(users UserRepository, tokens *TokenManager, revoked RevocationStore) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		revoked: revoked,
		cost:    bcrypt.DefaultCost,
	}
}

// Signup registers a new active account.
func (s *AuthService) Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	usercode := strings.TrimSpace(req.Usercode)
	username := strings.TrimSpace(req.Username)
	if usercode == "" || username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: usercode, username and password are required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Usercode:     usercode,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, usercode, password string) (*domain.Session, error) {
	usercode = strings.TrimSpace(usercode)
	if usercode == "" || password == "" {
		return nil, fmt.Errorf("%w: usercode and password are required", domain.ErrValidation)
	}

	user, err := s.users.GetByUsercode(ctx, usercode)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Generate(user.ID, user.Usercode)
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      user,
	}, nil
}

// Logout revokes the session until it would have expired.
func (s *AuthService) Logout(ctx context.Context, id domain.Identity) error {
	if id.TokenID == "" {
		return nil
	}
	return s.revoked.Revoke(ctx, id.TokenID, id.ExpiresAt)
}

// VerifySession resolves a token into the identity of an active user.
func (s *AuthService) VerifySession(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: session has ended", domain.ErrUnauthorized)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrUnauthorized
	}

	return &domain.Identity{
		UserID:    user.ID,
		Usercode:  user.Usercode,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *AuthService) Profile(ctx context.Context, id domain.Identity) (*domain.User, error) {
	return s.users.GetByID(ctx, id.UserID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, id domain.Identity, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	return s.users.UpdateUsername(ctx, id.UserID, username)
}

// ChangePassword replaces the password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, id domain.Identity, current, next string) error {
	if next == "" {
		return fmt.Errorf("%w: new password is required", domain.ErrValidation)
	}
	if _, err := s.checkPassword(ctx, id, current); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, id.UserID, string(hash))
}

// Withdraw deactivates the account and ends the current session.
func (s *AuthService) Withdraw(ctx context.Context, id domain.Identity, password string) error {
	if _, err := s.checkPassword(ctx, id, password); err != nil {
		return err
	}
	if err := s.users.Deactivate(ctx, id.UserID); err != nil {
		return err
	}
	return s.Logout(ctx, id)
}

// TokenTTL is how long issued sessions last.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

func (s *AuthService) checkPassword(ctx context.Context, id domain.Identity, password string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
