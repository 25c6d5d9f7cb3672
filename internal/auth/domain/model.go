package domain

import "time"

// User is an account that can sign in to the dashboard builder. Inactive
// users have withdrawn and can no longer authenticate.
type User struct {
	ID           string    `json:"id"`
	Usercode     string    `json:"usercode"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is what a verified session token tells the rest of the app.
type Identity struct {
	UserID    string    `json:"user_id"`
	Usercode  string    `json:"usercode"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SignupRequest struct {
	Usercode string
	Username string
	Password string
}

// Session is an issued token with its expiry.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
