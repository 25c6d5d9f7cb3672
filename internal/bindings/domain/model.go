package domain

import "time"

// Binding maps a short data code to the message-bus topic it is fed from.
type Binding struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Topic       string    `json:"topic"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateInput struct {
	Code        string
	Topic       string
	Description *string
}

// UpdateInput is a partial update; nil fields are left unchanged. The
// description is written only when SetDescription is true, and a nil
// Description then clears it.
type UpdateInput struct {
	Code           *string
	Topic          *string
	SetDescription bool
	Description    *string
}
