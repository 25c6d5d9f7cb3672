package domain

import (
	"errors"
	"time"
)

// LiveValue is the most recently observed value for a data code.
type LiveValue struct {
	Code      string    `json:"code"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrNotFound   = errors.New("live value not found")
	ErrValidation = errors.New("validation failed")
)

// Snapshot flattens a value list into a code → value map.
func Snapshot(values []LiveValue) map[string]string {
	out := make(map[string]string, len(values))
	for _, v := range values {
		out[v.Code] = v.Value
	}
	return out
}
