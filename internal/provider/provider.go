package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Generator turns a user prompt into Lua source text. Implementations make
// exactly one attempt per call; retries belong to the caller.
type Generator interface {
	// ID returns the provider identifier (e.g. "openai", "anthropic")
	ID() string

	// Generate sends the prompt with system instructions and returns the
	// raw response text.
	Generate(ctx context.Context, prompt, system string) (string, error)
}

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	KindUnavailable ErrorKind = "unavailable" // API error, bad response
	KindTimeout     ErrorKind = "timeout"     // deadline or network timeout
)

// Error wraps a provider failure with its origin and kind.
type Error struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s provider %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapErr classifies an SDK error into a provider Error.
func wrapErr(providerID string, err error) *Error {
	kind := KindUnavailable
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = KindTimeout
	}
	return &Error{Provider: providerID, Kind: kind, Err: err}
}

// IsTimeout reports whether err is a provider timeout.
func IsTimeout(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == KindTimeout
}
