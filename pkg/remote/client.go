package remote

import (
	"context"
	"errors"
)

// Client calls the remote assessment service. Implementations make exactly
// one attempt; retries and fallback belong to the caller.
type Client interface {
	Complete(ctx context.Context, req CompleteRequest) (*CompleteResponse, error)
}

// ErrDisabled is returned when no remote endpoint is configured. The
// assessment service treats it like any other remote failure and computes
// locally.
var ErrDisabled = errors.New("remote assessment disabled")

type disabled struct{}

// NewDisabled returns a client that always fails fast, forcing the local
// fallback path.
func NewDisabled() Client { return disabled{} }

func (disabled) Complete(context.Context, CompleteRequest) (*CompleteResponse, error) {
	return nil, ErrDisabled
}
