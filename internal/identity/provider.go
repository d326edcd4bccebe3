package identity

import (
	"context"
	"net/http"
)

// Identity is what an external trust provider knows about a caller. Username
// and Email are optional; when present they allow first-login provisioning.
type Identity struct {
	UserID   string
	Username string
	Email    string
}

// Provider resolves the caller's identity from an incoming request. The
// second return value reports whether the provider vouches for the caller;
// an error means the provider itself was unreachable or misbehaved.
type Provider interface {
	Verify(ctx context.Context, req *http.Request) (Identity, bool, error)
}

// Disabled is a Provider that vouches for nobody. It is used when no
// external identity endpoint is configured.
type Disabled struct{}

func (Disabled) Verify(ctx context.Context, req *http.Request) (Identity, bool, error) {
	return Identity{}, false, nil
}
