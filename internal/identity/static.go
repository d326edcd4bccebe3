package identity

import (
	"context"
	"net/http"
)

// StaticProvider vouches for a fixed identity. It replaces the production
// oracle in tests and local development.
type StaticProvider struct {
	Identity Identity
	LoggedIn bool
	Err      error
}

func (p *StaticProvider) Verify(ctx context.Context, req *http.Request) (Identity, bool, error) {
	if p.Err != nil {
		return Identity{}, false, p.Err
	}
	return p.Identity, p.LoggedIn, nil
}

var _ Provider = (*StaticProvider)(nil)
