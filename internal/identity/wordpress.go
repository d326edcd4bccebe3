package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const checkLoginTimeout = 5 * time.Second

// WordPressProvider delegates authentication to a WordPress check-login
// endpoint by forwarding the caller's cookies.
type WordPressProvider struct {
	endpoint string
	client   *http.Client
}

// NewWordPressProvider builds a provider for the given check-login endpoint.
func NewWordPressProvider(endpoint string) *WordPressProvider {
	return &WordPressProvider{
		endpoint: endpoint,
		client:   &http.Client{Timeout: checkLoginTimeout},
	}
}

type checkLoginResponse struct {
	LoggedIn bool            `json:"logged_in"`
	UserID   json.RawMessage `json:"user_id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
}

// Verify forwards the caller's cookies to the check-login endpoint. A
// non-2xx response or transport failure is an error; the caller treats it
// as anonymous rather than fatal.
func (p *WordPressProvider) Verify(ctx context.Context, req *http.Request) (Identity, bool, error) {
	outbound, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return Identity{}, false, fmt.Errorf("build check-login request: %w", err)
	}
	for _, cookie := range req.Cookies() {
		outbound.AddCookie(cookie)
	}

	resp, err := p.client.Do(outbound)
	if err != nil {
		return Identity{}, false, fmt.Errorf("check-login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, false, fmt.Errorf("check-login status %d", resp.StatusCode)
	}

	var payload checkLoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Identity{}, false, fmt.Errorf("decode check-login response: %w", err)
	}

	if !payload.LoggedIn {
		return Identity{}, false, nil
	}

	// The endpoint may encode user_id as a number or a string.
	userID := strings.Trim(strings.TrimSpace(string(payload.UserID)), `"`)
	if userID == "" || userID == "null" {
		return Identity{}, false, nil
	}

	return Identity{
		UserID:   userID,
		Username: strings.TrimSpace(payload.Username),
		Email:    strings.TrimSpace(payload.Email),
	}, true, nil
}

var _ Provider = (*WordPressProvider)(nil)
