package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWordPressProviderForwardsCookies(t *testing.T) {
	var gotCookie string
	oracle := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("wordpress_logged_in"); err == nil {
			gotCookie = c.Value
		}
		fmt.Fprintln(w, `{"logged_in": true, "user_id": 7, "username": "alice", "email": "alice@example.com"}`)
	}))
	t.Cleanup(oracle.Close)

	provider := NewWordPressProvider(oracle.URL)

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	req.AddCookie(&http.Cookie{Name: "wordpress_logged_in", Value: "abc123"})

	identity, ok, err := provider.Verify(context.Background(), req)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected provider to vouch for caller")
	}
	if gotCookie != "abc123" {
		t.Fatalf("expected cookie forwarded, got %q", gotCookie)
	}
	if identity.UserID != "7" {
		t.Fatalf("expected numeric user_id normalized to string, got %q", identity.UserID)
	}
	if identity.Username != "alice" || identity.Email != "alice@example.com" {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestWordPressProviderStringUserID(t *testing.T) {
	oracle := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"logged_in": true, "user_id": "user-42"}`)
	}))
	t.Cleanup(oracle.Close)

	provider := NewWordPressProvider(oracle.URL)
	identity, ok, err := provider.Verify(context.Background(), httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok || identity.UserID != "user-42" {
		t.Fatalf("expected user-42, got ok=%v identity=%+v", ok, identity)
	}
}

func TestWordPressProviderNotLoggedIn(t *testing.T) {
	oracle := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"logged_in": false}`)
	}))
	t.Cleanup(oracle.Close)

	provider := NewWordPressProvider(oracle.URL)
	_, ok, err := provider.Verify(context.Background(), httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected anonymous result")
	}
}

func TestWordPressProviderUnreachableIsError(t *testing.T) {
	oracle := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	oracle.Close()

	provider := NewWordPressProvider(oracle.URL)
	_, ok, err := provider.Verify(context.Background(), httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	if err == nil {
		t.Fatalf("expected error for unreachable endpoint")
	}
	if ok {
		t.Fatalf("expected no identity on error")
	}
}

func TestWordPressProviderNon200IsError(t *testing.T) {
	oracle := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(oracle.Close)

	provider := NewWordPressProvider(oracle.URL)
	if _, _, err := provider.Verify(context.Background(), httptest.NewRequest(http.MethodGet, "/auth/login", nil)); err == nil {
		t.Fatalf("expected error for 502 response")
	}
}
