package transcripts_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"filing-backend/internal/bootstrap"
	"filing-backend/internal/payments"
	"filing-backend/internal/shared/auth"
	"filing-backend/internal/shared/config"
	"filing-backend/internal/transcripts"
)

type approvingGateway struct{}

func (approvingGateway) Charge(context.Context, payments.ChargeRequest) (payments.ChargeResult, error) {
	return payments.ChargeResult{ChargeID: "ch_test_1"}, nil
}

func buildApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		FilingFeeCents:  15000,
		FilingFeeCcy:    "usd",
	}
	app := bootstrap.Build(context.Background(), cfg)
	app.Gateway = approvingGateway{}
	return app
}

func addSession(t *testing.T, req *http.Request, userID string, admin bool) {
	t.Helper()
	token, err := auth.SignSession(userID, userID, admin)
	if err != nil {
		t.Fatalf("sign session: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func createFiling(t *testing.T, router http.Handler, userID string) string {
	t.Helper()
	form := url.Values{"company_name": {"Acme Holdings LLC"}}
	req := httptest.NewRequest(http.MethodPost, "/file", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	addSession(t, req, userID, false)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("create filing: expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		FilingID string `json:"filingId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return created.FilingID
}

func payFiling(t *testing.T, router http.Handler, userID, filingID string) {
	t.Helper()
	form := url.Values{
		"filing_id":     {filingID},
		"payment_token": {"tok_visa"},
	}
	req := httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	addSession(t, req, userID, false)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("pay: expected status 302, got %d: %s", resp.Code, resp.Body.String())
	}
}

func getTranscript(t *testing.T, router http.Handler, method, userID, filingID string, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/transcript/"+filingID, nil)
	addSession(t, req, userID, admin)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestTranscriptLifecycle(t *testing.T) {
	app := buildApp(t)
	router := app.Router()

	filingID := createFiling(t, router, "user-1")

	// Before payment there is nothing to download and nothing to generate.
	resp := getTranscript(t, router, http.MethodGet, "user-1", filingID, false)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var before struct {
		Status     string `json:"status"`
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&before); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if before.Status != "Pending" || before.Transcript != "" {
		t.Fatalf("before payment = %+v, want Pending with no transcript", before)
	}

	resp = getTranscript(t, router, http.MethodPost, "user-1", filingID, false)
	if resp.Code != http.StatusConflict {
		t.Fatalf("generate before payment: expected status 409, got %d", resp.Code)
	}

	payFiling(t, router, "user-1", filingID)

	resp = getTranscript(t, router, http.MethodPost, "user-1", filingID, false)
	if resp.Code != http.StatusOK {
		t.Fatalf("generate: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var generated struct {
		Status     string `json:"status"`
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if generated.Status != "Completed" || generated.Transcript != transcripts.Key(filingID) {
		t.Fatalf("generated = %+v, want Completed with transcript key", generated)
	}

	resp = getTranscript(t, router, http.MethodGet, "user-1", filingID, false)
	if resp.Code != http.StatusOK {
		t.Fatalf("download: expected status 200, got %d", resp.Code)
	}
	var after struct {
		Status     string `json:"status"`
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&after); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if after.Transcript != transcripts.Key(filingID) {
		t.Fatalf("transcript = %q, want %q", after.Transcript, transcripts.Key(filingID))
	}
}

func TestTranscriptRegenerationIsIdempotent(t *testing.T) {
	app := buildApp(t)
	router := app.Router()

	filingID := createFiling(t, router, "user-1")
	payFiling(t, router, "user-1", filingID)

	if resp := getTranscript(t, router, http.MethodPost, "user-1", filingID, false); resp.Code != http.StatusOK {
		t.Fatalf("first generate: expected status 200, got %d", resp.Code)
	}
	if resp := getTranscript(t, router, http.MethodPost, "user-1", filingID, false); resp.Code != http.StatusOK {
		t.Fatalf("second generate: expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestTranscriptHiddenFromOtherUsers(t *testing.T) {
	app := buildApp(t)
	router := app.Router()

	filingID := createFiling(t, router, "alice")

	resp := getTranscript(t, router, http.MethodGet, "bob", filingID, false)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for foreign filing, got %d", resp.Code)
	}

	// Admins can see any filing's transcript state.
	resp = getTranscript(t, router, http.MethodGet, "admin-1", filingID, true)
	if resp.Code != http.StatusOK {
		t.Fatalf("admin read: expected status 200, got %d", resp.Code)
	}
}

func TestTranscriptUnknownFiling(t *testing.T) {
	app := buildApp(t)
	router := app.Router()

	resp := getTranscript(t, router, http.MethodGet, "user-1", "does-not-exist", false)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
