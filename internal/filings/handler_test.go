package filings_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"filing-backend/internal/bootstrap"
	"filing-backend/internal/shared/auth"
	"filing-backend/internal/shared/config"
)

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
	return bootstrap.Build(context.Background(), cfg)
}

func addSession(t *testing.T, req *http.Request, userID, username string, admin bool) {
	t.Helper()
	token, err := auth.SignSession(userID, username, admin)
	if err != nil {
		t.Fatalf("sign session: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func submitFiling(t *testing.T, router http.Handler, userID, companyName string) map[string]any {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("company_name", companyName); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fileWriter, err := writer.CreateFormFile("id_upload", "passport.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("fake image bytes")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/new-filing", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addSession(t, req, userID, userID, false)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return created
}

func TestNewFilingCreatesPendingFiling(t *testing.T) {
	app := buildApp(t)
	router := app.Router()

	created := submitFiling(t, router, "user-1", "Acme Holdings LLC")

	if created["filingId"] == "" || created["filingId"] == nil {
		t.Fatalf("expected filingId, got %v", created["filingId"])
	}
	if created["status"] != "Pending" {
		t.Fatalf("status = %v, want Pending", created["status"])
	}
	if created["filingDate"] != time.Now().UTC().Format("2006-01-02") {
		t.Fatalf("filingDate = %v, want today", created["filingDate"])
	}
	if created["documentName"] != "passport.png" {
		t.Fatalf("documentName = %v, want passport.png", created["documentName"])
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	addSession(t, req, "user-1", "user-1", false)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var list []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("dashboard filings = %d, want 1", len(list))
	}
}

func TestDashboardScopedToOwner(t *testing.T) {
	app := buildApp(t)
	router := app.Router()

	submitFiling(t, router, "alice", "Alice Ventures LLC")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	addSession(t, req, "bob", "bob", false)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var list []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("bob sees %d filings, want 0", len(list))
	}
}

func TestAdminDashboardListsEveryFiling(t *testing.T) {
	app := buildApp(t)
	router := app.Router()

	submitFiling(t, router, "alice", "Alice Ventures LLC")
	submitFiling(t, router, "bob", "Bob Logistics Inc")

	req := httptest.NewRequest(http.MethodGet, "/admin-dashboard", nil)
	addSession(t, req, "admin-1", "admin", true)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var list []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode admin dashboard: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("admin sees %d filings, want 2", len(list))
	}
}

func TestAdminDashboardRedirectsNonAdmin(t *testing.T) {
	app := buildApp(t)
	router := app.Router()

	req := httptest.NewRequest(http.MethodGet, "/admin-dashboard", nil)
	addSession(t, req, "user-1", "user-1", false)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("redirect location = %q, want /dashboard", loc)
	}
}

func TestFileRequiresCompanyName(t *testing.T) {
	app := buildApp(t)
	router := app.Router()

	form := url.Values{"company_name": {"   "}}
	req := httptest.NewRequest(http.MethodPost, "/file", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	addSession(t, req, "user-1", "user-1", false)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "validation_error") {
		t.Fatalf("expected validation_error body, got %s", resp.Body.String())
	}
}

func TestDashboardRequiresSession(t *testing.T) {
	app := buildApp(t)
	router := app.Router()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}
