package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"csvspend/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           8000,
		Email:          "analyst@example.com",
		MaxUploadBytes: 10 << 20,
		LogLevel:       "info",
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	srv, err := New(cfg, log.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return srv
}

// uploadRequest builds a multipart POST /analyze carrying content under the
// "file" field.
func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func do(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestAnalyzeEndpoint(t *testing.T) {
	csvContent := []byte(`Date,Category,Amount
2024-01-01,grocery store,$50.00
2024-01-02,Transport,20`)

	srv := newTestServer(t, testConfig())
	rec := do(srv, uploadRequest(t, "expenses.csv", csvContent))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected json content type, got %q", ct)
	}

	body := decodeBody(t, rec)
	if len(body) != 3 {
		t.Errorf("expected exactly 3 keys, got %v", body)
	}
	if body["answer"] != 50.0 {
		t.Errorf("expected answer 50.0, got %v", body["answer"])
	}
	if body["email"] != "analyst@example.com" {
		t.Errorf("expected email analyst@example.com, got %v", body["email"])
	}
	if body["exam"] != "tds-2025-05-roe" {
		t.Errorf("expected exam tds-2025-05-roe, got %v", body["exam"])
	}
}

func TestAnalyzeNoFoodRows(t *testing.T) {
	csvContent := []byte("category,amount\nTransport,12.00\nUtilities,88.10")

	srv := newTestServer(t, testConfig())
	rec := do(srv, uploadRequest(t, "expenses.csv", csvContent))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["answer"] != 0.0 {
		t.Errorf("expected answer 0.0, got %v", body["answer"])
	}
}

func TestAnalyzeRejectsNonCSVName(t *testing.T) {
	// The suffix check is case-sensitive and runs before any parsing.
	for _, filename := range []string{"report.txt", "report.CSV", "report"} {
		srv := newTestServer(t, testConfig())
		rec := do(srv, uploadRequest(t, filename, []byte("category,amount\nfood,1")))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", filename, rec.Code)
			continue
		}
		body := decodeBody(t, rec)
		if body["status"] != "error" || body["error"] != "file must be a csv" {
			t.Errorf("%s: unexpected error body %v", filename, body)
		}
	}
}

func TestAnalyzeMalformedCSV(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := do(srv, uploadRequest(t, "data.csv", []byte("category,amount\n\"food,5.00")))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	msg, _ := body["error"].(string)
	if !strings.HasPrefix(msg, "error processing csv") {
		t.Errorf("expected error to carry the cause, got %q", msg)
	}
}

func TestAnalyzeEmptyUpload(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := do(srv, uploadRequest(t, "data.csv", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
}

func TestAnalyzeMissingFilePart(t *testing.T) {
	srv := newTestServer(t, testConfig())
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader("not multipart"))
	rec := do(srv, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestAnalyzeMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := do(srv, httptest.NewRequest(http.MethodGet, "/analyze", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestAnalyzeUploadTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.MaxUploadBytes = 16

	srv := newTestServer(t, cfg)
	rec := do(srv, uploadRequest(t, "data.csv", []byte("category,amount\nfood,1.00\nfood,2.00")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestAnalyzeWithKeywordOverride(t *testing.T) {
	keywordsFile := filepath.Join(t.TempDir(), "keywords.yaml")
	if err := os.WriteFile(keywordsFile, []byte("food:\n  - pizza\n"), 0644); err != nil {
		t.Fatalf("failed to write keywords file: %v", err)
	}
	cfg := testConfig()
	cfg.KeywordsFile = keywordsFile

	srv := newTestServer(t, cfg)
	rec := do(srv, uploadRequest(t, "expenses.csv",
		[]byte("category,amount\npizza night,12.00\nfood,99.00")))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["answer"] != 12.0 {
		t.Errorf("expected answer 12.0 under overridden keywords, got %v", body["answer"])
	}
}

func TestNewRejectsMissingKeywordsFile(t *testing.T) {
	cfg := testConfig()
	cfg.KeywordsFile = filepath.Join(t.TempDir(), "nope.yaml")

	if _, err := New(cfg, log.Default()); err == nil {
		t.Errorf("expected an error for a missing keywords file")
	}
}

func TestRootEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := do(srv, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "CSV Analyzer API" {
		t.Errorf("expected service description, got %v", body)
	}
	if body["endpoint"] != "/analyze" || body["method"] != "POST" {
		t.Errorf("expected analyze endpoint pointer, got %v", body)
	}
}

func TestRootUnknownPath(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := do(srv, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestRootMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := do(srv, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := do(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["status"] != "ok" {
		t.Errorf("expected ok status, got %v", body)
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, testConfig())

	rec := do(srv, httptest.NewRequest(http.MethodOptions, "/analyze", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected preflight status 204, got %d", rec.Code)
	}
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected allow-all origin, got %q", origin)
	}

	// Plain requests carry the headers too.
	rec = do(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected allow-all origin on GET, got %q", origin)
	}
}
