package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleRoot_Health(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	HandleRoot().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"success":true`) {
		t.Fatalf("expected success envelope, got %q", body)
	}
	if !strings.Contains(body, "Community Service Booking API is running") {
		t.Fatalf("expected health message, got %q", body)
	}
	if !strings.Contains(body, `"version":"1.0.0"`) {
		t.Fatalf("expected version, got %q", body)
	}
}

func TestHandleRoot_UnmatchedRoute(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()

	HandleRoot().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"success":false`) {
		t.Fatalf("expected error envelope, got %q", body)
	}
	if !strings.Contains(body, "Route /nope not found") {
		t.Fatalf("expected route message, got %q", body)
	}
	if !strings.Contains(body, `"status":404`) {
		t.Fatalf("expected status in error body, got %q", body)
	}
}

func TestHandleRoot_NonGETRoot(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	HandleRoot().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
