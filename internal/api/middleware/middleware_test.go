package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dvloznov/cnab-returns/internal/logger"
)

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	h := RequestID(logger.NewWithWriter(&buf))(Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/returns", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"Internal server error"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
	if !strings.Contains(buf.String(), "Panic recovered") || !strings.Contains(buf.String(), "request_id") {
		t.Errorf("log = %s", buf.String())
	}
}

func TestRequestID_KeepsIncomingID(t *testing.T) {
	var buf bytes.Buffer
	h := RequestID(logger.NewWithWriter(&buf))(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "req-42" {
		t.Errorf("%s = %q, want req-42", RequestIDHeader, got)
	}
	if !strings.Contains(buf.String(), `"request_id":"req-42"`) || !strings.Contains(buf.String(), `"status":418`) {
		t.Errorf("log = %s", buf.String())
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, "bad")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s", ct)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"error":"bad"}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}
