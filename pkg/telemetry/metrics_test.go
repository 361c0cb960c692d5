package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestServerExposesMetrics(t *testing.T) {
	srv := Server(9102)

	if srv.Addr != ":9102" {
		t.Errorf("Expected addr :9102, got %s", srv.Addr)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from /metrics, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/other", nil)
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", rec.Code)
	}
}
