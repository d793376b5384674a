package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealth(t *testing.T) {
	a := newTestApp(t)
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestCheckDB(t *testing.T) {
	a := newTestApp(t)

	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/check_db", nil))
	if w.Code != http.StatusOK || w.Body.String() != "Database connection is successful!" {
		t.Fatalf("check_db: %d %q", w.Code, w.Body.String())
	}

	sqlDB, err := a.db.DB()
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	_ = sqlDB.Close()

	w = httptest.NewRecorder()
	a.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/check_db", nil))
	if w.Code != http.StatusInternalServerError || w.Body.Len() == 0 {
		t.Fatalf("closed db: %d %q", w.Code, w.Body.String())
	}
}
