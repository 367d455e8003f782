package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Amieurramy/updated-back-main/internal/service"
)

const testSecret = "test-secret-123"

func TestJWTAuth(t *testing.T) {
	t.Parallel()

	valid, err := service.IssueToken([]byte(testSecret), "64b7f0c2a1b2c3d4e5f60718", "user", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	expired, _ := service.IssueToken([]byte(testSecret), "64b7f0c2a1b2c3d4e5f60718", "user", -time.Hour)
	foreign, _ := service.IssueToken([]byte("other-secret"), "64b7f0c2a1b2c3d4e5f60718", "user", time.Hour)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotID, gotRole string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID = UserIDFromContext(r.Context())
				gotRole, _ = r.Context().Value(CtxUserRole).(string)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			JWTAuth(testSecret)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && (gotID != "64b7f0c2a1b2c3d4e5f60718" || gotRole != "user") {
				t.Errorf("context user = %q role = %q", gotID, gotRole)
			}
		})
	}
}

func TestJWTAuth_WebSocketQueryToken(t *testing.T) {
	t.Parallel()

	tok, _ := service.IssueToken([]byte(testSecret), "64b7f0c2a1b2c3d4e5f60718", "admin", time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/admin/recommendations/train/ws?access_token="+tok, nil)
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()
	JWTAuth(testSecret)(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("websocket with query token: status = %d, want 200", rec.Code)
	}

	plain := httptest.NewRequest(http.MethodGet, "/me?access_token="+tok, nil)
	rec = httptest.NewRecorder()
	JWTAuth(testSecret)(next).ServeHTTP(rec, plain)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("plain request with query token: status = %d, want 401", rec.Code)
	}
}

func TestAdminOnly(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"user", http.StatusForbidden},
	} {
		tok, _ := service.IssueToken([]byte(testSecret), "64b7f0c2a1b2c3d4e5f60718", tc.role, time.Hour)
		h := JWTAuth(testSecret)(AdminOnly()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))

		req := httptest.NewRequest(http.MethodGet, "/admin/recommendations/runs", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != tc.want {
			t.Errorf("role %s: status = %d, want %d", tc.role, rec.Code, tc.want)
		}
	}
}
