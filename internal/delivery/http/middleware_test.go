package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("generates an id when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Header().Get(RequestIDHeader) == "" {
			t.Error("response missing request id header")
		}
	})

	t.Run("honors a caller-supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "caller-id")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if got := w.Header().Get(RequestIDHeader); got != "caller-id" {
			t.Errorf("request id = %q, want caller-id", got)
		}
	})
}

func TestCORSMiddleware(t *testing.T) {
	allowed := []string{"http://localhost:5173", "https://*.giftly.app"}
	router := gin.New()
	router.Use(CORSMiddleware(allowed))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed origin gets CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("Allow-Origin = %q", got)
		}
	})

	t.Run("unknown origin gets none", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("unexpected CORS headers for unknown origin")
		}
	})

	t.Run("preflight short-circuits with 204", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", w.Code)
		}
	})
}

func TestIsAllowedOrigin(t *testing.T) {
	allowed := []string{"http://localhost:5173", "https://*.giftly.app", "https://giftly.app"}

	tests := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:5173", true},
		{"https://giftly.app", true},
		{"http://localhost:3000", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isAllowedOrigin(tt.origin, allowed); got != tt.want {
			t.Errorf("isAllowedOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}
