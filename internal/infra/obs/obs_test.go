package obs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDPropagates(t *testing.T) {
	var buf bytes.Buffer
	m := Middleware{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}
	r := gin.New()
	r.Use(m.RequestID(), m.LoggerMiddleware())
	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if seen != "req-1" || rec.Header().Get("X-Request-ID") != "req-1" {
		t.Fatalf("request id not propagated: ctx=%q header=%q", seen, rec.Header().Get("X-Request-ID"))
	}
	if !strings.Contains(buf.String(), `"request_id":"req-1"`) {
		t.Fatalf("log line missing request id: %s", buf.String())
	}
}

func TestRequestIDGenerated(t *testing.T) {
	r := gin.New()
	r.Use(Middleware{}.RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected generated request id")
	}
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]Check
		want   int
	}{
		{name: "no checks", want: http.StatusOK},
		{name: "healthy", checks: map[string]Check{"mongo": func(context.Context) error { return nil }}, want: http.StatusOK},
		{name: "failing", checks: map[string]Check{"kafka": func(context.Context) error { return errors.New("down") }}, want: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/readyz", HealthHandlers{Checks: tt.checks}.Readyz)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestNewLoggerJSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "prod").Info("hello", "k", "v")
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("expected JSON output, got %q", buf.String())
	}
}
