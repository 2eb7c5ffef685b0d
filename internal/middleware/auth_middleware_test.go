//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"localGuide/business/feed"
	"localGuide/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const testSecret = "test-secret"

const testUserID = "7d1f3a52-6c0e-4b8f-9f43-1a2b3c4d5e6f"

func run(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, string, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var userID string
	called := false
	err := mw(func(c echo.Context) error {
		called = true
		userID, _ = c.Get("user_id").(string)
		return c.NoContent(http.StatusNoContent)
	})(c)
	if err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	return rec, userID, called
}

func token(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()
	tok, err := utils.GenerateJWT(subject, "authenticated", testSecret, ttl)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	valid := token(t, testUserID, time.Hour)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"expired", "Bearer " + token(t, testUserID, -time.Minute), http.StatusUnauthorized},
		{"subject not a uuid", "Bearer " + token(t, "42", time.Hour), http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, userID, called := run(t, AuthMiddleware(testSecret), tt.header)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if called != (tt.status == http.StatusNoContent) {
				t.Fatalf("next called = %v", called)
			}
			if called && userID != testUserID {
				t.Errorf("user_id = %q", userID)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"anonymous", "", ""},
		{"garbage token", "Bearer nope", ""},
		{"valid", "Bearer " + token(t, testUserID, time.Hour), testUserID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, userID, called := run(t, OptionalAuth(testSecret), tt.header)
			if !called || rec.Code != http.StatusNoContent {
				t.Fatalf("request must pass through, status %d", rec.Code)
			}
			if userID != tt.want {
				t.Errorf("user_id = %q, want %q", userID, tt.want)
			}
		})
	}
}

func TestTraceMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(echomiddleware.RequestID(), TraceMiddleware())

	var traceID string
	e.GET("/", func(c echo.Context) error {
		traceID = feed.TraceIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if traceID != "req-123" {
		t.Fatalf("trace id = %q, want req-123", traceID)
	}
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(echo.NewHTTPError(http.StatusNotFound, "route not found"), c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `{"success":false,"error":{"code":"NOT_FOUND","message":"route not found"}}`
	if got := rec.Body.String(); got != want+"\n" {
		t.Errorf("body = %s", got)
	}
}
