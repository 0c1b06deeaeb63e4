// Package testutil holds HTTP helpers shared by handler and server tests.
package testutil

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/nnamm/go-workout-tracker/internal/auth"
)

// CreateTestContext returns the context and cancel function for testing
func CreateTestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// CreateRequestContext creates an HTTP request with JSON content type for testing
func CreateRequestContext(ctx context.Context, method, url, body string) *http.Request {
	req, _ := http.NewRequestWithContext(ctx, method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithUser returns a copy of req authenticated as userID, as the auth middleware would leave it
func WithUser(req *http.Request, userID string) *http.Request {
	return req.WithContext(auth.WithClaims(req.Context(), &auth.Claims{Subject: userID}))
}

// BearerToken issues a short-lived token for userID and sets it on req
func BearerToken(t *testing.T, req *http.Request, cfg auth.Config, userID string) {
	t.Helper()
	token, err := auth.IssueToken(cfg, userID, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// AssertHTTPStatusCode checks if the status code is as expected
func AssertHTTPStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("Status code = %d, want %d", got, want)
	}
}

// FormatDateForAPI formats the date for API query parameters (YYYYMMDD)
func FormatDateForAPI(t time.Time) string {
	return t.Format("20060102")
}
