package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorsMiddleware(t *testing.T) {
	testCases := []struct {
		name           string
		method         string
		expectNext     bool
		expectedStatus int
	}{
		{
			name:           "Preflight",
			method:         http.MethodOptions,
			expectNext:     false,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Get",
			method:         http.MethodGet,
			expectNext:     true,
			expectedStatus: http.StatusTeapot,
		},
		{
			name:           "Delete",
			method:         http.MethodDelete,
			expectNext:     true,
			expectedStatus: http.StatusTeapot,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusTeapot)
			})

			req := httptest.NewRequest(tc.method, "/workouts", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			rr := httptest.NewRecorder()

			Cors()(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectNext, called)
			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type, Authorization", rr.Header().Get("Access-Control-Allow-Headers"))
		})
	}
}
