// Package handlers implements the JSON HTTP API. Every handler scopes store
// calls to the user carried on the request context by the auth middleware.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/nnamm/go-workout-tracker/internal/apperr"
	"github.com/nnamm/go-workout-tracker/internal/auth"
	"github.com/nnamm/go-workout-tracker/internal/catalog"
	"github.com/nnamm/go-workout-tracker/internal/config"
	"github.com/nnamm/go-workout-tracker/internal/database"

	log "github.com/sirupsen/logrus"
)

const maxBodyBytes = 8 * 1024

// Settings carries the request-scoped behaviour shared by all handlers
type Settings struct {
	RequestTimeout time.Duration
	Development    bool
}

func NewSettings(cfg *config.Config) Settings {
	return Settings{
		RequestTimeout: cfg.RequestTimeout,
		Development:    cfg.IsDevelopment(),
	}
}

type base struct {
	settings Settings
}

// withTimeout sets a timeout for the request context
func (b base) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := b.settings.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}

// userID returns the authenticated user, or an Unauthorized error
func (b base) userID(r *http.Request) (string, error) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return "", apperr.NewAppError(apperr.ErrorTypeUnauthorized, "authentication required")
	}
	return userID, nil
}

// readBody reads a size-limited request body, giving up when ctx is done
func (b base) readBody(ctx context.Context, w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	// read asynchronously so a stalled client cannot outlive the timeout
	bodyCh := make(chan []byte, 1)
	errCh := make(chan error, 1)

	go func() {
		data, err := io.ReadAll(body)
		if err != nil {
			errCh <- err
			return
		}
		bodyCh <- data
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperr.NewAppError(apperr.ErrorTypeInternalServer, "request processing timed out")
		}
		return nil, apperr.NewAppError(apperr.ErrorTypeInternalServer, "request was cancelled")
	case err := <-errCh:
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, apperr.NewAppError(apperr.ErrorTypeBadRequest, "request body too large")
		}
		return nil, apperr.NewAppError(apperr.ErrorTypeInternalServer, "failed to read request body")
	case data := <-bodyCh:
		return data, nil
	}
}

// decodeBody reads the body and unmarshals it into dst
func (b base) decodeBody(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	data, err := b.readBody(ctx, w, r)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, "request body is empty")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return apperr.NewAppError(apperr.ErrorTypeInvalidFormat, "invalid request body: "+err.Error())
	}
	return nil
}

// handleError processes errors and sends appropriate responses
func (b base) handleError(w http.ResponseWriter, err error) {
	var appErr apperr.AppError
	switch {
	case errors.As(err, &appErr):
	case errors.Is(err, database.ErrRecordNotFound):
		appErr = apperr.NewAppError(apperr.ErrorTypeNotFound, "record not found")
	case errors.Is(err, catalog.ErrUpstream):
		appErr = apperr.NewAppError(apperr.ErrorTypeUpstream, err.Error())
	default:
		appErr = apperr.NewAppError(apperr.ErrorTypeInternalServer, err.Error())
	}

	statusCode := appErr.StatusCode()
	entry := log.WithError(err).WithField("type", appErr.Type)
	if statusCode >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Info("request rejected")
	}

	clientMessage := appErr.Error()
	if !b.settings.Development && statusCode == http.StatusInternalServerError {
		clientMessage = "an internal server error occurred"
	}

	b.sendErrorResponse(w, apperr.AppError{Type: appErr.Type, Message: clientMessage}, statusCode)
}

// sendJSONResponse sends a JSON response
func (b base) sendJSONResponse(w http.ResponseWriter, data any, statusCode int) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.WithError(err).Error("failed to encode response")
		b.sendErrorResponse(w, apperr.NewAppError(apperr.ErrorTypeInternalServer, "failed to encode response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(append(payload, '\n'))
}

// sendErrorResponse sends an error response
func (b base) sendErrorResponse(w http.ResponseWriter, err apperr.AppError, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// sendMessage sends a {"message": ...} body with status 200
func (b base) sendMessage(w http.ResponseWriter, message string) {
	b.sendJSONResponse(w, map[string]string{"message": message}, http.StatusOK)
}
