package handlers

import (
	"net/http"

	"github.com/nnamm/go-workout-tracker/internal/apperr"
	"github.com/nnamm/go-workout-tracker/internal/database"
	"github.com/nnamm/go-workout-tracker/internal/models"
	"github.com/nnamm/go-workout-tracker/internal/validators"
)

// ProfileHandler reads and replaces the authenticated user's profile
type ProfileHandler struct {
	base
	DB database.ProfileStore
}

func NewProfileHandler(db database.ProfileStore, settings Settings) *ProfileHandler {
	return &ProfileHandler{
		base: base{settings: settings},
		DB:   db,
	}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	details, err := h.DB.ReadUserDetails(ctx, userID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	if details == nil {
		h.handleError(w, apperr.NewAppError(apperr.ErrorTypeNotFound, "profile not found"))
		return
	}

	h.sendJSONResponse(w, details, http.StatusOK)
}

// PutProfile creates or replaces the profile. The owner always comes from the token.
func (h *ProfileHandler) PutProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var details models.UserDetails
	if err := h.decodeBody(ctx, w, r, &details); err != nil {
		h.handleError(w, err)
		return
	}
	details.UserID = userID

	if err := validators.ValidateUserDetails(&details); err != nil {
		h.handleError(w, err)
		return
	}

	stored, err := h.DB.UpsertUserDetails(ctx, &details)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.sendJSONResponse(w, stored, http.StatusOK)
}
