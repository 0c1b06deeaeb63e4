package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nnamm/go-workout-tracker/internal/database"
	"github.com/nnamm/go-workout-tracker/internal/models"
	"github.com/nnamm/go-workout-tracker/internal/validators"
)

// ExerciseTrackingHandler handles HTTP requests for tracked catalog exercises
type ExerciseTrackingHandler struct {
	base
	DB        database.ExerciseTrackingStore
	validator validators.ExerciseTrackingValidator
}

func NewExerciseTrackingHandler(db database.ExerciseTrackingStore, settings Settings) *ExerciseTrackingHandler {
	return &ExerciseTrackingHandler{
		base:      base{settings: settings},
		DB:        db,
		validator: validators.NewExerciseTrackingValidator(),
	}
}

type ExerciseTrackingResult struct {
	Tracking []models.ExerciseTracking `json:"tracking"`
}

func (h *ExerciseTrackingHandler) GetExerciseTracking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	tracking, err := h.DB.ReadExerciseTrackings(ctx, userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.sendJSONResponse(w, ExerciseTrackingResult{Tracking: tracking}, http.StatusOK)
}

func (h *ExerciseTrackingHandler) CreateExerciseTracking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var et models.ExerciseTracking
	if err := h.decodeBody(ctx, w, r, &et); err != nil {
		h.handleError(w, err)
		return
	}
	et.UserID = userID

	if err := h.validator.Validate(&et); err != nil {
		h.handleError(w, err)
		return
	}

	created, err := h.DB.CreateExerciseTracking(ctx, &et)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.sendJSONResponse(w, ExerciseTrackingResult{Tracking: []models.ExerciseTracking{*created}}, http.StatusCreated)
}

func (h *ExerciseTrackingHandler) DeleteExerciseTracking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	if err := h.DB.DeleteExerciseTracking(ctx, userID, mux.Vars(r)["id"]); err != nil {
		h.handleError(w, err)
		return
	}

	h.sendMessage(w, "Exercise tracking deleted successfully")
}
