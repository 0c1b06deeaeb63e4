package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/nnamm/go-workout-tracker/internal/apperr"
	"github.com/nnamm/go-workout-tracker/internal/database"
	"github.com/nnamm/go-workout-tracker/internal/models"
	"github.com/nnamm/go-workout-tracker/internal/validators"
)

// WorkoutHandler handles HTTP requests for workouts
type WorkoutHandler struct {
	base
	DB        database.WorkoutStore
	validator validators.WorkoutValidator
}

func NewWorkoutHandler(db database.WorkoutStore, settings Settings) *WorkoutHandler {
	return &WorkoutHandler{
		base:      base{settings: settings},
		DB:        db,
		validator: validators.NewWorkoutValidator(),
	}
}

// WorkoutResult represents the response structure for workouts
type WorkoutResult struct {
	Workouts []models.Workout `json:"workouts"`
}

// GetWorkouts lists the user's workouts, optionally restricted to a year or a month (year=YYYY, month=MM)
func (h *WorkoutHandler) GetWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	query := r.URL.Query()
	var workouts []models.Workout

	switch {
	case query.Get("year") != "":
		workouts, err = h.getByYearMonth(ctx, userID, query.Get("year"), query.Get("month"))
	case query.Get("month") != "":
		err = apperr.NewAppError(apperr.ErrorTypeBadRequest, "year is required when month is specified")
	default:
		workouts, err = h.DB.ReadWorkouts(ctx, userID)
	}
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.sendJSONResponse(w, WorkoutResult{Workouts: workouts}, http.StatusOK)
}

// CreateWorkout handles the creation of a new workout
func (h *WorkoutHandler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var workout models.Workout
	if err := h.decodeBody(ctx, w, r, &workout); err != nil {
		h.handleError(w, err)
		return
	}
	workout.UserID = userID

	if err := h.validator.Validate(&workout); err != nil {
		h.handleError(w, err)
		return
	}

	created, err := h.DB.CreateWorkout(ctx, &workout)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.sendJSONResponse(w, WorkoutResult{Workouts: []models.Workout{*created}}, http.StatusCreated)
}

// GetWorkout returns a single workout by id
func (h *WorkoutHandler) GetWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	id := mux.Vars(r)["id"]
	workout, err := h.DB.ReadWorkout(ctx, userID, id)
	if err != nil {
		h.handleError(w, err)
		return
	}
	if workout == nil {
		h.handleError(w, apperr.NewAppError(apperr.ErrorTypeNotFound, "workout not found: "+id))
		return
	}

	h.sendJSONResponse(w, WorkoutResult{Workouts: []models.Workout{*workout}}, http.StatusOK)
}

// UpdateWorkout replaces the editable fields of an existing workout
func (h *WorkoutHandler) UpdateWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var workout models.Workout
	if err := h.decodeBody(ctx, w, r, &workout); err != nil {
		h.handleError(w, err)
		return
	}
	// the path decides which row is updated, never the body
	workout.ID = mux.Vars(r)["id"]
	workout.UserID = userID

	if err := h.validator.Validate(&workout); err != nil {
		h.handleError(w, err)
		return
	}

	if err := h.DB.UpdateWorkout(ctx, &workout); err != nil {
		h.handleError(w, err)
		return
	}

	updated, err := h.DB.ReadWorkout(ctx, userID, workout.ID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	if updated == nil {
		h.handleError(w, apperr.NewAppError(apperr.ErrorTypeNotFound, "workout not found: "+workout.ID))
		return
	}

	h.sendJSONResponse(w, WorkoutResult{Workouts: []models.Workout{*updated}}, http.StatusOK)
}

// DeleteWorkout handles the deletion of a workout
func (h *WorkoutHandler) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	if err := h.DB.DeleteWorkout(ctx, userID, mux.Vars(r)["id"]); err != nil {
		h.handleError(w, err)
		return
	}

	h.sendMessage(w, "Workout deleted successfully")
}

// getByYearMonth retrieves workouts for the specified year and optional month (YYYY, MM)
func (h *WorkoutHandler) getByYearMonth(ctx context.Context, userID, yearStr, monthStr string) ([]models.Workout, error) {
	year, err := time.ParseInLocation("2006", yearStr, time.Local)
	if err != nil {
		return nil, apperr.NewAppError(apperr.ErrorTypeInvalidYear, "Invalid year format: "+yearStr+" (Use YYYY)")
	}

	start, end := year, year.AddDate(1, 0, 0)
	if monthStr != "" {
		month, err := time.Parse("01", monthStr)
		if err != nil {
			return nil, apperr.NewAppError(apperr.ErrorTypeInvalidMonth, "Invalid month format: "+monthStr+" (Use MM)")
		}
		start = time.Date(year.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
		end = start.AddDate(0, 1, 0)
	}

	return h.DB.ReadWorkoutsByRange(ctx, userID, start, end)
}
