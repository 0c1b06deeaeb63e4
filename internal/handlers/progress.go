package handlers

import (
	"net/http"
	"time"

	"github.com/nnamm/go-workout-tracker/internal/apperr"
	"github.com/nnamm/go-workout-tracker/internal/database"
	"github.com/nnamm/go-workout-tracker/internal/models"
	"github.com/nnamm/go-workout-tracker/internal/validators"
)

// ProgressHandler records and lists minutes spent exercising per day
type ProgressHandler struct {
	base
	DB database.ProgressStore
}

func NewProgressHandler(db database.ProgressStore, settings Settings) *ProgressHandler {
	return &ProgressHandler{
		base: base{settings: settings},
		DB:   db,
	}
}

type ProgressResult struct {
	Progress []models.DailyProgress `json:"progress"`
}

// AddProgressRequest is the body of POST /progress/daily. An empty date means today.
type AddProgressRequest struct {
	Date         string `json:"date"`
	MinutesSpent int    `json:"minutes_spent"`
}

func (h *ProgressHandler) GetDailyProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	progress, err := h.DB.ReadDailyProgress(ctx, userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.sendJSONResponse(w, ProgressResult{Progress: progress}, http.StatusOK)
}

// AddDailyProgress adds minutes to the day's total, creating the day if needed
func (h *ProgressHandler) AddDailyProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req AddProgressRequest
	if err := h.decodeBody(ctx, w, r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	date, err := models.ParseFlexibleTime(req.Date)
	if err != nil {
		h.handleError(w, apperr.NewAppError(apperr.ErrorTypeInvalidDate, err.Error()))
		return
	}
	if date.IsZero() {
		date = time.Now()
	}

	if err := validators.ValidateDailyProgress(date, req.MinutesSpent); err != nil {
		h.handleError(w, err)
		return
	}

	progress, err := h.DB.AddDailyProgress(ctx, userID, date, req.MinutesSpent)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.sendJSONResponse(w, ProgressResult{Progress: []models.DailyProgress{*progress}}, http.StatusOK)
}
