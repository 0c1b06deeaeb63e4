package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nnamm/go-workout-tracker/internal/apperr"
	"github.com/nnamm/go-workout-tracker/internal/models"
)

// ExerciseCatalog is the part of the catalog client the handler needs
type ExerciseCatalog interface {
	List(ctx context.Context, target string, limit, offset int) ([]models.Exercise, error)
	Targets(ctx context.Context) ([]string, error)
}

// ExerciseCatalogHandler passes catalog listings through to the client
type ExerciseCatalogHandler struct {
	base
	Catalog ExerciseCatalog
}

func NewExerciseCatalogHandler(c ExerciseCatalog, settings Settings) *ExerciseCatalogHandler {
	return &ExerciseCatalogHandler{
		base:    base{settings: settings},
		Catalog: c,
	}
}

// GetExercises lists catalog exercises. Query: target=s, limit=n, offset=n.
func (h *ExerciseCatalogHandler) GetExercises(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	query := r.URL.Query()
	limit, err := intParam(query.Get("limit"), "limit")
	if err != nil {
		h.handleError(w, err)
		return
	}
	offset, err := intParam(query.Get("offset"), "offset")
	if err != nil {
		h.handleError(w, err)
		return
	}

	exercises, err := h.Catalog.List(ctx, query.Get("target"), limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	// the catalog shape is a bare array, keep it that way
	h.sendJSONResponse(w, exercises, http.StatusOK)
}

// GetTargets lists the target muscles the catalog can filter by
func (h *ExerciseCatalogHandler) GetTargets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	targets, err := h.Catalog.Targets(ctx)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.sendJSONResponse(w, targets, http.StatusOK)
}

func intParam(value, name string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, apperr.NewAppError(apperr.ErrorTypeInvalidFormat, "Invalid "+name+": "+value+" (non-negative integer)")
	}
	return n, nil
}
