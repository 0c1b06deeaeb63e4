package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/nnamm/go-workout-tracker/internal/auth"
	"github.com/nnamm/go-workout-tracker/internal/config"
	"github.com/nnamm/go-workout-tracker/internal/database"
	"github.com/nnamm/go-workout-tracker/internal/handlers"
	"github.com/nnamm/go-workout-tracker/internal/metrics"
	"github.com/nnamm/go-workout-tracker/internal/middleware"

	log "github.com/sirupsen/logrus"
)

const (
	healthzPath          = "/healthz"
	metricsPath          = "/metrics"
	workoutsPath         = "/workouts"
	workoutPath          = "/workouts/{id}"
	exerciseTrackingPath = "/exercise-tracking"
	exerciseTrackingID   = "/exercise-tracking/{id}"
	dailyProgressPath    = "/progress/daily"
	statsSummaryPath     = "/stats/summary"
	statsEstimatePath    = "/stats/estimate"
	profilePath          = "/profile"
	exercisesPath        = "/exercises"
	exerciseTargetsPath  = "/exercises/targets"
)

func routes(
	cfg *config.Config,
	db database.DBInterface,
	exercises handlers.ExerciseCatalog,
	metricsManager *metrics.Manager,
	metricsHandler http.Handler,
	authMiddleware auth.Middleware,
) http.Handler {
	settings := handlers.NewSettings(cfg)

	workoutHandler := handlers.NewWorkoutHandler(db, settings)
	trackingHandler := handlers.NewExerciseTrackingHandler(db, settings)
	progressHandler := handlers.NewProgressHandler(db, settings)
	profileHandler := handlers.NewProfileHandler(db, settings)
	statsHandler := handlers.NewStatsHandler(db, db, db, cfg.Stats.WeightKg, metricsManager, settings)
	catalogHandler := handlers.NewExerciseCatalogHandler(exercises, settings)

	r := mux.NewRouter()

	r.HandleFunc(healthzPath, healthzHandler(db)).Methods(http.MethodGet)
	r.Handle(metricsPath, metricsHandler).Methods(http.MethodGet)

	r.HandleFunc(workoutsPath, workoutHandler.GetWorkouts).Methods(http.MethodGet)
	r.HandleFunc(workoutsPath, workoutHandler.CreateWorkout).Methods(http.MethodPost)
	r.HandleFunc(workoutPath, workoutHandler.GetWorkout).Methods(http.MethodGet)
	r.HandleFunc(workoutPath, workoutHandler.UpdateWorkout).Methods(http.MethodPut)
	r.HandleFunc(workoutPath, workoutHandler.DeleteWorkout).Methods(http.MethodDelete)

	r.HandleFunc(exerciseTrackingPath, trackingHandler.GetExerciseTracking).Methods(http.MethodGet)
	r.HandleFunc(exerciseTrackingPath, trackingHandler.CreateExerciseTracking).Methods(http.MethodPost)
	r.HandleFunc(exerciseTrackingID, trackingHandler.DeleteExerciseTracking).Methods(http.MethodDelete)

	r.HandleFunc(dailyProgressPath, progressHandler.GetDailyProgress).Methods(http.MethodGet)
	r.HandleFunc(dailyProgressPath, progressHandler.AddDailyProgress).Methods(http.MethodPost)

	r.HandleFunc(profilePath, profileHandler.GetProfile).Methods(http.MethodGet)
	r.HandleFunc(profilePath, profileHandler.PutProfile).Methods(http.MethodPut)

	r.HandleFunc(statsSummaryPath, statsHandler.GetSummary).Methods(http.MethodGet)
	r.HandleFunc(statsEstimatePath, statsHandler.GetEstimate).Methods(http.MethodGet)

	r.HandleFunc(exercisesPath, catalogHandler.GetExercises).Methods(http.MethodGet)
	r.HandleFunc(exerciseTargetsPath, catalogHandler.GetTargets).Methods(http.MethodGet)

	r.Use(middleware.PanicRecovery(metricsManager))
	r.Use(middleware.RequestMetrics(metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(authMiddleware.Handler())

	// preflight must be answered before routing
	return middleware.Cors()(r)
}

func healthzHandler(db database.DBInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		if err := db.HealthCheck(ctx); err != nil {
			log.Errorf("health check failed: %s", err)
			status, code = "unavailable", http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
