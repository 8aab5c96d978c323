package routes

import (
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/fyzahq/fyza/internal/app"
	"github.com/fyzahq/fyza/internal/handler"
	"github.com/fyzahq/fyza/internal/middleware"
)

// SetupRoutes builds the API handler. The rate limiter is returned so the
// caller can run its cleanup loop.
func SetupRoutes(app *app.App) (http.Handler, *middleware.RateLimiter) {
	// Handlers
	goal := handler.NewGoalHandler(app.GoalService)
	profile := handler.NewProfileHandler(app.ProfileService)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", health.Health)

	// Financial goals
	mux.HandleFunc("GET /api/financial-goals/{user_id}", goal.List)
	mux.HandleFunc("POST /api/financial-goals/{$}", goal.Create)
	mux.HandleFunc("POST /api/financial-goals", goal.Create)
	mux.HandleFunc("PUT /api/financial-goals/{goal_id}", goal.Update)
	mux.HandleFunc("DELETE /api/financial-goals/{goal_id}", goal.Delete)

	// Profile
	mux.HandleFunc("GET /api/profile/{user_id}", profile.Get)
	mux.HandleFunc("POST /api/profile", profile.Create)
	mux.HandleFunc("POST /api/profile/{$}", profile.Create)
	mux.HandleFunc("PUT /api/profile/{user_id}", profile.Update)

	limiter := middleware.NewRateLimiter(app.Cfg.RateLimitRPS, app.Cfg.RateLimitBurst, 10*time.Minute)

	// Sentry reports panics and re-panics into Recover, which writes the 500
	sentry := sentryhttp.New(sentryhttp.Options{Repanic: true})

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Recover,
		sentry.Handle,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.CORSOrigins),
		middleware.RateLimitWrites(limiter),
	), limiter
}
