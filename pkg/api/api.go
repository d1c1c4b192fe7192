package api

import (
	"context"
	"net/http"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/progression"
	"github.com/AccelByte/extend-word-puzzle/pkg/puzzle"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	// DefaultRequestTimeout bounds handler time.
	DefaultRequestTimeout = 10 * time.Second

	// PlayerIDParam is the URL parameter holding the player id.
	PlayerIDParam = "playerID"
)

// PuzzleSource supplies the current puzzle and the rotation countdown.
type PuzzleSource interface {
	Current(ctx context.Context) *puzzle.Puzzle
	TimeUntilNext() time.Duration
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// Options configures the API surface. Zero values disable the feature.
type Options struct {
	// JWTSecret enables bearer authentication of player routes (HS256, sub = player id).
	JWTSecret string

	// RateLimit is the allowed requests per second per client, with RateBurst.
	RateLimit float64
	RateBurst int
}

// Handler serves the game HTTP API.
type Handler struct {
	controller *progression.Controller
	puzzles    PuzzleSource
	health     HealthChecker
	opts       Options
	limiter    *clientLimiter
}

// NewHandler creates the game API handler.
func NewHandler(controller *progression.Controller, puzzles PuzzleSource, health HealthChecker, opts Options) *Handler {
	h := &Handler{
		controller: controller,
		puzzles:    puzzles,
		health:     health,
		opts:       opts,
	}
	if opts.RateLimit > 0 {
		h.limiter = newClientLimiter(opts.RateLimit, opts.RateBurst)
	}
	return h
}

// Routes builds the router with middleware and all game routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(DefaultRequestTimeout))
	r.Use(jsonContentType)

	r.Get("/healthz", h.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		if h.limiter != nil {
			r.Use(h.limiter.middleware)
		}

		r.Get("/puzzle", h.handleGetPuzzle)

		r.Route("/players/{"+PlayerIDParam+"}", func(r chi.Router) {
			if h.opts.JWTSecret != "" {
				r.Use(requirePlayerToken([]byte(h.opts.JWTSecret)))
			}

			r.Route("/session", func(r chi.Router) {
				r.Post("/", h.handleStartSession)
				r.Get("/", h.handleGetSession)
				r.Post("/select", h.handleSelect)
				r.Post("/deselect", h.handleDeselect)
				r.Post("/submit", h.handleSubmit)
				r.Post("/clear", h.handleClear)
				r.Post("/hint", h.handleHint)
				r.Post("/finish", h.handleFinish)
			})

			r.Get("/profile", h.handleGetProfile)
			r.Get("/progress", h.handleGetProgress)
			r.Put("/wallet", h.handleLinkWallet)
			r.Put("/settings", h.handleSettings)

			r.Get("/missions", h.handleGetMissions)
			r.Post("/missions/{missionID}/claim", h.handleClaimMission)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	})

	return r
}
