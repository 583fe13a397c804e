// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5"

	"github-profile-collector/internal/database"
)

// Handler is the container for API dependencies.
type Handler struct {
	db     database.Querier
	logger *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(db database.Querier, logger *slog.Logger) http.Handler {
	h := &Handler{
		db:     db,
		logger: logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/v1/users/{login}", func(r chi.Router) {
		r.Get("/summary", h.getSummary)
		r.Get("/repos", h.getRepositories)
		r.Get("/repos/{name}", h.getRepository)
	})

	return r
}

type summaryResponse struct {
	Profile              json.RawMessage `json:"profile"`
	Organizations        json.RawMessage `json:"organizations"`
	Summary              json.RawMessage `json:"summary"`
	TotalRepositoryCount int32           `json:"total_repository_count"`
	CollectedAt          time.Time       `json:"collected_at"`
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getSummary returns the profile and summary of the latest snapshot.
// GET /v1/users/{login}/summary
func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.latestSnapshot(w, r)
	if !ok {
		return
	}

	respondWithJSON(w, http.StatusOK, summaryResponse{
		Profile:              snap.Profile,
		Organizations:        snap.Organizations,
		Summary:              snap.Summary,
		TotalRepositoryCount: snap.TotalRepositoryCount,
		CollectedAt:          snap.CreatedAt.Time,
	})
}

// getRepositories returns the enriched repositories of the latest snapshot, most recently pushed first.
// GET /v1/users/{login}/repos
func (h *Handler) getRepositories(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.latestSnapshot(w, r)
	if !ok {
		return
	}

	repos, err := h.db.ListRepositoriesBySnapshot(r.Context(), snap.ID)
	if err != nil {
		h.logger.Error("Failed to list repositories", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]json.RawMessage, len(repos))
	for i, repo := range repos {
		out[i] = repo.Data
	}
	respondWithJSON(w, http.StatusOK, out)
}

// getRepository returns one enriched repository of the latest snapshot.
// GET /v1/users/{login}/repos/{name}
func (h *Handler) getRepository(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.latestSnapshot(w, r)
	if !ok {
		return
	}

	repo, err := h.db.GetRepositoryBySnapshotAndName(r.Context(), database.GetRepositoryBySnapshotAndNameParams{
		SnapshotID: snap.ID,
		Name:       chi.URLParam(r, "name"),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondWithError(w, http.StatusNotFound, "Repository not found")
			return
		}
		h.logger.Error("Failed to get repository", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, json.RawMessage(repo.Data))
}

// latestSnapshot loads the newest snapshot for the {login} URL parameter and
// writes the error response itself when there is none.
func (h *Handler) latestSnapshot(w http.ResponseWriter, r *http.Request) (database.Snapshot, bool) {
	login := chi.URLParam(r, "login")

	snap, err := h.db.GetLatestSnapshot(r.Context(), login)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondWithError(w, http.StatusNotFound, "No data collected for this user")
			return database.Snapshot{}, false
		}
		h.logger.Error("Failed to get snapshot", "login", login, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return database.Snapshot{}, false
	}
	return snap, true
}
