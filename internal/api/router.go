package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bartdebruin-tp/matchmaker/internal/api/handler"
	"github.com/bartdebruin-tp/matchmaker/internal/api/middleware"
	"github.com/bartdebruin-tp/matchmaker/internal/auth"
	"github.com/bartdebruin-tp/matchmaker/internal/match"
	"github.com/bartdebruin-tp/matchmaker/internal/snapshot"
	"github.com/bartdebruin-tp/matchmaker/internal/store/groups"
	"github.com/bartdebruin-tp/matchmaker/internal/store/players"
	"github.com/bartdebruin-tp/matchmaker/internal/store/subpages"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Players     *players.Store
	Groups      *groups.Store
	SubPages    *subpages.Store
	Matches     *match.Generator
	Snapshot    *snapshot.File
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	playersHandler := handler.NewPlayersHandler(cfg.Players)
	groupsHandler := handler.NewGroupsHandler(cfg.Groups, cfg.SubPages)
	subPagesHandler := handler.NewSubPagesHandler(cfg.SubPages)
	matchesHandler := handler.NewMatchesHandler(cfg.Matches, cfg.Players, cfg.Groups)
	syncHandler := handler.NewSyncHandler(cfg.Players, cfg.Groups, cfg.SubPages, cfg.Snapshot)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no session required to register or log in)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)

	// Everything below requires a session
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)

	// Player routes
	protected.HandleFunc("/players", playersHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/players", playersHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/players/{id}", playersHandler.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/players/{id}", playersHandler.Delete).Methods(http.MethodDelete)

	// Group routes
	protected.HandleFunc("/groups", groupsHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/groups", groupsHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/groups/{id}", groupsHandler.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/groups/{id}", groupsHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/groups/{id}/players/{player_id}", groupsHandler.AddPlayer).Methods(http.MethodPost)
	protected.HandleFunc("/groups/{id}/players/{player_id}", groupsHandler.RemovePlayer).Methods(http.MethodDelete)
	protected.HandleFunc("/groups/{id}/subpages", groupsHandler.ListSubPages).Methods(http.MethodGet)

	// Active player routes
	protected.HandleFunc("/active-players", groupsHandler.ListActivePlayers).Methods(http.MethodGet)
	protected.HandleFunc("/active-players", groupsHandler.ClearActivePlayers).Methods(http.MethodDelete)
	protected.HandleFunc("/active-players/{player_id}", groupsHandler.SetActivePlayer).Methods(http.MethodPut)
	protected.HandleFunc("/active-players/{player_id}/toggle", groupsHandler.ToggleActivePlayer).Methods(http.MethodPost)

	// Sub-page routes
	protected.HandleFunc("/subpages", subPagesHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/subpages", subPagesHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/subpages/{id}", subPagesHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/subpages/{id}", subPagesHandler.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/subpages/{id}", subPagesHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/subpages/{id}/players/{player_id}", subPagesHandler.AddPlayer).Methods(http.MethodPost)
	protected.HandleFunc("/subpages/{id}/players/{player_id}", subPagesHandler.RemovePlayer).Methods(http.MethodDelete)
	protected.HandleFunc("/subpages/{id}/players/{player_id}/toggle", subPagesHandler.TogglePresent).Methods(http.MethodPost)

	// Match generation
	protected.HandleFunc("/matches/generate", matchesHandler.Generate).Methods(http.MethodPost)

	// Sync and snapshot
	protected.HandleFunc("/sync", syncHandler.Sync).Methods(http.MethodPost)
	protected.HandleFunc("/snapshot", syncHandler.GetSnapshot).Methods(http.MethodGet)
	protected.HandleFunc("/snapshot", syncHandler.SaveSnapshot).Methods(http.MethodPost)
	protected.HandleFunc("/snapshot", syncHandler.ClearSnapshot).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
