// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/openfield/gridiron/internal/domain/summary"
	"github.com/openfield/gridiron/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Teams lists the team codes present in the current snapshot.
	Teams(ctx context.Context) []string

	// Tendencies returns per-down run/pass splits for one team.
	Tendencies(ctx context.Context, team string) ([]types.DownTendency, error)

	// FourthDown and EarlyDown expose the league-wide tables.
	FourthDown(ctx context.Context) []types.FourthDownRecord
	EarlyDown(ctx context.Context) []types.EarlyDownRecord

	// Summary produces a scouting summary for one team. For a known team
	// it never fails.
	Summary(ctx context.Context, team string) (summary.Result, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	teamsHandler     *TeamsHandler
	leagueHandler    *LeagueHandler
	teamRouteHandler *TeamRouteHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		teamsHandler:     NewTeamsHandler(deps),
		leagueHandler:    NewLeagueHandler(deps),
		teamRouteHandler: NewTeamRouteHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(CORSMiddleware(s.statsHandler.HandleStats), "stats"))
	mux.HandleFunc("/teams", MetricsMiddleware(CORSMiddleware(s.teamsHandler.HandleListTeams), "teams"))
	mux.HandleFunc("/teams/", MetricsMiddleware(CORSMiddleware(s.teamRouteHandler.HandleTeamRoute), "team_detail"))
	mux.HandleFunc("/league/", MetricsMiddleware(CORSMiddleware(s.leagueHandler.HandleLeague), "league"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound allows the API to translate upstream not-found errors to 404.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, types.ErrTeamNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
