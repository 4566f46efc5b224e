// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/openfield/gridiron/internal/domain/summary"
	"github.com/openfield/gridiron/internal/domain/types"
)

// TeamsDependencies defines the interface for the team listing.
type TeamsDependencies interface {
	Teams(ctx context.Context) []string
}

// TeamsHandler handles the team index.
type TeamsHandler struct {
	deps TeamsDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamsDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleListTeams handles GET /teams requests. The response is the bare
// sorted array of team codes.
func (h *TeamsHandler) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Teams(r.Context()))
}

// TeamDetailDependencies defines the interface for per-team lookups.
type TeamDetailDependencies interface {
	Tendencies(ctx context.Context, team string) ([]types.DownTendency, error)
	Summary(ctx context.Context, team string) (summary.Result, error)
}

// TeamRouteHandler handles /teams/{team}/... requests.
type TeamRouteHandler struct {
	deps TeamDetailDependencies
}

// NewTeamRouteHandler creates a new team detail handler.
func NewTeamRouteHandler(deps TeamDetailDependencies) *TeamRouteHandler {
	return &TeamRouteHandler{deps: deps}
}

// HandleTeamRoute handles GET /teams/{team}/tendencies and
// GET /teams/{team}/summary requests.
func (h *TeamRouteHandler) HandleTeamRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameters after /teams/
	path := strings.TrimPrefix(r.URL.Path, "/teams/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	team := parts[0]

	switch parts[1] {
	case "tendencies":
		h.handleTendencies(w, r, team)
	case "summary":
		h.handleSummary(w, r, team)
	default:
		http.NotFound(w, r)
	}
}

func (h *TeamRouteHandler) handleTendencies(w http.ResponseWriter, r *http.Request, team string) {
	rows, err := h.deps.Tendencies(r.Context(), team)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, tendenciesResponse{
		Team:       strings.ToUpper(strings.TrimSpace(team)),
		Tendencies: rows,
	})
}

type tendenciesResponse struct {
	Team       string               `json:"team"`
	Tendencies []types.DownTendency `json:"tendencies"`
}

func (h *TeamRouteHandler) handleSummary(w http.ResponseWriter, r *http.Request, team string) {
	res, err := h.deps.Summary(r.Context(), team)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
