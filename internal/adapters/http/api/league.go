// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/openfield/gridiron/internal/domain/types"
)

// LeagueDependencies defines the interface for league-wide tables.
type LeagueDependencies interface {
	FourthDown(ctx context.Context) []types.FourthDownRecord
	EarlyDown(ctx context.Context) []types.EarlyDownRecord
}

// LeagueHandler handles league table requests.
type LeagueHandler struct {
	deps LeagueDependencies
}

// NewLeagueHandler creates a new league handler.
func NewLeagueHandler(deps LeagueDependencies) *LeagueHandler {
	return &LeagueHandler{deps: deps}
}

// HandleLeague handles GET /league/fourth_down_aggression and
// GET /league/neutral_early_down_pass_rate requests.
func (h *LeagueHandler) HandleLeague(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	table := strings.TrimPrefix(r.URL.Path, "/league/")
	switch table {
	case "fourth_down_aggression":
		writeJSON(w, http.StatusOK, h.deps.FourthDown(r.Context()))
	case "neutral_early_down_pass_rate":
		writeJSON(w, http.StatusOK, h.deps.EarlyDown(r.Context()))
	default:
		http.NotFound(w, r)
	}
}
