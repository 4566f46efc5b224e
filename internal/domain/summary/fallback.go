package summary

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/openfield/gridiron/internal/domain/types"
)

// Result is the explicit two-branch outcome of a summary request:
// model-generated text, or the deterministic template.
type Result struct {
	Team      string `json:"team"`
	Text      string `json:"summary"`
	Generated bool   `json:"generated"`
}

func lean(row types.DownTendency) string {
	if row.RushRate > row.PassRate {
		return "run"
	}
	return "pass"
}

// Fallback composes a deterministic scouting line from whatever records
// exist. Missing inputs drop their segment; the function never fails.
func Fallback(team string, tendencies []types.DownTendency, fourth *types.FourthDownRecord, early *types.EarlyDownRecord) string {
	var segments []string

	if len(tendencies) > 0 {
		sorted := make([]types.DownTendency, len(tendencies))
		copy(sorted, tendencies)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Down < sorted[j].Down })

		first := sorted[0]
		last := sorted[len(sorted)-1]
		segments = append(segments, fmt.Sprintf(
			"%s leans %s on down %d (%.1f%% rush, %.1f%% pass) and %s on down %d (%.1f%% rush, %.1f%% pass).",
			team, lean(first), first.Down, pct(first.RushRate), pct(first.PassRate),
			lean(last), last.Down, pct(last.RushRate), pct(last.PassRate)))
	}

	if fourth != nil {
		segments = append(segments, fmt.Sprintf(
			"On fourth and short they go for it %.1f%% of the time against a league average of %.1f%%.",
			pct(fourth.GoRate), pct(fourth.LeagueGoRate)))
	}

	if early != nil {
		direction := "above"
		if early.PassRateOverAvg < 0 {
			direction = "below"
		}
		segments = append(segments, fmt.Sprintf(
			"In neutral early-down situations they pass %.1f%% of the time, %.1f points %s league average.",
			pct(early.PassRate), math.Abs(pct(early.PassRateOverAvg)), direction))
	}

	if len(segments) == 0 {
		return fmt.Sprintf("No play-by-play data is available for %s this season.", team)
	}
	return strings.Join(segments, " ")
}
