// Package summary builds generative-text prompts for team scouting
// reports and the deterministic text used when generation fails.
package summary

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/openfield/gridiron/internal/domain/types"
)

// pct converts a rate to a percentage rounded to one decimal.
func pct(rate float64) float64 {
	return math.Round(rate*1000) / 10
}

// BuildPrompt creates a compact text rendering of the numeric inputs to
// send to the model. Fourth-down and early-down sections appear only when
// the team has a record in those tables.
func BuildPrompt(team string, tendencies []types.DownTendency, fourth *types.FourthDownRecord, early *types.EarlyDownRecord) string {
	var lines []string
	lines = append(lines, "Team: "+team)
	lines = append(lines, "Down-by-down run vs pass tendencies (rush/pass %):")

	sorted := make([]types.DownTendency, len(tendencies))
	copy(sorted, tendencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Down < sorted[j].Down })
	for _, row := range sorted {
		lines = append(lines, fmt.Sprintf("  Down %d: Rush %.1f%%, Pass %.1f%%",
			row.Down, pct(row.RushRate), pct(row.PassRate)))
	}

	if fourth != nil {
		lines = append(lines, "")
		lines = append(lines, "4th-down aggression (short, between the 20s):")
		lines = append(lines, fmt.Sprintf("  Go rate: %.1f%% (league avg %.1f%%), index vs avg: %.1f%%",
			pct(fourth.GoRate), pct(fourth.LeagueGoRate), pct(fourth.AggressionIndex)))
	}

	if early != nil {
		lines = append(lines, "")
		lines = append(lines, "Neutral early-down pass rate (1st/2nd & 7-10, neutral score):")
		lines = append(lines, fmt.Sprintf("  Pass rate: %.1f%% (league avg %.1f%%), over/under avg: %.1f%%",
			pct(early.PassRate), pct(early.LeaguePassRate), pct(early.PassRateOverAvg)))
	}

	lines = append(lines, "")
	lines = append(lines, "Write a short scouting summary describing this offense's overall "+
		"identity (run vs pass, early-down philosophy, and 4th-down behavior). "+
		"Highlight what makes them different from league average.")

	return strings.Join(lines, "\n")
}
