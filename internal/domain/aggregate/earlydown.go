package aggregate

import (
	"sort"

	"github.com/openfield/gridiron/internal/domain/types"
)

// Neutral early-down filter bounds.
const (
	midDistanceMin = 7
	midDistanceMax = 10
	neutralScore   = 7
)

func isNeutralEarlyDown(p types.Play) bool {
	return (p.Down == 1 || p.Down == 2) &&
		p.YardsToGo >= midDistanceMin && p.YardsToGo <= midDistanceMax &&
		p.YardLine100 >= midFieldMin && p.YardLine100 <= midFieldMax &&
		p.ScoreDifferential >= -neutralScore && p.ScoreDifferential <= neutralScore &&
		!p.Penalty
}

// NeutralEarlyDownPassRate computes pass rate on 1st/2nd and 7-10 in
// neutral game script (score within a touchdown), between the 20s,
// run/pass plays only. Sorted by pass rate over league average
// descending, team code breaking ties. Empty input yields an empty slice.
func NeutralEarlyDownPassRate(plays []types.Play) []types.EarlyDownRecord {
	type passCounts struct {
		plays  int
		passes int
	}

	leaguePlays := 0
	leaguePasses := 0
	byTeam := make(map[string]*passCounts)

	for _, p := range plays {
		if !isNeutralEarlyDown(p) {
			continue
		}
		if p.PlayType != types.PlayTypeRun && p.PlayType != types.PlayTypePass {
			continue
		}

		c, ok := byTeam[p.PosTeam]
		if !ok {
			c = &passCounts{}
			byTeam[p.PosTeam] = c
		}
		c.plays++
		leaguePlays++
		if p.PlayType == types.PlayTypePass {
			c.passes++
			leaguePasses++
		}
	}

	if leaguePlays == 0 {
		return []types.EarlyDownRecord{}
	}
	leaguePassRate := float64(leaguePasses) / float64(leaguePlays)

	records := make([]types.EarlyDownRecord, 0, len(byTeam))
	for team, c := range byTeam {
		passRate := float64(c.passes) / float64(c.plays)
		records = append(records, types.EarlyDownRecord{
			Team:            team,
			Plays:           c.plays,
			PassPlays:       c.passes,
			PassRate:        passRate,
			LeaguePassRate:  leaguePassRate,
			PassRateOverAvg: passRate - leaguePassRate,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].PassRateOverAvg != records[j].PassRateOverAvg {
			return records[i].PassRateOverAvg > records[j].PassRateOverAvg
		}
		return records[i].Team < records[j].Team
	})
	return records
}
