package aggregate

import (
	"sort"

	"github.com/openfield/gridiron/internal/domain/types"
)

// Fourth-and-short filter bounds.
const (
	fourthDown    = 4
	shortYardsMin = 1
	shortYardsMax = 3
	midFieldMin   = 20
	midFieldMax   = 80
)

func isFourthAndShort(p types.Play) bool {
	return p.Down == fourthDown &&
		p.YardsToGo >= shortYardsMin && p.YardsToGo <= shortYardsMax &&
		p.YardLine100 >= midFieldMin && p.YardLine100 <= midFieldMax &&
		!p.Penalty
}

// FourthDownAggression computes the go-for-it metric by team.
//
// Qualifying plays: 4th and 1-3, between the 20s, no penalty, classified
// run, pass, punt or field goal (spikes and kneels drop out). A run or
// pass is a "go". The league rate is computed once over the whole
// qualifying set; each team's aggression index is its go rate minus the
// league rate. Output is sorted by aggression index descending, team code
// breaking ties. An empty qualifying set yields an empty slice.
func FourthDownAggression(plays []types.Play) []types.FourthDownRecord {
	type goCounts struct {
		attempts int
		goes     int
	}

	leagueAttempts := 0
	leagueGoes := 0
	byTeam := make(map[string]*goCounts)

	for _, p := range plays {
		if !isFourthAndShort(p) {
			continue
		}
		isGo := false
		switch p.PlayType {
		case types.PlayTypeRun, types.PlayTypePass:
			isGo = true
		case types.PlayTypePunt, types.PlayTypeFieldGoal:
		default:
			continue
		}

		c, ok := byTeam[p.PosTeam]
		if !ok {
			c = &goCounts{}
			byTeam[p.PosTeam] = c
		}
		c.attempts++
		leagueAttempts++
		if isGo {
			c.goes++
			leagueGoes++
		}
	}

	if leagueAttempts == 0 {
		return []types.FourthDownRecord{}
	}
	leagueGoRate := float64(leagueGoes) / float64(leagueAttempts)

	records := make([]types.FourthDownRecord, 0, len(byTeam))
	for team, c := range byTeam {
		goRate := float64(c.goes) / float64(c.attempts)
		records = append(records, types.FourthDownRecord{
			Team:            team,
			Attempts:        c.attempts,
			GoForIt:         c.goes,
			GoRate:          goRate,
			LeagueGoRate:    leagueGoRate,
			AggressionIndex: goRate - leagueGoRate,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].AggressionIndex != records[j].AggressionIndex {
			return records[i].AggressionIndex > records[j].AggressionIndex
		}
		return records[i].Team < records[j].Team
	})
	return records
}
