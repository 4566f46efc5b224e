// Package aggregate derives per-team summary tables from play-by-play data.
// Every function is pure: a slice of plays in, typed records out.
package aggregate

import (
	"sort"

	"github.com/openfield/gridiron/internal/domain/types"
)

type teamDown struct {
	team string
	down int
}

type playTypeCounts struct {
	rush  int
	pass  int
	total int
}

// TeamTendencies builds the run/pass rate by down for each team.
//
// Only plays flagged as a pass attempt or rush attempt count. A play
// carrying both flags counts as a pass, matching the dataset convention
// that scrambles and sacks keep the pass intent. Groups with zero plays
// produce no row.
func TeamTendencies(plays []types.Play) []types.DownTendency {
	counts := make(map[teamDown]*playTypeCounts)
	for _, p := range plays {
		if !p.PassAttempt && !p.RushAttempt {
			continue
		}
		key := teamDown{team: p.PosTeam, down: p.Down}
		c, ok := counts[key]
		if !ok {
			c = &playTypeCounts{}
			counts[key] = c
		}
		if p.PassAttempt {
			c.pass++
		} else {
			c.rush++
		}
		c.total++
	}

	rows := make([]types.DownTendency, 0, len(counts))
	for key, c := range counts {
		rows = append(rows, types.DownTendency{
			Team:     key.team,
			Down:     key.down,
			RushRate: float64(c.rush) / float64(c.total),
			PassRate: float64(c.pass) / float64(c.total),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Team != rows[j].Team {
			return rows[i].Team < rows[j].Team
		}
		return rows[i].Down < rows[j].Down
	})
	return rows
}

// TendenciesByTeam shapes the flat tendency rows into the per-team table
// used by the JSON artifact and the API. Lists stay sorted by down
// ascending; the redundant team field is cleared from each row.
func TendenciesByTeam(rows []types.DownTendency) types.TendencyTable {
	table := make(types.TendencyTable)
	for _, row := range rows {
		team := row.Team
		row.Team = ""
		table[team] = append(table[team], row)
	}
	for team := range table {
		list := table[team]
		sort.Slice(list, func(i, j int) bool { return list[i].Down < list[j].Down })
	}
	return table
}
