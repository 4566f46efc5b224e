// Package types contains the typed records shared across the application.
package types

import "sort"

// Play classification values carried by the play-by-play dataset.
const (
	PlayTypeRun       = "run"
	PlayTypePass      = "pass"
	PlayTypePunt      = "punt"
	PlayTypeFieldGoal = "field_goal"
)

// Play is one offensive snap from the external play-by-play dataset.
// Values are validated on load and never mutated afterwards.
type Play struct {
	// PosTeam is the possession team code, e.g. "GB".
	PosTeam string
	// Down is 1-4.
	Down int
	// YardsToGo is the distance to the first-down marker.
	YardsToGo int
	// YardLine100 is the distance to the opponent goal line, 0-100.
	YardLine100 int
	// PlayType is the dataset classification: run, pass, punt, field_goal
	// or something else (kneel, spike, no_play, ...).
	PlayType string
	// ScoreDifferential is the possession team's lead (negative when trailing).
	ScoreDifferential float64
	// Penalty reports whether a penalty was flagged on the play.
	Penalty bool
	// PassAttempt and RushAttempt are the dataset's offensive-intent flags.
	PassAttempt bool
	RushAttempt bool
}

// DownTendency is the run/pass split for one down. Rates sum to 1.0 over
// a team's offensive plays on that down.
type DownTendency struct {
	Team     string  `json:"team,omitempty" firestore:"-"`
	Down     int     `json:"down" firestore:"down"`
	RushRate float64 `json:"rush_rate" firestore:"rush_rate"`
	PassRate float64 `json:"pass_rate" firestore:"pass_rate"`
}

// TendencyTable maps a team code to its down-by-down tendencies,
// sorted by down ascending.
type TendencyTable map[string][]DownTendency

// FourthDownRecord captures a team's fourth-and-short decision making
// relative to the league.
type FourthDownRecord struct {
	Team            string  `json:"team" firestore:"team"`
	Attempts        int     `json:"attempts" firestore:"attempts"`
	GoForIt         int     `json:"go_for_it" firestore:"go_for_it"`
	GoRate          float64 `json:"go_rate" firestore:"go_rate"`
	LeagueGoRate    float64 `json:"league_go_rate" firestore:"league_go_rate"`
	AggressionIndex float64 `json:"aggression_index" firestore:"aggression_index"`
}

// EarlyDownRecord captures a team's neutral-situation early-down pass rate
// relative to the league.
type EarlyDownRecord struct {
	Team            string  `json:"team" firestore:"team"`
	Plays           int     `json:"plays" firestore:"plays"`
	PassPlays       int     `json:"pass_plays" firestore:"pass_plays"`
	PassRate        float64 `json:"pass_rate" firestore:"pass_rate"`
	LeaguePassRate  float64 `json:"league_pass_rate" firestore:"league_pass_rate"`
	PassRateOverAvg float64 `json:"pass_rate_over_avg" firestore:"pass_rate_over_avg"`
}

// SummaryTable maps a team code to its free-text scouting summary.
type SummaryTable map[string]string

// Snapshot is the read-only view of all artifacts, built once at process
// start (or on an explicit reload) and shared by every request handler.
type Snapshot struct {
	Season     int
	Tendencies TendencyTable
	FourthDown []FourthDownRecord
	EarlyDown  []EarlyDownRecord
	Summaries  SummaryTable

	fourthByTeam map[string]FourthDownRecord
	earlyByTeam  map[string]EarlyDownRecord
}

// Index builds the per-team lookup maps. Call once after populating the
// list fields; the snapshot is treated as immutable afterwards.
func (s *Snapshot) Index() {
	s.fourthByTeam = make(map[string]FourthDownRecord, len(s.FourthDown))
	for _, r := range s.FourthDown {
		s.fourthByTeam[r.Team] = r
	}
	s.earlyByTeam = make(map[string]EarlyDownRecord, len(s.EarlyDown))
	for _, r := range s.EarlyDown {
		s.earlyByTeam[r.Team] = r
	}
}

// ServiceStats reports read-layer counters for the /stats endpoint and
// the background metrics refresher.
type ServiceStats struct {
	Started            bool `json:"started"`
	Season             int  `json:"season"`
	Teams              int  `json:"teams"`
	FourthDownRecords  int  `json:"fourth_down_records"`
	EarlyDownRecords   int  `json:"early_down_records"`
	CachedSummaries    int  `json:"cached_summaries"`
	GeneratedSummaries int  `json:"generated_summaries"`
}

// Teams returns the sorted team codes present in the tendency table.
func (s *Snapshot) Teams() []string {
	teams := make([]string, 0, len(s.Tendencies))
	for team := range s.Tendencies {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// FourthDownFor returns the fourth-down record for a team, if present.
func (s *Snapshot) FourthDownFor(team string) (FourthDownRecord, bool) {
	r, ok := s.fourthByTeam[team]
	return r, ok
}

// EarlyDownFor returns the early-down record for a team, if present.
func (s *Snapshot) EarlyDownFor(team string) (EarlyDownRecord, bool) {
	r, ok := s.earlyByTeam[team]
	return r, ok
}
