package apicheck

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/openfield/gridiron/internal/domain/types"
	"github.com/openfield/gridiron/pkg/logger"
)

// Tolerance for floating point rate comparisons.
const rateEpsilon = 1e-6

// Run executes the complete smoke check against a running service.
func Run(ctx context.Context, config *Config) error {
	start := time.Now()
	log := logger.Get().Named("apicheck")
	client := newHTTPClient(config.BaseURL, config.Timeout)

	log.Info(ctx, "starting API smoke check",
		logger.String("baseURL", config.BaseURL),
		logger.String("timeout", config.Timeout.String()),
	)

	teams, err := checkTeams(ctx, client)
	if err != nil {
		return fmt.Errorf("teams check failed: %w", err)
	}
	log.Info(ctx, "team list verified", logger.Int("teams", len(teams)))

	if err := checkLeagueTables(ctx, client, teams); err != nil {
		return fmt.Errorf("league table check failed: %w", err)
	}
	log.Info(ctx, "league tables verified")

	checked := teams
	if config.MaxTeams > 0 && config.MaxTeams < len(teams) {
		checked = teams[:config.MaxTeams]
	}
	for _, team := range checked {
		if err := checkTendencies(ctx, client, team); err != nil {
			return fmt.Errorf("tendencies check failed for %s: %w", team, err)
		}
		if config.Summaries {
			if err := checkSummary(ctx, client, team); err != nil {
				return fmt.Errorf("summary check failed for %s: %w", team, err)
			}
		}
	}
	log.Info(ctx, "per-team endpoints verified", logger.Int("checked", len(checked)))

	if err := checkUnknownTeam(ctx, client); err != nil {
		return fmt.Errorf("unknown-team check failed: %w", err)
	}

	log.Info(ctx, "smoke check passed", logger.Duration("elapsed", time.Since(start)))
	return nil
}

// checkTeams fetches /teams and verifies the array is sorted and non-empty.
func checkTeams(ctx context.Context, client *HTTPClient) ([]string, error) {
	var teams []string
	status, err := client.getJSON(ctx, "/teams", &teams)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", status)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("no teams in snapshot")
	}
	for i := 1; i < len(teams); i++ {
		if teams[i-1] >= teams[i] {
			return nil, fmt.Errorf("team list not sorted at %q", teams[i])
		}
	}
	return teams, nil
}

// checkTendencies verifies each down's rush and pass rates sum to one.
func checkTendencies(ctx context.Context, client *HTTPClient, team string) error {
	var body struct {
		Team       string               `json:"team"`
		Tendencies []types.DownTendency `json:"tendencies"`
	}
	status, err := client.getJSON(ctx, "/teams/"+team+"/tendencies", &body)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status %d", status)
	}
	if body.Team != team {
		return fmt.Errorf("team echo mismatch: %q", body.Team)
	}
	lastDown := 0
	for _, row := range body.Tendencies {
		if row.Down <= lastDown {
			return fmt.Errorf("downs not ascending at %d", row.Down)
		}
		lastDown = row.Down
		if sum := row.RushRate + row.PassRate; math.Abs(sum-1) > rateEpsilon {
			return fmt.Errorf("rates for down %d sum to %f", row.Down, sum)
		}
	}
	return nil
}

// checkLeagueTables verifies ordering and cross-table consistency.
func checkLeagueTables(ctx context.Context, client *HTTPClient, teams []string) error {
	var fourth []types.FourthDownRecord
	if status, err := client.getJSON(ctx, "/league/fourth_down_aggression", &fourth); err != nil {
		return err
	} else if status != http.StatusOK {
		return fmt.Errorf("fourth down table: unexpected status %d", status)
	}
	for i := 1; i < len(fourth); i++ {
		if fourth[i-1].AggressionIndex < fourth[i].AggressionIndex {
			return fmt.Errorf("aggression index not descending at %s", fourth[i].Team)
		}
	}
	for _, rec := range fourth {
		if rec.GoForIt > rec.Attempts {
			return fmt.Errorf("%s went for it more often than it had attempts", rec.Team)
		}
	}

	var early []types.EarlyDownRecord
	if status, err := client.getJSON(ctx, "/league/neutral_early_down_pass_rate", &early); err != nil {
		return err
	} else if status != http.StatusOK {
		return fmt.Errorf("early down table: unexpected status %d", status)
	}
	for i := 1; i < len(early); i++ {
		if early[i-1].PassRateOverAvg < early[i].PassRateOverAvg {
			return fmt.Errorf("pass rate over average not descending at %s", early[i].Team)
		}
	}
	return nil
}

// checkSummary verifies a known team always gets a summary.
func checkSummary(ctx context.Context, client *HTTPClient, team string) error {
	var body struct {
		Team      string `json:"team"`
		Summary   string `json:"summary"`
		Generated bool   `json:"generated"`
	}
	status, err := client.getJSON(ctx, "/teams/"+team+"/summary", &body)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status %d", status)
	}
	if body.Summary == "" {
		return fmt.Errorf("empty summary")
	}
	return nil
}

// checkUnknownTeam verifies the API 404s for a team that cannot exist.
func checkUnknownTeam(ctx context.Context, client *HTTPClient) error {
	status, err := client.getJSON(ctx, "/teams/ZZZ/tendencies", nil)
	if err != nil {
		return err
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("expected 404, got %d", status)
	}
	return nil
}
