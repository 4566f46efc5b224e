package apicheck_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openfield/gridiron/internal/apicheck"
	"github.com/openfield/gridiron/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// goodService fakes a healthy analytics API.
func goodService() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]string{"CHI", "GB"})
	})
	mux.HandleFunc("/teams/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/teams/"), "/")
		team := parts[0]
		if team == "ZZZ" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch parts[1] {
		case "tendencies":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"team": team,
				"tendencies": []map[string]any{
					{"down": 1, "rush_rate": 0.6, "pass_rate": 0.4},
					{"down": 2, "rush_rate": 0.5, "pass_rate": 0.5},
				},
			})
		case "summary":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"team": team, "summary": "report", "generated": false,
			})
		}
	})
	mux.HandleFunc("/league/fourth_down_aggression", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"team": "GB", "attempts": 10, "go_for_it": 6, "aggression_index": 0.1},
			{"team": "CHI", "attempts": 10, "go_for_it": 4, "aggression_index": -0.1},
		})
	})
	mux.HandleFunc("/league/neutral_early_down_pass_rate", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"team": "GB", "pass_rate_over_avg": 0.05},
			{"team": "CHI", "pass_rate_over_avg": -0.05},
		})
	})
	return mux
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	Convey("Given a healthy service", t, func() {
		srv := httptest.NewServer(goodService())
		defer srv.Close()

		cfg := apicheck.NewConfig(srv.URL)
		cfg.Summaries = true

		Convey("The smoke check passes", func() {
			So(apicheck.Run(ctx, cfg), ShouldBeNil)
		})
	})

	Convey("Given a service with an unsorted team list", t, func() {
		mux := goodService()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/teams" {
				_ = json.NewEncoder(w).Encode([]string{"GB", "CHI"})
				return
			}
			mux.ServeHTTP(w, r)
		}))
		defer srv.Close()

		Convey("The smoke check reports the ordering defect", func() {
			err := apicheck.Run(ctx, apicheck.NewConfig(srv.URL))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "not sorted")
		})
	})

	Convey("Given a service that misorders the aggression table", t, func() {
		mux := goodService()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/league/fourth_down_aggression" {
				_ = json.NewEncoder(w).Encode([]map[string]any{
					{"team": "CHI", "attempts": 10, "go_for_it": 4, "aggression_index": -0.1},
					{"team": "GB", "attempts": 10, "go_for_it": 6, "aggression_index": 0.1},
				})
				return
			}
			mux.ServeHTTP(w, r)
		}))
		defer srv.Close()

		Convey("The smoke check reports the ordering defect", func() {
			err := apicheck.Run(ctx, apicheck.NewConfig(srv.URL))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "not descending")
		})
	})

	Convey("Given a service that is down", t, func() {
		srv := httptest.NewServer(goodService())
		srv.Close()

		Convey("The smoke check fails fast", func() {
			So(apicheck.Run(ctx, apicheck.NewConfig(srv.URL)), ShouldNotBeNil)
		})
	})
}
