package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"tippy-tappy/internal/tipping"
)

func TestAddTeam(t *testing.T) {
	ts, _ := newTestAPI(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/teams", map[string]string{"name": "France", "iso": "FRA"})
	expectStatus(t, resp, http.StatusCreated)
	body := decodeBody(t, resp)
	if body["iso"] != "FRA" {
		t.Fatalf("expected iso FRA, got %v", body["iso"])
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/teams", map[string]string{"name": "France again", "iso": "FRA"})
	expectStatus(t, resp, http.StatusConflict)

	resp = doRequest(t, ts, http.MethodPost, "/api/teams", map[string]string{"name": "France", "iso": "fr"})
	expectError(t, resp, http.StatusBadRequest, "iso must be 2 or 3 upper-case letters")

	resp = doRequest(t, ts, http.MethodGet, "/api/teams", nil)
	expectStatus(t, resp, http.StatusOK)
	teams, ok := decodeBody(t, resp)["teams"].([]any)
	if !ok || len(teams) != 1 {
		t.Fatalf("expected one team, got %v", teams)
	}
}

func TestAddGameErrors(t *testing.T) {
	ts, _ := newTestAPI(t)
	seedLeague(t, ts)

	cases := []struct {
		name    string
		payload map[string]string
		status  int
	}{
		{
			name:    "duplicate short",
			payload: map[string]string{"name": "Again", "short": "FRAGER", "team1": "FRA", "team2": "GER", "start_time": "2026 06 21 18:00"},
			status:  http.StatusConflict,
		},
		{
			name:    "unknown team",
			payload: map[string]string{"name": "Final", "short": "FRAITA", "team1": "FRA", "team2": "ITA", "start_time": "2026 06 21 18:00"},
			status:  http.StatusUnprocessableEntity,
		},
		{
			name:    "bad timestamp",
			payload: map[string]string{"name": "Final", "short": "FRAESP", "team1": "FRA", "team2": "ESP", "start_time": "2026-06-21 18:00"},
			status:  http.StatusBadRequest,
		},
		{
			name:    "impossible date",
			payload: map[string]string{"name": "Final", "short": "FRAESP", "team1": "FRA", "team2": "ESP", "start_time": "2026 02 30 18:00"},
			status:  http.StatusBadRequest,
		},
		{
			name:    "missing name",
			payload: map[string]string{"short": "FRAESP", "team1": "FRA", "team2": "ESP", "start_time": "2026 06 21 18:00"},
			status:  http.StatusBadRequest,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, ts, http.MethodPost, "/api/games", tc.payload)
			expectStatus(t, resp, tc.status)
		})
	}
}

func TestListGamesOpenFilter(t *testing.T) {
	ts, _ := newTestAPI(t)
	seedLeague(t, ts)

	resp := doRequest(t, ts, http.MethodGet, "/api/games", nil)
	expectStatus(t, resp, http.StatusOK)
	games := decodeBody(t, resp)["games"].([]any)
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	first := games[0].(map[string]any)
	if first["short"] != "ESPFRA" {
		t.Fatalf("expected games ordered by kickoff, got %v first", first["short"])
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/games?open=true", nil)
	expectStatus(t, resp, http.StatusOK)
	games = decodeBody(t, resp)["games"].([]any)
	if len(games) != 1 || games[0].(map[string]any)["short"] != "FRAGER" {
		t.Fatalf("expected only FRAGER open, got %v", games)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/games?open=maybe", nil)
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestUpsertBet(t *testing.T) {
	ts, _ := newTestAPI(t)
	seedLeague(t, ts)

	resp := doRequest(t, ts, http.MethodPut, "/api/games/FRAGER/bets/u1", map[string]any{"team1_score": 2, "team2_score": 1})
	expectStatus(t, resp, http.StatusOK)

	resp = doRequest(t, ts, http.MethodPut, "/api/games/FRAGER/bets/u1", map[string]any{"team1_score": 0, "team2_score": 0})
	expectStatus(t, resp, http.StatusOK)
	bet := decodeBody(t, resp)["bet"].(map[string]any)
	if bet["team1_score"] != float64(0) || bet["team2_score"] != float64(0) {
		t.Fatalf("expected overwritten bet 0:0, got %v", bet)
	}

	resp = doRequest(t, ts, http.MethodPut, "/api/games/ESPFRA/bets/u1", map[string]any{"team1_score": 1, "team2_score": 1})
	expectStatus(t, resp, http.StatusConflict)

	resp = doRequest(t, ts, http.MethodPut, "/api/games/NOPE/bets/u1", map[string]any{"team1_score": 1, "team2_score": 1})
	expectStatus(t, resp, http.StatusNotFound)

	resp = doRequest(t, ts, http.MethodPut, "/api/games/FRAGER/bets/u1", map[string]any{"team1_score": -1, "team2_score": 1})
	expectError(t, resp, http.StatusBadRequest, "scores must not be negative")

	resp = doRequest(t, ts, http.MethodPut, "/api/games/FRAGER/bets/u1", map[string]any{"team1_score": 1})
	expectError(t, resp, http.StatusBadRequest, "team2_score is required")

	resp = doRequest(t, ts, http.MethodGet, "/api/users/u1/bets", nil)
	expectStatus(t, resp, http.StatusOK)
	games := decodeBody(t, resp)["games"].([]any)
	if len(games) != 1 {
		t.Fatalf("expected one stored bet, got %d", len(games))
	}
	entry := games[0].(map[string]any)
	if entry["open"] != true || entry["points"] != nil {
		t.Fatalf("expected open unscored bet, got %v", entry)
	}
}

func TestLeaderboardScoring(t *testing.T) {
	ts, _ := newTestAPI(t)
	seedLeague(t, ts)

	bets := map[string][2]int{"exact": {2, 1}, "diff": {1, 0}, "winner": {4, 0}, "miss": {0, 2}}
	for user, bet := range bets {
		resp := doRequest(t, ts, http.MethodPut, "/api/games/FRAGER/bets/"+user, map[string]any{"team1_score": bet[0], "team2_score": bet[1]})
		expectStatus(t, resp, http.StatusOK)
	}
	resp := doRequest(t, ts, http.MethodPut, "/api/games/FRAGER/result", map[string]any{"team1_score": score(2), "team2_score": score(1), "note": "a.e.t."})
	expectStatus(t, resp, http.StatusOK)
	result := decodeBody(t, resp)["result"].(map[string]any)
	if result["note"] != "a.e.t." {
		t.Fatalf("expected note a.e.t., got %v", result["note"])
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/leaderboard", nil)
	expectStatus(t, resp, http.StatusOK)
	rows := decodeBody(t, resp)["leaderboard"].([]any)
	want := []struct {
		user   string
		points float64
	}{{"exact", 3}, {"diff", 2}, {"winner", 1}, {"miss", 0}}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, w := range want {
		row := rows[i].(map[string]any)
		if row["user"] != w.user || row["points"] != w.points || row["rank"] != float64(i+1) {
			t.Fatalf("row %d: expected %s with %v points, got %v", i, w.user, w.points, row)
		}
	}

	resp = doRequest(t, ts, http.MethodPut, "/api/games/NOPE/result", map[string]any{"team1_score": 1, "team2_score": 1})
	expectStatus(t, resp, http.StatusNotFound)
}

func TestGlobalBetFlow(t *testing.T) {
	ts, _ := newTestAPI(t)
	seedLeague(t, ts)

	resp := doRequest(t, ts, http.MethodPost, "/api/global-bets", map[string]any{
		"name": "World champion", "short": "champion", "points": 10, "start_time": "2026 06 20 18:00",
	})
	expectStatus(t, resp, http.StatusCreated)

	resp = doRequest(t, ts, http.MethodPut, "/api/global-bets/champion/bets/u1", map[string]string{"team": "FRA"})
	expectStatus(t, resp, http.StatusOK)
	resp = doRequest(t, ts, http.MethodPut, "/api/global-bets/champion/bets/u2", map[string]string{"team": "GER"})
	expectStatus(t, resp, http.StatusOK)
	resp = doRequest(t, ts, http.MethodPut, "/api/global-bets/champion/bets/u2", map[string]string{"team": "ITA"})
	expectStatus(t, resp, http.StatusUnprocessableEntity)
	resp = doRequest(t, ts, http.MethodPut, "/api/global-bets/topscorer/bets/u2", map[string]string{"team": "FRA"})
	expectStatus(t, resp, http.StatusNotFound)

	resp = doRequest(t, ts, http.MethodGet, "/api/global-bets?open=true", nil)
	expectStatus(t, resp, http.StatusOK)
	if open := decodeBody(t, resp)["global_bets"].([]any); len(open) != 1 {
		t.Fatalf("expected one open global bet, got %d", len(open))
	}

	resp = doRequest(t, ts, http.MethodPut, "/api/global-bets/champion/result", map[string]string{"team": "FRA"})
	expectStatus(t, resp, http.StatusOK)

	resp = doRequest(t, ts, http.MethodGet, "/api/leaderboard", nil)
	rows := decodeBody(t, resp)["leaderboard"].([]any)
	top := rows[0].(map[string]any)
	if top["user"] != "u1" || top["points"] != float64(10) || top["global"] != float64(1) {
		t.Fatalf("expected u1 on top with 10 points, got %v", top)
	}
}

func TestLeaderboardView(t *testing.T) {
	ts, _ := newTestAPI(t)
	seedLeague(t, ts)
	resp := doRequest(t, ts, http.MethodPut, "/api/games/FRAGER/bets/%3Cb%3Eeve", map[string]any{"team1_score": 1, "team2_score": 0})
	expectStatus(t, resp, http.StatusOK)

	resp = doRequest(t, ts, http.MethodGet, "/leaderboard", nil)
	expectStatus(t, resp, http.StatusOK)
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	page := string(data)
	if !strings.Contains(page, "&lt;b&gt;eve") {
		t.Fatalf("expected escaped user name in page")
	}
	if !strings.Contains(page, "France vs. Germany") {
		t.Fatalf("expected team names in schedule")
	}
	if !strings.Contains(page, "20/06/2026 18:00") {
		t.Fatalf("expected kickoff in display format")
	}
}

func TestStoreErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: X", tipping.ErrUnknownGame), http.StatusNotFound},
		{tipping.ErrUnknownGlobalBet, http.StatusNotFound},
		{tipping.ErrUnknownTeam, http.StatusUnprocessableEntity},
		{tipping.ErrDuplicateKey, http.StatusConflict},
		{tipping.ErrBettingClosed, http.StatusConflict},
		{tipping.ErrInvalidTimestamp, http.StatusBadRequest},
		{tipping.ErrInvalidScore, http.StatusBadRequest},
		{tipping.ErrInvalidInput, http.StatusBadRequest},
		{errors.Join(nil, fmt.Errorf("%w: disk full", tipping.ErrPersistence)), http.StatusInternalServerError},
		{context.Canceled, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := storeErrorStatus(tc.err); got != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, got)
		}
	}
}

func TestValidators(t *testing.T) {
	for _, iso := range []string{"FR", "FRA"} {
		if !validISO(iso) {
			t.Fatalf("expected %q to be a valid iso", iso)
		}
	}
	for _, iso := range []string{"", "F", "FRAN", "fra", "F1"} {
		if validISO(iso) {
			t.Fatalf("expected %q to be rejected", iso)
		}
	}
	for _, short := range []string{"FRAGER", "final_1", "semi-2"} {
		if !validShort(short) {
			t.Fatalf("expected %q to be a valid short", short)
		}
	}
	for _, short := range []string{"", "has space", "way-too-long-short-name"} {
		if validShort(short) {
			t.Fatalf("expected %q to be rejected", short)
		}
	}
}
