package web

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestLeaderboardEscapesUserContent(t *testing.T) {
	page := LeaderboardPage{
		Standings: []StandingRow{{Rank: 1, User: "<b>mallory</b>", Points: 7, Exact: 2}},
		Games: []GameRow{{
			Name:      "Final",
			Short:     "FIN",
			Team1:     "FRA",
			Team2:     "GER",
			StartTime: time.Date(2026, 7, 19, 19, 0, 0, 0, time.UTC),
			Score:     "2:1",
			Note:      "a.e.t. & pens",
		}},
	}
	var buf bytes.Buffer
	if err := Leaderboard(page).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	if strings.Contains(html, "<b>mallory</b>") {
		t.Fatalf("expected user name to be escaped")
	}
	if !strings.Contains(html, "&lt;b&gt;mallory&lt;/b&gt;") {
		t.Fatalf("expected escaped user name in output")
	}
	if !strings.Contains(html, "19/07/2026 19:00") {
		t.Fatalf("expected kickoff in output")
	}
	if !strings.Contains(html, "2:1 a.e.t. &amp; pens") {
		t.Fatalf("expected score with note in output")
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Leaderboard(LeaderboardPage{}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No bets yet.") {
		t.Fatalf("expected empty state")
	}
}
