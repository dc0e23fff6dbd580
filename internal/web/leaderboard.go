package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Leaderboard renders the standings and the game schedule. The page
// reloads itself when the websocket feed reports a change.
func Leaderboard(page LeaderboardPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Tippy Tappy</title>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Tippy Tappy</span>
        <h1>Leaderboard</h1>
      </header>
      <section class="panel">
        <table id="standings">
          <thead><tr><th>#</th><th>User</th><th>Points</th><th>Exact</th><th>Diff</th><th>Winner</th><th>Global</th></tr></thead>
          <tbody>
`)
		if len(page.Standings) == 0 {
			b.WriteString(`            <tr><td colspan="7">No bets yet.</td></tr>
`)
		}
		for _, row := range page.Standings {
			b.WriteString(`            <tr><td>` + itoa(row.Rank) + `</td><td>` + templ.EscapeString(row.User) +
				`</td><td>` + itoa(row.Points) + `</td><td>` + itoa(row.Exact) + `</td><td>` + itoa(row.Differential) +
				`</td><td>` + itoa(row.Direction) + `</td><td>` + itoa(row.Global) + "</td></tr>\n")
		}
		b.WriteString(`          </tbody>
        </table>
      </section>
      <section class="panel">
        <h2>Games</h2>
        <table id="games">
          <thead><tr><th>Kickoff</th><th>Game</th><th>Teams</th><th>Score</th></tr></thead>
          <tbody>
`)
		for _, game := range page.Games {
			class := "closed"
			if game.Open {
				class = "open"
			}
			b.WriteString(`            <tr class="` + class + `"><td>` + formatKickoff(game.StartTime, page.Location) +
				`</td><td>` + templ.EscapeString(game.Name) + ` (` + templ.EscapeString(game.Short) + `)</td><td>` +
				templ.EscapeString(game.Team1) + ` vs. ` + templ.EscapeString(game.Team2) + `</td><td>` +
				templ.EscapeString(strings.TrimSpace(game.Score+" "+game.Note)) + "</td></tr>\n")
		}
		b.WriteString(`          </tbody>
        </table>
      </section>
    </main>
    <script>
      const proto = location.protocol === "https:" ? "wss://" : "ws://";
      const feed = new WebSocket(proto + location.host + "/ws/leaderboard");
      let first = true;
      feed.addEventListener("message", () => {
        if (first) {
          first = false;
          return;
        }
        location.reload();
      });
    </script>
  </body>
</html>
`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
