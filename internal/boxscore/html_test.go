package boxscore_test

import (
	"testing"

	"github.com/fortuna/prepstats/internal/boxscore"
)

const boxScorePage = `<html>
<body>
<h1>Girls Volleyball</h1>
<p>Final: MSD 3 - TSD 1</p>
<p>March 4, 2026</p>
<table>
<tr><th>Team</th><th>Score</th></tr>
<tr><td>MSD</td><td>3</td></tr>
</table>
<table>
<tr><th>Player</th><th>Kills</th><th>Pts</th></tr>
<tr><td>Ann Lee</td><td>12</td><td>14</td></tr>
<tr><td>Bea Cruz</td><td>7</td><td>9</td></tr>
</table>
</body>
</html>`

func TestParseHTML(t *testing.T) {
	res := boxscore.ParseHTML(boxScorePage)

	if len(res.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(res.Players))
	}
	ann := res.Players[0]
	if ann.Name != "Ann Lee" || ann.Stats["kills"] != 12 || ann.Stats["points"] != 14 {
		t.Errorf("first player = %+v", ann)
	}

	g := res.Game
	if g.HomeTeam != "MSD" || g.AwayTeam != "TSD" || g.Date != "2026-03-04" {
		t.Errorf("game = %+v", g)
	}
	if g.Sport != "volleyball" || g.Gender != "girls" {
		t.Errorf("sport/gender = %q/%q", g.Sport, g.Gender)
	}
	if res.Confidence != 90 {
		t.Errorf("Confidence = %d, want 90", res.Confidence)
	}
}

func TestParseHTMLWithoutTable(t *testing.T) {
	res := boxscore.ParseHTML("<p>Rained out</p>")
	if len(res.Players) != 0 || len(res.Warnings) != 1 {
		t.Errorf("players %v warnings %v", res.Players, res.Warnings)
	}
}
