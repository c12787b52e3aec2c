package boxscore

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const htmlTablePoints = 60

// ParseHTML parses a box score page. The first table whose header row looks
// like a player stat table is used; game facts are read from the page text.
func ParseHTML(content string) *Result {
	res := &Result{Source: SourceHTML, Players: []Player{}}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		res.Errors = append(res.Errors, "Failed to parse HTML: "+err.Error())
		return res
	}

	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		players := parseHTMLTable(table)
		if len(players) == 0 {
			return true
		}
		res.Players = players
		res.Confidence += htmlTablePoints
		return false
	})

	text := doc.Text()
	if home, hs, away, as, ok := extractTeamsAndScore(text); ok {
		res.Game.HomeTeam, res.Game.AwayTeam = home, away
		res.Game.HomeScore, res.Game.AwayScore = intPtr(hs), intPtr(as)
		res.Confidence += textTeamsPoints
	}
	if date := FindDate(text); date != "" {
		res.Game.Date = date
	}
	res.Game.Sport = extractSport(text)
	res.Game.Gender = extractGender(text)

	if len(res.Players) == 0 {
		res.Warnings = append(res.Warnings, "No player stat table found")
	}
	return res
}

func parseHTMLTable(table *goquery.Selection) []Player {
	var headers []string
	table.Find("tr").First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(cell.Text()))
	})
	if !isPlayerHeader(headers) {
		return nil
	}

	cols, nameIdx, teamIdx := mapColumns(headers)
	var players []Player
	table.Find("tr").Slice(1, goquery.ToEnd).Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) < 2 {
			return
		}
		if p, ok := playerFromCells(cells, cols, nameIdx, teamIdx); ok {
			players = append(players, p)
		}
	})
	return players
}
