package brackets

import (
	"sort"

	"github.com/smashscore/smashscore/models"
)

// Standing is one leaderboard row. Teams with identical win/loss
// records share a rank.
type Standing struct {
	Rank    int         `json:"rank"`
	Team    models.Team `json:"team"`
	Played  int         `json:"played"`
	Wins    int         `json:"wins"`
	Losses  int         `json:"losses"`
	WinRate int         `json:"winRate"`
}

// Standings ranks the tournament's teams by wins, breaking ties by
// fewest losses and then by name for a stable display order.
func Standings(t *models.Tournament) []Standing {
	teams := make([]models.Team, len(t.Teams))
	for i := range t.Teams {
		teams[i] = *t.Teams[i].Snapshot()
	}
	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].Wins != teams[j].Wins {
			return teams[i].Wins > teams[j].Wins
		}
		if teams[i].Losses != teams[j].Losses {
			return teams[i].Losses < teams[j].Losses
		}
		return teams[i].Name < teams[j].Name
	})

	standings := make([]Standing, len(teams))
	for i, team := range teams {
		rank := i + 1
		if i > 0 && teams[i].Wins == teams[i-1].Wins && teams[i].Losses == teams[i-1].Losses {
			rank = standings[i-1].Rank
		}
		played := team.Wins + team.Losses
		rate := 0
		if played > 0 {
			rate = int(float64(team.Wins)/float64(played)*100 + 0.5)
		}
		standings[i] = Standing{
			Rank:    rank,
			Team:    team,
			Played:  played,
			Wins:    team.Wins,
			Losses:  team.Losses,
			WinRate: rate,
		}
	}
	return standings
}
