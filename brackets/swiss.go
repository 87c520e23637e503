package brackets

import (
	"math"
	"sort"

	"github.com/smashscore/smashscore/models"
)

type SwissGenerator struct{}

func (g *SwissGenerator) Format() models.TournamentFormat {
	return models.FormatSwiss
}

// Generate builds only the first swiss round: teams paired two-at-a-time
// in input order, with an odd team out receiving an automatic win.
// Later rounds are produced by NextSwissRound once the current round is
// fully decided. Result.Rounds carries the configured round count,
// defaulting to ceil(log2(n)).
func (g *SwissGenerator) Generate(params GenerateParams) (*Result, error) {
	teams := params.Teams
	n := len(teams)
	if n < 2 {
		return &Result{Bracket: models.Bracket{}}, nil
	}

	rounds := params.Rounds
	if rounds < 1 {
		rounds = int(math.Ceil(math.Log2(float64(n))))
	}

	matches := make([]*models.Match, 0, (n+1)/2)
	var byes []*models.Match
	for i := 0; i+1 < n; i += 2 {
		m := newMatch(params.TournamentID, len(matches)+1)
		m.Team1 = teams[i].Snapshot()
		m.Team2 = teams[i+1].Snapshot()
		matches = append(matches, m)
	}
	if n%2 == 1 {
		m := newMatch(params.TournamentID, len(matches)+1)
		m.Team1 = teams[n-1].Snapshot()
		completeBye(m, m.Team1)
		matches = append(matches, m)
		byes = append(byes, m)
	}

	return &Result{Bracket: models.Bracket{1: matches}, Byes: byes, Rounds: rounds}, nil
}

// NextSwissRound appends the next round to the tournament's bracket if
// one is due: the newest round must be fully decided, the configured
// round count (Tournament.Sets) not yet reached, and unplayed pairings
// must remain. Teams are ranked by cumulative wins (id as tie-break)
// and greedily paired top-down, skipping opponents already faced in any
// prior round. A team with no legal opponent left gets an automatic
// win. Returns the new round's matches along with any byes, or nil when
// no round was generated.
func NextSwissRound(t *models.Tournament) (matches []*models.Match, byes []*models.Match) {
	latest := t.Bracket.MaxRound()
	if latest == 0 || latest >= t.Sets {
		return nil, nil
	}
	for _, m := range t.Bracket[latest] {
		if !m.Decided() {
			return nil, nil
		}
	}

	played := playedPairs(t.Bracket)
	if pairsExhausted(t.Teams, played) {
		return nil, nil
	}

	n := len(t.Teams)
	ranked := make([]*models.Team, n)
	for i := range t.Teams {
		ranked[i] = &t.Teams[i]
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Wins != ranked[j].Wins {
			return ranked[i].Wins > ranked[j].Wins
		}
		return ranked[i].ID < ranked[j].ID
	})

	paired := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		team := ranked[i]
		if paired[team.ID] {
			continue
		}
		paired[team.ID] = true

		var opponent *models.Team
		for j := i + 1; j < n; j++ {
			candidate := ranked[j]
			if paired[candidate.ID] || played[team.ID][candidate.ID] {
				continue
			}
			opponent = candidate
			break
		}

		m := newMatch(t.ID, len(matches)+1)
		m.Team1 = team.Snapshot()
		if opponent != nil {
			paired[opponent.ID] = true
			m.Team2 = opponent.Snapshot()
		} else {
			completeBye(m, m.Team1)
			byes = append(byes, m)
		}
		matches = append(matches, m)
	}

	t.Bracket[latest+1] = matches
	return matches, byes
}

// playedPairs indexes every pairing that has appeared in any round.
func playedPairs(b models.Bracket) map[string]map[string]bool {
	played := make(map[string]map[string]bool)
	record := func(a, b string) {
		if played[a] == nil {
			played[a] = make(map[string]bool)
		}
		if played[b] == nil {
			played[b] = make(map[string]bool)
		}
		played[a][b] = true
		played[b][a] = true
	}
	for _, round := range b {
		for _, m := range round {
			if m.Team1 != nil && m.Team2 != nil {
				record(m.Team1.ID, m.Team2.ID)
			}
		}
	}
	return played
}

func pairsExhausted(teams []models.Team, played map[string]map[string]bool) bool {
	for i := range teams {
		for j := i + 1; j < len(teams); j++ {
			if !played[teams[i].ID][teams[j].ID] {
				return false
			}
		}
	}
	return len(teams) > 1
}
