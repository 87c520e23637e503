package brackets

import (
	"github.com/smashscore/smashscore/models"
)

type RoundRobinGenerator struct{}

func (g *RoundRobinGenerator) Format() models.TournamentFormat {
	return models.FormatRoundRobin
}

// Generate enumerates every unordered pair of teams exactly once and
// spreads the pairs across the requested number of sets. Placement
// rotates through the sets and prefers one where neither team already
// plays; when no such set exists the pair is forced into the rotation
// target anyway, since every pair must land somewhere.
func (g *RoundRobinGenerator) Generate(params GenerateParams) (*Result, error) {
	teams := params.Teams
	n := len(teams)
	if n < 2 {
		return &Result{Bracket: models.Bracket{}}, nil
	}

	sets := params.Sets
	if sets < 1 {
		sets = 1
	}

	bracket := make(models.Bracket, sets)
	used := make([]map[string]bool, sets)
	for s := 0; s < sets; s++ {
		bracket[s+1] = []*models.Match{}
		used[s] = make(map[string]bool)
	}

	target := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			set := target
			for k := 0; k < sets; k++ {
				candidate := (target + k) % sets
				if !used[candidate][teams[i].ID] && !used[candidate][teams[j].ID] {
					set = candidate
					break
				}
			}

			m := newMatch(params.TournamentID, len(bracket[set+1])+1)
			m.Team1 = teams[i].Snapshot()
			m.Team2 = teams[j].Snapshot()
			bracket[set+1] = append(bracket[set+1], m)
			used[set][teams[i].ID] = true
			used[set][teams[j].ID] = true

			target = (target + 1) % sets
		}
	}

	// More sets than pairs leaves trailing sets with no matches; drop
	// them so the bracket carries no empty rounds.
	for sets > 0 && len(bracket[sets]) == 0 {
		delete(bracket, sets)
		sets--
	}

	return &Result{Bracket: bracket, Rounds: sets}, nil
}
