package brackets

import (
	"github.com/smashscore/smashscore/models"
)

type DoubleEliminationGenerator struct{}

func (g *DoubleEliminationGenerator) Format() models.TournamentFormat {
	return models.FormatDoubleElimination
}

// Generate builds a winners bracket identical to single elimination,
// plus an empty losers bracket and grand final. Losers drop into their
// bracket as winners matches decide, so every losers match starts with
// both sides open.
//
// The losers bracket has two rounds per winners round after the first:
// round 2k-1 pairs the survivors of the previous losers round, round 2k
// pits them against the losers dropping out of winners round k+1. Both
// rounds of pair k hold 2^(R-k-1) matches for a winners bracket of R
// rounds, so drops and advancements never contend for a slot. The last
// losers winner meets the winners champion in the grand final; with a
// one-round winners bracket there is no losers bracket and the lone
// loser goes straight to the grand final.
func (g *DoubleEliminationGenerator) Generate(params GenerateParams) (*Result, error) {
	winners, byes, rounds := buildEliminationRounds(params.TournamentID, params.Teams)
	if rounds == 0 {
		return &Result{Elimination: &models.DoubleEliminationBracket{
			Winners: models.Bracket{},
			Losers:  models.Bracket{},
		}}, nil
	}

	losers := make(models.Bracket)
	for k := 1; k < rounds; k++ {
		count := 1 << (rounds - k - 1)
		for _, round := range []int{2*k - 1, 2 * k} {
			matches := make([]*models.Match, count)
			for i := 0; i < count; i++ {
				matches[i] = newMatch(params.TournamentID, i+1)
			}
			losers[round] = matches
		}
	}

	elim := &models.DoubleEliminationBracket{
		Winners:    winners,
		Losers:     losers,
		GrandFinal: newMatch(params.TournamentID, 1),
	}
	return &Result{Elimination: elim, Byes: byes, Rounds: rounds}, nil
}
