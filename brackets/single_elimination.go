package brackets

import (
	"math"

	"github.com/smashscore/smashscore/models"
)

// node tracks what will arrive at a bracket slot while rounds are built
// front to back: a team already known (seeded directly or advanced
// through a bye), the winner of a created match, or nothing at all when
// the slot has no feeder.
type node struct {
	team *models.Team // known occupant, nil when undetermined
	void bool         // no feeder exists for this slot
}

type SingleEliminationGenerator struct{}

func (g *SingleEliminationGenerator) Format() models.TournamentFormat {
	return models.FormatSingleElimination
}

func (g *SingleEliminationGenerator) Generate(params GenerateParams) (*Result, error) {
	bracket, byes, rounds := buildEliminationRounds(params.TournamentID, params.Teams)
	return &Result{Bracket: bracket, Byes: byes, Rounds: rounds}, nil
}

// buildEliminationRounds produces ceil(log2(n)) rounds. Round r holds up
// to 2^(rounds-r) slots; slots where neither side can ever receive a
// team are skipped, which keeps positions sparse but stable. Matches
// with exactly one known team and no feeder on the other side are
// completed as byes immediately and their winner carried forward.
func buildEliminationRounds(tournamentID string, teams []models.Team) (models.Bracket, []*models.Match, int) {
	n := len(teams)
	if n < 2 {
		return models.Bracket{}, nil, 0
	}

	rounds := int(math.Ceil(math.Log2(float64(n))))
	bracketSize := 1 << uint(rounds)

	nodes := make([]*node, bracketSize)
	for i := 0; i < bracketSize; i++ {
		if i < n {
			nodes[i] = &node{team: teams[i].Snapshot()}
		} else {
			nodes[i] = &node{void: true}
		}
	}

	bracket := make(models.Bracket, rounds)
	var byes []*models.Match

	for r := 1; r <= rounds; r++ {
		matches := make([]*models.Match, 0, len(nodes)/2)
		next := make([]*node, 0, len(nodes)/2)

		for i := 0; i < len(nodes); i += 2 {
			left, right := nodes[i], nodes[i+1]
			position := i/2 + 1

			if left.void && right.void {
				// Nothing can ever reach this slot.
				next = append(next, &node{void: true})
				continue
			}

			m := newMatch(tournamentID, position)
			m.Team1 = left.team
			m.Team2 = right.team

			switch {
			case left.team != nil && right.void:
				completeBye(m, left.team)
				byes = append(byes, m)
				next = append(next, &node{team: left.team})
			case right.team != nil && left.void:
				completeBye(m, right.team)
				byes = append(byes, m)
				next = append(next, &node{team: right.team})
			default:
				// Undecided: either both teams are seeded, or at least
				// one side waits on a feeder match. A side whose feeder
				// slot was skipped resolves as a bye at edit time, once
				// the other side's winner arrives.
				next = append(next, &node{})
			}

			matches = append(matches, m)
		}

		bracket[r] = matches
		nodes = next
	}

	return bracket, byes, rounds
}
