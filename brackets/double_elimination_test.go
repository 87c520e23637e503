package brackets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoubleEliminationShape(t *testing.T) {
	testCases := []struct {
		teams         int
		winnersRounds int
		losersCounts  []int
	}{
		{teams: 2, winnersRounds: 1, losersCounts: nil},
		{teams: 4, winnersRounds: 2, losersCounts: []int{1, 1}},
		{teams: 5, winnersRounds: 3, losersCounts: []int{2, 2, 1, 1}},
		{teams: 8, winnersRounds: 3, losersCounts: []int{2, 2, 1, 1}},
		{teams: 16, winnersRounds: 4, losersCounts: []int{4, 4, 2, 2, 1, 1}},
	}

	gen := &DoubleEliminationGenerator{}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d teams", tc.teams), func(t *testing.T) {
			res, err := gen.Generate(GenerateParams{TournamentID: "tour", Teams: makeTeams(tc.teams)})
			require.NoError(t, err)
			require.NotNil(t, res.Elimination)

			assert.Equal(t, tc.winnersRounds, res.Elimination.Winners.MaxRound())
			require.Len(t, res.Elimination.Losers, len(tc.losersCounts))
			for r, count := range tc.losersCounts {
				assert.Len(t, res.Elimination.Losers[r+1], count, "losers round %d", r+1)
			}
			require.NotNil(t, res.Elimination.GrandFinal)
			assert.Nil(t, res.Elimination.GrandFinal.Team1)
			assert.Nil(t, res.Elimination.GrandFinal.Team2)
		})
	}
}

func TestDoubleEliminationLosersStartEmpty(t *testing.T) {
	res, err := (&DoubleEliminationGenerator{}).Generate(GenerateParams{TournamentID: "tour", Teams: makeTeams(8)})
	require.NoError(t, err)

	for r, matches := range res.Elimination.Losers {
		for i, m := range matches {
			assert.Nil(t, m.Team1, "losers %d/%d", r, i)
			assert.Nil(t, m.Team2, "losers %d/%d", r, i)
			assert.Nil(t, m.Winner)
			assert.Equal(t, i+1, m.Position)
		}
	}
}

func TestDoubleEliminationTooFewTeams(t *testing.T) {
	res, err := (&DoubleEliminationGenerator{}).Generate(GenerateParams{TournamentID: "tour", Teams: makeTeams(1)})
	require.NoError(t, err)
	require.NotNil(t, res.Elimination)
	assert.Empty(t, res.Elimination.Winners)
	assert.Empty(t, res.Elimination.Losers)
	assert.Nil(t, res.Elimination.GrandFinal)
}
