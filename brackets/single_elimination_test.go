package brackets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smashscore/smashscore/models"
)

func TestSingleEliminationShape(t *testing.T) {
	testCases := []struct {
		teams        int
		rounds       int
		matchesTotal int
		byes         int
	}{
		{teams: 2, rounds: 1, matchesTotal: 1, byes: 0},
		{teams: 3, rounds: 2, matchesTotal: 3, byes: 1},
		{teams: 4, rounds: 2, matchesTotal: 3, byes: 0},
		{teams: 5, rounds: 3, matchesTotal: 6, byes: 2},
		{teams: 6, rounds: 3, matchesTotal: 6, byes: 0},
		{teams: 7, rounds: 3, matchesTotal: 7, byes: 1},
		{teams: 8, rounds: 3, matchesTotal: 7, byes: 0},
		{teams: 16, rounds: 4, matchesTotal: 15, byes: 0},
	}

	gen := &SingleEliminationGenerator{}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d teams", tc.teams), func(t *testing.T) {
			res, err := gen.Generate(GenerateParams{TournamentID: "tour", Teams: makeTeams(tc.teams)})
			require.NoError(t, err)

			assert.Equal(t, tc.rounds, res.Rounds)
			assert.Len(t, res.Bracket, tc.rounds)

			total := 0
			for _, matches := range res.Bracket {
				total += len(matches)
			}
			assert.Equal(t, tc.matchesTotal, total)
			assert.Len(t, res.Byes, tc.byes)
		})
	}
}

func TestSingleEliminationFirstRoundPairing(t *testing.T) {
	teams := makeTeams(8)
	gen := &SingleEliminationGenerator{}
	res, err := gen.Generate(GenerateParams{TournamentID: "tour", Teams: teams})
	require.NoError(t, err)

	round1 := res.Bracket[1]
	require.Len(t, round1, 4)
	for i, m := range round1 {
		assert.Equal(t, i+1, m.Position)
		require.NotNil(t, m.Team1)
		require.NotNil(t, m.Team2)
		assert.Equal(t, teams[2*i].ID, m.Team1.ID)
		assert.Equal(t, teams[2*i+1].ID, m.Team2.ID)
		assert.Nil(t, m.Winner)
		assert.Equal(t, models.MatchStatusPending, m.Status)
	}
}

func TestSingleEliminationByesAutoComplete(t *testing.T) {
	teams := makeTeams(5)
	gen := &SingleEliminationGenerator{}
	res, err := gen.Generate(GenerateParams{TournamentID: "tour", Teams: teams})
	require.NoError(t, err)

	// Team 5 has no round 1 opponent and no possible round 2 opponent
	// either, so it rides byes straight into the final.
	r1 := res.Bracket.MatchAt(1, 3)
	require.NotNil(t, r1)
	require.NotNil(t, r1.Team1)
	assert.Equal(t, "t05", r1.Team1.ID)
	assert.Nil(t, r1.Team2)
	require.NotNil(t, r1.Winner)
	assert.Equal(t, "t05", *r1.Winner)
	assert.Equal(t, models.MatchStatusCompleted, r1.Status)

	r2 := res.Bracket.MatchAt(2, 2)
	require.NotNil(t, r2)
	require.NotNil(t, r2.Winner)
	assert.Equal(t, "t05", *r2.Winner)

	final := res.Bracket.MatchAt(3, 1)
	require.NotNil(t, final)
	require.NotNil(t, final.Team2)
	assert.Equal(t, "t05", final.Team2.ID)
	assert.Nil(t, final.Winner)
}

func TestSingleEliminationSkipsDeadSlots(t *testing.T) {
	res, err := (&SingleEliminationGenerator{}).Generate(GenerateParams{TournamentID: "tour", Teams: makeTeams(6)})
	require.NoError(t, err)

	// A full 8-slot tree would have 4 round 1 matches; the slot fed by
	// two absent teams is never created.
	assert.Len(t, res.Bracket[1], 3)
	assert.Nil(t, res.Bracket.MatchAt(1, 4))
	assert.Len(t, res.Bracket[2], 2)
	assert.Len(t, res.Bracket[3], 1)
}

func TestSingleEliminationTooFewTeams(t *testing.T) {
	gen := &SingleEliminationGenerator{}
	for _, n := range []int{0, 1} {
		res, err := gen.Generate(GenerateParams{TournamentID: "tour", Teams: makeTeams(n)})
		require.NoError(t, err)
		assert.Empty(t, res.Bracket)
		assert.Zero(t, res.Rounds)
	}
}

func TestSingleEliminationSnapshotsTeams(t *testing.T) {
	teams := makeTeams(2)
	res, err := (&SingleEliminationGenerator{}).Generate(GenerateParams{TournamentID: "tour", Teams: teams})
	require.NoError(t, err)

	m := res.Bracket.MatchAt(1, 1)
	require.NotNil(t, m)
	teams[0].Wins = 99
	assert.Zero(t, m.Team1.Wins)
}
