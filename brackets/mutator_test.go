package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smashscore/smashscore/models"
)

func TestScoreEditDecidesAndClamps(t *testing.T) {
	tour := singleElimTournament(4)
	m := tour.Bracket.MatchAt(1, 1)

	outcome, err := ApplyMatchEdit(tour, m.ID, ScoreEdit{Side: Team1Side, Value: 25})
	require.NoError(t, err)

	assert.Equal(t, 21, m.Team1Score, "score is clamped to pointsPerMatch")
	require.NotNil(t, m.Winner)
	assert.Equal(t, "t01", *m.Winner)
	assert.Equal(t, models.MatchStatusCompleted, m.Status)

	assert.Equal(t, 1, tour.TeamByID("t01").Wins)
	assert.Equal(t, 1, tour.TeamByID("t02").Losses)
	assert.Len(t, outcome.Adjustments, 4, "team and player entries for both sides")
}

func TestScoreEditBelowThresholdStaysOpen(t *testing.T) {
	tour := singleElimTournament(4)
	m := tour.Bracket.MatchAt(1, 1)

	_, err := ApplyMatchEdit(tour, m.ID, ScoreEdit{Side: Team1Side, Value: 10})
	require.NoError(t, err)

	assert.Nil(t, m.Winner)
	assert.Equal(t, models.MatchStatusOngoing, m.Status)
	assert.Zero(t, tour.TeamByID("t01").Wins)
}

func TestScoreEditIdempotent(t *testing.T) {
	tour := singleElimTournament(4)
	m := tour.Bracket.MatchAt(1, 1)

	_, err := ApplyMatchEdit(tour, m.ID, ScoreEdit{Side: Team1Side, Value: 21})
	require.NoError(t, err)
	outcome, err := ApplyMatchEdit(tour, m.ID, ScoreEdit{Side: Team1Side, Value: 21})
	require.NoError(t, err)

	assert.Empty(t, outcome.Adjustments, "repeating the same edit changes nothing")
	assert.Equal(t, 1, tour.TeamByID("t01").Wins)
	require.NotNil(t, tour.Bracket.MatchAt(2, 1).Team1)
}

func TestWinnerAdvancesByPositionParity(t *testing.T) {
	tour := singleElimTournament(4)

	_, err := ApplyMatchEdit(tour, tour.Bracket.MatchAt(1, 1).ID, winnerOf("t01"))
	require.NoError(t, err)
	_, err = ApplyMatchEdit(tour, tour.Bracket.MatchAt(1, 2).ID, winnerOf("t03"))
	require.NoError(t, err)

	final := tour.Bracket.MatchAt(2, 1)
	require.NotNil(t, final.Team1)
	require.NotNil(t, final.Team2)
	assert.Equal(t, "t01", final.Team1.ID)
	assert.Equal(t, "t03", final.Team2.ID)
	assert.Zero(t, final.Team1Score)
	assert.Zero(t, final.Team2Score)
	assert.Nil(t, final.Winner)
}

func TestAdvancedSnapshotCarriesCurrentCounters(t *testing.T) {
	tour := singleElimTournament(4)

	_, err := ApplyMatchEdit(tour, tour.Bracket.MatchAt(1, 1).ID, winnerOf("t01"))
	require.NoError(t, err)

	final := tour.Bracket.MatchAt(2, 1)
	require.NotNil(t, final.Team1)
	assert.Equal(t, 1, final.Team1.Wins, "snapshot includes the win just credited")

	// The snapshot is a copy, not a live reference.
	tour.TeamByID("t01").Wins = 50
	assert.Equal(t, 1, final.Team1.Wins)
}

func TestWinnerClearRoundTrip(t *testing.T) {
	tour := singleElimTournament(4)
	m := tour.Bracket.MatchAt(1, 1)

	_, err := ApplyMatchEdit(tour, m.ID, winnerOf("t01"))
	require.NoError(t, err)
	_, err = ApplyMatchEdit(tour, m.ID, WinnerEdit{})
	require.NoError(t, err)

	assert.Nil(t, m.Winner)
	assert.Equal(t, models.MatchStatusPending, m.Status)
	assert.Nil(t, tour.Bracket.MatchAt(2, 1).Team1)
	for _, id := range []string{"t01", "t02"} {
		team := tour.TeamByID(id)
		assert.Zero(t, team.Wins, "%s wins restored", id)
		assert.Zero(t, team.Losses, "%s losses restored", id)
	}
}

func TestWinnerSameValueIsNoOp(t *testing.T) {
	tour := singleElimTournament(4)
	m := tour.Bracket.MatchAt(1, 1)

	_, err := ApplyMatchEdit(tour, m.ID, winnerOf("t01"))
	require.NoError(t, err)
	outcome, err := ApplyMatchEdit(tour, m.ID, winnerOf("t01"))
	require.NoError(t, err)

	assert.Empty(t, outcome.Adjustments)
	assert.Equal(t, 1, tour.TeamByID("t01").Wins)
}

func TestWinnerClearRejectedAfterParentDecided(t *testing.T) {
	tour := singleElimTournament(4)
	m1 := tour.Bracket.MatchAt(1, 1)

	_, err := ApplyMatchEdit(tour, m1.ID, winnerOf("t01"))
	require.NoError(t, err)
	_, err = ApplyMatchEdit(tour, tour.Bracket.MatchAt(1, 2).ID, winnerOf("t03"))
	require.NoError(t, err)
	_, err = ApplyMatchEdit(tour, tour.Bracket.MatchAt(2, 1).ID, winnerOf("t01"))
	require.NoError(t, err)

	_, err = ApplyMatchEdit(tour, m1.ID, WinnerEdit{})
	require.ErrorIs(t, err, ErrWinnerPropagated)

	require.NotNil(t, m1.Winner)
	assert.Equal(t, "t01", *m1.Winner, "rejected edit leaves state intact")
	assert.Equal(t, 2, tour.TeamByID("t01").Wins)
}

func TestScoreInducedClearUnwindsDecidedRounds(t *testing.T) {
	tour := singleElimTournament(4)
	m1 := tour.Bracket.MatchAt(1, 1)

	_, err := ApplyMatchEdit(tour, m1.ID, ScoreEdit{Side: Team1Side, Value: 21})
	require.NoError(t, err)
	_, err = ApplyMatchEdit(tour, tour.Bracket.MatchAt(1, 2).ID, ScoreEdit{Side: Team1Side, Value: 21})
	require.NoError(t, err)
	final := tour.Bracket.MatchAt(2, 1)
	_, err = ApplyMatchEdit(tour, final.ID, ScoreEdit{Side: Team1Side, Value: 21})
	require.NoError(t, err)
	require.Equal(t, models.TournamentStatusCompleted, tour.Status)

	// Levelling the round 1 score un-decides the match; the decided
	// final is unwound rather than rejected.
	_, err = ApplyMatchEdit(tour, m1.ID, ScoreEdit{Side: Team2Side, Value: 21})
	require.NoError(t, err)

	assert.Nil(t, m1.Winner)
	assert.Nil(t, final.Team1)
	assert.Nil(t, final.Winner)
	assert.Zero(t, final.Team1Score)
	assert.Equal(t, models.MatchStatusPending, final.Status)
	assert.Equal(t, models.TournamentStatusActive, tour.Status)

	assert.Zero(t, tour.TeamByID("t01").Wins, "round 1 and final wins both reversed")
	assert.Zero(t, tour.TeamByID("t02").Losses)
	assert.Equal(t, 1, tour.TeamByID("t03").Wins, "other semifinal untouched")
	assert.Zero(t, tour.TeamByID("t03").Losses, "final loss reversed")
}

func TestWinnerChangeSwapsAdvancedTeam(t *testing.T) {
	tour := singleElimTournament(4)
	m1 := tour.Bracket.MatchAt(1, 1)

	_, err := ApplyMatchEdit(tour, m1.ID, winnerOf("t01"))
	require.NoError(t, err)
	_, err = ApplyMatchEdit(tour, m1.ID, winnerOf("t02"))
	require.NoError(t, err)

	final := tour.Bracket.MatchAt(2, 1)
	require.NotNil(t, final.Team1)
	assert.Equal(t, "t02", final.Team1.ID)

	assert.Zero(t, tour.TeamByID("t01").Wins)
	assert.Equal(t, 1, tour.TeamByID("t01").Losses)
	assert.Equal(t, 1, tour.TeamByID("t02").Wins)
	assert.Zero(t, tour.TeamByID("t02").Losses)
}

func TestEditErrors(t *testing.T) {
	tour := singleElimTournament(4)
	m := tour.Bracket.MatchAt(1, 1)

	_, err := ApplyMatchEdit(tour, "missing", ScoreEdit{Side: Team1Side, Value: 5})
	assert.ErrorIs(t, err, ErrMatchNotFound)

	_, err = ApplyMatchEdit(tour, m.ID, winnerOf("t99"))
	assert.ErrorIs(t, err, ErrUnknownTeam)
	assert.Nil(t, m.Winner)
}

func TestDeferredByeResolvesOnArrival(t *testing.T) {
	tour := singleElimTournament(6)
	m := tour.Bracket.MatchAt(1, 3)

	_, err := ApplyMatchEdit(tour, m.ID, ScoreEdit{Side: Team1Side, Value: 21})
	require.NoError(t, err)

	// Round 2 slot 2 has no second feeder, so t05 byes through it into
	// the final immediately.
	parent := tour.Bracket.MatchAt(2, 2)
	require.NotNil(t, parent.Winner)
	assert.Equal(t, "t05", *parent.Winner)
	assert.Equal(t, models.MatchStatusCompleted, parent.Status)

	final := tour.Bracket.MatchAt(3, 1)
	require.NotNil(t, final.Team2)
	assert.Equal(t, "t05", final.Team2.ID)

	assert.Equal(t, 2, tour.TeamByID("t05").Wins, "match win plus bye win")

	// Undoing the round 1 result takes the bye and the final seat back.
	_, err = ApplyMatchEdit(tour, m.ID, ScoreEdit{Side: Team2Side, Value: 21})
	require.NoError(t, err)

	assert.Nil(t, parent.Winner)
	assert.Nil(t, parent.Team1)
	assert.Nil(t, final.Team2)
	assert.Zero(t, tour.TeamByID("t05").Wins)
	assert.Zero(t, tour.TeamByID("t06").Losses)
}

func TestWinnerClearUnwindsAutoByeParent(t *testing.T) {
	tour := singleElimTournament(6)
	m := tour.Bracket.MatchAt(1, 3)

	_, err := ApplyMatchEdit(tour, m.ID, winnerOf("t05"))
	require.NoError(t, err)

	parent := tour.Bracket.MatchAt(2, 2)
	require.NotNil(t, parent.Winner, "one-feeder slot byes through on arrival")

	// The auto-completed bye does not count as a downstream decision;
	// clearing the feeder unwinds it.
	_, err = ApplyMatchEdit(tour, m.ID, WinnerEdit{})
	require.NoError(t, err)

	assert.Nil(t, m.Winner)
	assert.Nil(t, parent.Winner)
	assert.Nil(t, parent.Team1)
	assert.Nil(t, tour.Bracket.MatchAt(3, 1).Team2)
	assert.Zero(t, tour.TeamByID("t05").Wins)
	assert.Zero(t, tour.TeamByID("t06").Losses)

	// Once the final is decided by play the clear is rejected again.
	_, err = ApplyMatchEdit(tour, m.ID, winnerOf("t05"))
	require.NoError(t, err)
	_, err = ApplyMatchEdit(tour, tour.Bracket.MatchAt(1, 1).ID, winnerOf("t01"))
	require.NoError(t, err)
	_, err = ApplyMatchEdit(tour, tour.Bracket.MatchAt(1, 2).ID, winnerOf("t03"))
	require.NoError(t, err)
	_, err = ApplyMatchEdit(tour, tour.Bracket.MatchAt(2, 1).ID, winnerOf("t01"))
	require.NoError(t, err)
	_, err = ApplyMatchEdit(tour, tour.Bracket.MatchAt(3, 1).ID, winnerOf("t05"))
	require.NoError(t, err)

	_, err = ApplyMatchEdit(tour, m.ID, WinnerEdit{})
	require.ErrorIs(t, err, ErrWinnerPropagated)
}

func TestDoubleEliminationCrossLink(t *testing.T) {
	tour := doubleElimTournament(4)
	m1 := tour.Elimination.Winners.MatchAt(1, 1)

	_, err := ApplyMatchEdit(tour, m1.ID, winnerOf("t02"))
	require.NoError(t, err)

	dropped := tour.Elimination.Losers.MatchAt(1, 1)
	require.NotNil(t, dropped.Team1, "loser lands on the slot matching its feeder parity")
	assert.Equal(t, "t01", dropped.Team1.ID)
	assert.Nil(t, dropped.Team2)
}

func TestDoubleEliminationUnwindRemovesDroppedLoser(t *testing.T) {
	tour := doubleElimTournament(4)
	m1 := tour.Elimination.Winners.MatchAt(1, 1)

	_, err := ApplyMatchEdit(tour, m1.ID, winnerOf("t02"))
	require.NoError(t, err)
	_, err = ApplyMatchEdit(tour, m1.ID, WinnerEdit{})
	require.NoError(t, err)

	assert.Nil(t, tour.Elimination.Losers.MatchAt(1, 1).Team1)
	assert.Nil(t, tour.Elimination.Winners.MatchAt(2, 1).Team1)
	assert.Zero(t, tour.TeamByID("t01").Losses)
	assert.Zero(t, tour.TeamByID("t02").Wins)
}

func TestDoubleEliminationRunToGrandFinal(t *testing.T) {
	tour := doubleElimTournament(4)
	winners := tour.Elimination.Winners

	_, err := ApplyMatchEdit(tour, winners.MatchAt(1, 1).ID, winnerOf("t01"))
	require.NoError(t, err)
	_, err = ApplyMatchEdit(tour, winners.MatchAt(1, 2).ID, winnerOf("t03"))
	require.NoError(t, err)

	consolation := tour.Elimination.Losers.MatchAt(1, 1)
	require.NotNil(t, consolation.Team1)
	require.NotNil(t, consolation.Team2)
	assert.Equal(t, "t02", consolation.Team1.ID)
	assert.Equal(t, "t04", consolation.Team2.ID)

	_, err = ApplyMatchEdit(tour, winners.MatchAt(2, 1).ID, winnerOf("t01"))
	require.NoError(t, err)
	_, err = ApplyMatchEdit(tour, consolation.ID, winnerOf("t02"))
	require.NoError(t, err)

	// The consolation winner meets the winners final loser before the
	// grand final.
	decider := tour.Elimination.Losers.MatchAt(2, 1)
	require.NotNil(t, decider.Team1)
	require.NotNil(t, decider.Team2)
	assert.Equal(t, "t02", decider.Team1.ID)
	assert.Equal(t, "t03", decider.Team2.ID)
	_, err = ApplyMatchEdit(tour, decider.ID, winnerOf("t02"))
	require.NoError(t, err)

	gf := tour.Elimination.GrandFinal
	require.NotNil(t, gf.Team1)
	require.NotNil(t, gf.Team2)
	assert.Equal(t, "t01", gf.Team1.ID)
	assert.Equal(t, "t02", gf.Team2.ID)

	outcome, err := ApplyMatchEdit(tour, gf.ID, winnerOf("t01"))
	require.NoError(t, err)
	assert.True(t, outcome.Completed)
	assert.Equal(t, models.TournamentStatusCompleted, tour.Status)
}

func TestDoubleEliminationDropDoesNotEvictAdvancedTeam(t *testing.T) {
	tour := doubleElimTournament(8)
	winners := tour.Elimination.Winners
	losers := tour.Elimination.Losers

	for pos := 1; pos <= 4; pos++ {
		winner := winners.MatchAt(1, pos).Team1.ID
		_, err := ApplyMatchEdit(tour, winners.MatchAt(1, pos).ID, winnerOf(winner))
		require.NoError(t, err)
	}

	_, err := ApplyMatchEdit(tour, losers.MatchAt(1, 1).ID, winnerOf("t02"))
	require.NoError(t, err)

	lr2 := losers.MatchAt(2, 1)
	require.NotNil(t, lr2.Team1)
	assert.Equal(t, "t02", lr2.Team1.ID)

	// The winners round 2 loser lands opposite the advanced team, not
	// on top of it.
	wr2 := winners.MatchAt(2, 1)
	_, err = ApplyMatchEdit(tour, wr2.ID, winnerOf("t01"))
	require.NoError(t, err)

	require.NotNil(t, lr2.Team1)
	assert.Equal(t, "t02", lr2.Team1.ID)
	require.NotNil(t, lr2.Team2)
	assert.Equal(t, "t03", lr2.Team2.ID)

	// Undoing the winners match takes back only the dropped loser.
	_, err = ApplyMatchEdit(tour, wr2.ID, WinnerEdit{})
	require.NoError(t, err)

	assert.Nil(t, lr2.Team2)
	require.NotNil(t, lr2.Team1)
	assert.Equal(t, "t02", lr2.Team1.ID)
}

func TestDoubleEliminationEightTeamFullSchedule(t *testing.T) {
	tour := doubleElimTournament(8)
	winners := tour.Elimination.Winners
	losers := tour.Elimination.Losers

	decide := func(m *models.Match, winner string) {
		t.Helper()
		_, err := ApplyMatchEdit(tour, m.ID, winnerOf(winner))
		require.NoError(t, err)
	}

	for pos := 1; pos <= 4; pos++ {
		decide(winners.MatchAt(1, pos), winners.MatchAt(1, pos).Team1.ID)
	}
	decide(losers.MatchAt(1, 1), "t02")
	decide(losers.MatchAt(1, 2), "t06")
	decide(winners.MatchAt(2, 1), "t01")
	decide(winners.MatchAt(2, 2), "t05")

	assert.Equal(t, "t03", losers.MatchAt(2, 1).Team2.ID)
	assert.Equal(t, "t07", losers.MatchAt(2, 2).Team2.ID)

	decide(losers.MatchAt(2, 1), "t02")
	decide(losers.MatchAt(2, 2), "t06")

	semifinal := losers.MatchAt(3, 1)
	require.NotNil(t, semifinal.Team1)
	require.NotNil(t, semifinal.Team2)
	assert.Equal(t, "t02", semifinal.Team1.ID)
	assert.Equal(t, "t06", semifinal.Team2.ID)
	decide(semifinal, "t02")

	decide(winners.MatchAt(3, 1), "t01")
	decider := losers.MatchAt(4, 1)
	require.NotNil(t, decider.Team1)
	require.NotNil(t, decider.Team2)
	assert.Equal(t, "t02", decider.Team1.ID)
	assert.Equal(t, "t05", decider.Team2.ID)
	decide(decider, "t02")

	gf := tour.Elimination.GrandFinal
	assert.Equal(t, "t01", gf.Team1.ID)
	assert.Equal(t, "t02", gf.Team2.ID)

	outcome, err := ApplyMatchEdit(tour, gf.ID, winnerOf("t01"))
	require.NoError(t, err)
	assert.True(t, outcome.Completed)
}

func TestDoubleEliminationTwoTeams(t *testing.T) {
	tour := doubleElimTournament(2)
	m := tour.Elimination.Winners.MatchAt(1, 1)

	_, err := ApplyMatchEdit(tour, m.ID, winnerOf("t01"))
	require.NoError(t, err)

	gf := tour.Elimination.GrandFinal
	require.NotNil(t, gf.Team1)
	require.NotNil(t, gf.Team2)
	assert.Equal(t, "t01", gf.Team1.ID)
	assert.Equal(t, "t02", gf.Team2.ID)

	outcome, err := ApplyMatchEdit(tour, gf.ID, winnerOf("t01"))
	require.NoError(t, err)
	assert.True(t, outcome.Completed)
}

func TestSingleEliminationCompletion(t *testing.T) {
	tour := singleElimTournament(2)
	final := tour.Bracket.MatchAt(1, 1)

	outcome, err := ApplyMatchEdit(tour, final.ID, winnerOf("t01"))
	require.NoError(t, err)

	assert.True(t, outcome.Completed)
	assert.Equal(t, models.TournamentStatusCompleted, tour.Status)
}
