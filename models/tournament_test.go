package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalBracketWithoutBracketIsNull(t *testing.T) {
	tournament := &Tournament{Format: FormatSingleElimination}

	data, err := tournament.MarshalBracket()
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestBracketWireFormatRoundKeyed(t *testing.T) {
	team1 := &Team{ID: "t01", Name: "Alice"}
	team2 := &Team{ID: "t02", Name: "Bob"}
	winner := "t01"

	tournament := &Tournament{
		Format: FormatSingleElimination,
		Bracket: Bracket{
			1: {{
				ID:         "m1",
				Team1:      team1,
				Team2:      team2,
				Team1Score: 21,
				Team2Score: 15,
				Winner:     &winner,
				Status:     MatchStatusCompleted,
				Position:   1,
			}},
		},
	}

	data, err := tournament.MarshalBracket()
	require.NoError(t, err)

	var wire map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	require.Contains(t, wire, "1")
	require.Len(t, wire["1"], 1)
	assert.Equal(t, "m1", wire["1"][0]["id"])
	assert.Equal(t, "t01", wire["1"][0]["winner"])
	assert.Equal(t, float64(21), wire["1"][0]["team1Score"])

	restored := &Tournament{Format: FormatSingleElimination}
	require.NoError(t, restored.UnmarshalBracket(data))
	require.True(t, restored.HasBracket())

	match, round, ok := restored.Bracket.FindMatch("m1")
	require.True(t, ok)
	assert.Equal(t, 1, round)
	assert.Equal(t, "Alice", match.Team1.Name)
	require.NotNil(t, match.Winner)
	assert.Equal(t, "t01", *match.Winner)
}

func TestDoubleEliminationWireFormat(t *testing.T) {
	tournament := &Tournament{
		Format: FormatDoubleElimination,
		Elimination: &DoubleEliminationBracket{
			Winners:    Bracket{1: {{ID: "w1", Position: 1}}},
			Losers:     Bracket{1: {{ID: "l1", Position: 1}}},
			GrandFinal: &Match{ID: "gf", Position: 1},
		},
	}

	data, err := tournament.MarshalBracket()
	require.NoError(t, err)

	var wire map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Contains(t, wire, "winners")
	assert.Contains(t, wire, "losers")
	assert.Contains(t, wire, "grandFinal")

	restored := &Tournament{Format: FormatDoubleElimination}
	require.NoError(t, restored.UnmarshalBracket(data))
	require.True(t, restored.HasBracket())
	assert.Equal(t, "gf", restored.Elimination.GrandFinal.ID)
	assert.Equal(t, "w1", restored.Elimination.Winners[1][0].ID)
	assert.Equal(t, "l1", restored.Elimination.Losers[1][0].ID)
}

func TestUnmarshalBracketNullLeavesEmpty(t *testing.T) {
	for _, input := range []string{"", "null"} {
		tournament := &Tournament{Format: FormatRoundRobin}
		require.NoError(t, tournament.UnmarshalBracket([]byte(input)))
		assert.False(t, tournament.HasBracket())
	}
}

func TestModeTeamSize(t *testing.T) {
	assert.Equal(t, 1, ModeSingles.TeamSize())
	assert.Equal(t, 2, ModeDoubles.TeamSize())
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat(FormatSwiss))
	assert.False(t, ValidFormat("ladder"))
}
