package brackets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRobinEveryPairOnce(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8} {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			res, err := (&RoundRobinGenerator{}).Generate(GenerateParams{
				TournamentID: "tour",
				Teams:        makeTeams(n),
				Sets:         1,
			})
			require.NoError(t, err)

			seen := make(map[string]int)
			total := 0
			for _, matches := range res.Bracket {
				for _, m := range matches {
					require.NotNil(t, m.Team1)
					require.NotNil(t, m.Team2)
					a, b := m.Team1.ID, m.Team2.ID
					if a > b {
						a, b = b, a
					}
					seen[a+"/"+b]++
					total++
				}
			}

			assert.Equal(t, n*(n-1)/2, total)
			for pair, count := range seen {
				assert.Equal(t, 1, count, "pair %s", pair)
			}
		})
	}
}

func TestRoundRobinSetsAvoidRepeatTeams(t *testing.T) {
	res, err := (&RoundRobinGenerator{}).Generate(GenerateParams{
		TournamentID: "tour",
		Teams:        makeTeams(4),
		Sets:         3,
	})
	require.NoError(t, err)

	// 4 teams over 3 sets admit a perfect schedule: two disjoint
	// pairings per set.
	require.Len(t, res.Bracket, 3)
	total := 0
	for set, matches := range res.Bracket {
		used := make(map[string]bool)
		for _, m := range matches {
			assert.False(t, used[m.Team1.ID], "set %d repeats %s", set, m.Team1.ID)
			assert.False(t, used[m.Team2.ID], "set %d repeats %s", set, m.Team2.ID)
			used[m.Team1.ID] = true
			used[m.Team2.ID] = true
			total++
		}
	}
	assert.Equal(t, 6, total)
}

func TestRoundRobinForcedPlacementKeepsAllPairs(t *testing.T) {
	// 5 teams in 2 sets cannot avoid a team appearing twice in a set,
	// but no pair may be dropped or duplicated.
	res, err := (&RoundRobinGenerator{}).Generate(GenerateParams{
		TournamentID: "tour",
		Teams:        makeTeams(5),
		Sets:         2,
	})
	require.NoError(t, err)

	total := 0
	for _, matches := range res.Bracket {
		total += len(matches)
	}
	assert.Equal(t, 10, total)
}

func TestRoundRobinDropsEmptyTrailingSets(t *testing.T) {
	// 3 teams only have 3 pairs; requesting 5 sets must not leave empty
	// rounds behind.
	res, err := (&RoundRobinGenerator{}).Generate(GenerateParams{
		TournamentID: "tour",
		Teams:        makeTeams(3),
		Sets:         5,
	})
	require.NoError(t, err)

	require.Len(t, res.Bracket, 3)
	assert.Equal(t, 3, res.Rounds)
	for set, matches := range res.Bracket {
		assert.NotEmpty(t, matches, "set %d", set)
	}
}

func TestRoundRobinTooFewTeams(t *testing.T) {
	res, err := (&RoundRobinGenerator{}).Generate(GenerateParams{TournamentID: "tour", Teams: makeTeams(1), Sets: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Bracket)
}
