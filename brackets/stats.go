package brackets

import (
	"github.com/smashscore/smashscore/models"
)

// StatField names a cumulative counter on a team or player record.
type StatField string

const (
	StatWins   StatField = "wins"
	StatLosses StatField = "losses"
)

// StatAdjustment is one signed increment against a team's counter and,
// when PlayerID is set, the matching player counter. Adjustments are
// floored at zero when applied.
type StatAdjustment struct {
	TeamID   string
	PlayerID string
	Field    StatField
	Delta    int
}

// Reconcile computes the counter adjustments implied by a match's
// winner changing from oldWinner to newWinner. It is a pure diff of the
// two states: the old winner's side gives back a win and the old
// loser's side a loss, then the new winner and loser are credited. A
// side absent from the match (byes) contributes nothing.
func Reconcile(oldWinner, newWinner *string, m *models.Match) []StatAdjustment {
	if equalWinner(oldWinner, newWinner) {
		return nil
	}

	var adjustments []StatAdjustment
	credit := func(team *models.Team, field StatField, delta int) {
		if team == nil {
			return
		}
		adjustments = append(adjustments, StatAdjustment{TeamID: team.ID, Field: field, Delta: delta})
		for _, p := range team.Players {
			adjustments = append(adjustments, StatAdjustment{TeamID: team.ID, PlayerID: p.ID, Field: field, Delta: delta})
		}
	}

	if oldWinner != nil {
		credit(m.TeamByID(*oldWinner), StatWins, -1)
		credit(m.OpponentOf(*oldWinner), StatLosses, -1)
	}
	if newWinner != nil {
		credit(m.TeamByID(*newWinner), StatWins, +1)
		credit(m.OpponentOf(*newWinner), StatLosses, +1)
	}
	return adjustments
}

// ApplyAdjustments folds team-level adjustments into the tournament's
// live team records so that standings and swiss pairing see current
// counters without a reload. Player rows are persisted separately.
func ApplyAdjustments(t *models.Tournament, adjustments []StatAdjustment) {
	for _, adj := range adjustments {
		if adj.PlayerID != "" {
			continue
		}
		team := t.TeamByID(adj.TeamID)
		if team == nil {
			continue
		}
		switch adj.Field {
		case StatWins:
			team.Wins = floorZero(team.Wins + adj.Delta)
		case StatLosses:
			team.Losses = floorZero(team.Losses + adj.Delta)
		}
	}
}

func equalWinner(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
