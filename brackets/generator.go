package brackets

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/smashscore/smashscore/models"
)

// GenerateParams carries everything a generator needs. Generators are
// pure: they allocate match ids but touch nothing outside the result.
type GenerateParams struct {
	TournamentID string
	Teams        []models.Team

	// Sets is the number of parallel sets for round robin.
	Sets int
	// Rounds is the round count for swiss; 0 means ceil(log2(n)).
	Rounds int
}

// Result is a freshly generated bracket structure. Byes lists the
// matches that were decided at generation time, so the caller can credit
// their winners through the regular stats reconciliation path.
type Result struct {
	Bracket     models.Bracket
	Elimination *models.DoubleEliminationBracket
	Byes        []*models.Match
	Rounds      int
}

type Generator interface {
	Format() models.TournamentFormat
	Generate(params GenerateParams) (*Result, error)
}

var ErrUnsupportedFormat = errors.New("unsupported tournament format")

// ForFormat returns the generator for a tournament format.
func ForFormat(format models.TournamentFormat) (Generator, error) {
	switch format {
	case models.FormatSingleElimination:
		return &SingleEliminationGenerator{}, nil
	case models.FormatDoubleElimination:
		return &DoubleEliminationGenerator{}, nil
	case models.FormatRoundRobin:
		return &RoundRobinGenerator{}, nil
	case models.FormatSwiss:
		return &SwissGenerator{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func newMatch(tournamentID string, position int) *models.Match {
	return &models.Match{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		Status:       models.MatchStatusPending,
		Position:     position,
	}
}

// completeBye marks a single-sided match as decided in favor of its only
// team.
func completeBye(m *models.Match, winner *models.Team) {
	id := winner.ID
	m.Winner = &id
	m.Status = models.MatchStatusCompleted
}
