package brackets

import (
	"fmt"

	"github.com/smashscore/smashscore/models"
)

func makeTeams(n int) []models.Team {
	teams := make([]models.Team, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("t%02d", i+1)
		teams[i] = models.Team{
			ID:   id,
			Name: fmt.Sprintf("Team %d", i+1),
			Players: []models.Player{
				{ID: id + "-p1", Name: fmt.Sprintf("Player %d", i+1)},
			},
		}
	}
	return teams
}

func singleElimTournament(n int) *models.Tournament {
	teams := makeTeams(n)
	gen := &SingleEliminationGenerator{}
	res, _ := gen.Generate(GenerateParams{TournamentID: "tour", Teams: teams})
	return &models.Tournament{
		ID:             "tour",
		Format:         models.FormatSingleElimination,
		Status:         models.TournamentStatusActive,
		PointsPerMatch: 21,
		Teams:          teams,
		Bracket:        res.Bracket,
	}
}

func doubleElimTournament(n int) *models.Tournament {
	teams := makeTeams(n)
	gen := &DoubleEliminationGenerator{}
	res, _ := gen.Generate(GenerateParams{TournamentID: "tour", Teams: teams})
	return &models.Tournament{
		ID:             "tour",
		Format:         models.FormatDoubleElimination,
		Status:         models.TournamentStatusActive,
		PointsPerMatch: 21,
		Teams:          teams,
		Elimination:    res.Elimination,
	}
}

func swissTournament(n int) *models.Tournament {
	teams := makeTeams(n)
	gen := &SwissGenerator{}
	res, _ := gen.Generate(GenerateParams{TournamentID: "tour", Teams: teams})
	t := &models.Tournament{
		ID:             "tour",
		Format:         models.FormatSwiss,
		Status:         models.TournamentStatusActive,
		PointsPerMatch: 21,
		Sets:           res.Rounds,
		Teams:          teams,
		Bracket:        res.Bracket,
	}
	creditByes(t, res.Byes)
	return t
}

// creditByes applies generation-time bye wins to the live team records,
// the way the service layer does after generating a bracket.
func creditByes(t *models.Tournament, byes []*models.Match) {
	for _, m := range byes {
		ApplyAdjustments(t, Reconcile(nil, m.Winner, m))
	}
}

func winnerOf(id string) WinnerEdit {
	return WinnerEdit{Winner: &id}
}
