package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/smashscore/smashscore/brackets"
	"github.com/smashscore/smashscore/models"
	"github.com/smashscore/smashscore/repositories"
)

// MatchEditRequest is one scoring action as submitted by a client:
// which field of the match to change and its new value. Value is raw
// JSON because the winner field takes a string or null while the score
// fields take a number.
type MatchEditRequest struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

type MatchService interface {
	ApplyEdit(ctx context.Context, tournamentID, matchID string, req MatchEditRequest) (*MatchEditResult, error)
}

// MatchEditResult is what a scoring action changed.
type MatchEditResult struct {
	Tournament *models.Tournament `json:"tournament"`
	Match      *models.Match      `json:"match"`
	NewRound   []*models.Match    `json:"newRound,omitempty"`
	Completed  bool               `json:"completed"`
}

type matchService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	playerRepo     repositories.PlayerRepository
	logger         *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:             db,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		logger:         logger,
	}
}

// ApplyEdit runs one scoring action end to end: load the tournament,
// mutate the bracket in memory, then persist the re-serialized bracket
// and every counter adjustment in a single transaction. On persistence
// failure the in-memory state is discarded and the caller should
// refetch.
func (s *matchService) ApplyEdit(ctx context.Context, tournamentID, matchID string, req MatchEditRequest) (*MatchEditResult, error) {
	edit, err := parseMatchEdit(req)
	if err != nil {
		return nil, err
	}

	tournament, err := s.loadWithTeams(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if !tournament.HasBracket() {
		return nil, ErrBracketNotGenerated
	}

	outcome, err := brackets.ApplyMatchEdit(tournament, matchID, edit)
	if err != nil {
		switch {
		case errors.Is(err, brackets.ErrMatchNotFound):
			return nil, ErrMatchNotFound
		case errors.Is(err, brackets.ErrUnknownTeam):
			return nil, fmt.Errorf("%w: %v", ErrInvalidEditValue, err)
		case errors.Is(err, brackets.ErrWinnerPropagated):
			return nil, ErrWinnerLocked
		default:
			return nil, err
		}
	}

	if outcome.Completed && tournament.CompletedAt == nil {
		tournament.CompletedAt = completedAtNow()
	} else if !outcome.Completed {
		tournament.CompletedAt = nil
	}

	err = runInTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.tournamentRepo.SaveBracket(ctx, tx, tournament); err != nil {
			return err
		}
		return applyStatAdjustments(ctx, tx, s.teamRepo, s.playerRepo, outcome.Adjustments)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "match edit persistence failed",
			slog.String("tournament_id", tournamentID),
			slog.String("match_id", matchID),
			slog.String("field", req.Field),
			slog.String("value", string(req.Value)),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to persist match edit: %w", err)
	}

	s.logger.InfoContext(ctx, "match edit applied",
		slog.String("tournament_id", tournamentID),
		slog.String("match_id", matchID),
		slog.String("field", req.Field),
		slog.Int("adjustments", len(outcome.Adjustments)),
		slog.Bool("completed", outcome.Completed),
	)

	return &MatchEditResult{
		Tournament: tournament,
		Match:      outcome.Match,
		NewRound:   outcome.NewRound,
		Completed:  outcome.Completed,
	}, nil
}

// parseMatchEdit converts the wire representation into a typed edit.
func parseMatchEdit(req MatchEditRequest) (brackets.MatchEdit, error) {
	switch req.Field {
	case "team1Score", "team2Score":
		var value int
		if err := json.Unmarshal(req.Value, &value); err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer score", ErrInvalidEditValue, string(req.Value))
		}
		side := brackets.Team1Side
		if req.Field == "team2Score" {
			side = brackets.Team2Side
		}
		return brackets.ScoreEdit{Side: side, Value: value}, nil
	case "winner":
		var winner *string
		if err := json.Unmarshal(req.Value, &winner); err != nil {
			return nil, fmt.Errorf("%w: winner must be a team id or null", ErrInvalidEditValue)
		}
		return brackets.WinnerEdit{Winner: winner}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidEditField, req.Field)
	}
}

func (s *matchService) loadWithTeams(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	tournament.Teams = teams
	return tournament, nil
}
