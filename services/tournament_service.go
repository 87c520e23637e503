package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/smashscore/smashscore/brackets"
	"github.com/smashscore/smashscore/models"
	"github.com/smashscore/smashscore/repositories"
	"github.com/smashscore/smashscore/storage"
	"github.com/smashscore/smashscore/utils"
)

const defaultPointsPerMatch = 21

type CreateTournamentInput struct {
	Name           string                  `json:"name"`
	Format         models.TournamentFormat `json:"format"`
	Mode           models.TournamentMode   `json:"mode"`
	PlayerNames    []string                `json:"players"`
	Sets           int                     `json:"sets,omitempty"`
	Rounds         int                     `json:"rounds,omitempty"`
	PointsPerMatch int                     `json:"pointsPerMatch,omitempty"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	Delete(ctx context.Context, id string) error
	Standings(ctx context.Context, id string) ([]brackets.Standing, error)
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	playerRepo     repositories.PlayerRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

// Create validates the input, resolves or registers the named players,
// shuffles them into teams of the mode's size and stores the tournament
// with its frozen roster. The bracket itself is generated lazily on
// first view.
func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if err := validateTournamentName(input.Name); err != nil {
		return nil, err
	}
	if !models.ValidFormat(input.Format) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, input.Format)
	}
	if input.Mode != models.ModeSingles && input.Mode != models.ModeDoubles {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, input.Mode)
	}

	teamSize := input.Mode.TeamSize()
	if len(input.PlayerNames) < 2*teamSize || len(input.PlayerNames)%teamSize != 0 {
		return nil, fmt.Errorf("%w: got %d players for %s", ErrNotEnoughPlayers, len(input.PlayerNames), input.Mode)
	}

	players, err := s.resolvePlayers(ctx, input.PlayerNames)
	if err != nil {
		return nil, err
	}

	teams := buildTeams(players, teamSize)

	pointsPerMatch := input.PointsPerMatch
	if pointsPerMatch <= 0 {
		pointsPerMatch = defaultPointsPerMatch
	}
	sets := input.Sets
	if input.Format == models.FormatSwiss {
		// Swiss stores its round count in Sets; zero means it is
		// derived from the team count at generation time.
		sets = input.Rounds
	} else if sets < 1 {
		sets = 1
	}

	tournament := &models.Tournament{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(input.Name),
		Format:         input.Format,
		Mode:           input.Mode,
		Sets:           sets,
		Teams:          teams,
		Status:         models.TournamentStatusSetup,
		PointsPerMatch: pointsPerMatch,
	}

	err = runInTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.tournamentRepo.Create(ctx, tx, tournament); err != nil {
			return err
		}
		return s.teamRepo.CreateBatch(ctx, tx, tournament.ID, teams)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created",
		slog.String("tournament_id", tournament.ID),
		slog.String("format", string(tournament.Format)),
		slog.Int("teams", len(teams)),
	)
	return tournament, nil
}

// resolvePlayers looks up each name in the registry and registers the
// ones that do not exist yet.
func (s *tournamentService) resolvePlayers(ctx context.Context, names []string) ([]models.Player, error) {
	players := make([]models.Player, 0, len(names))
	for _, name := range names {
		if err := validateName(name); err != nil {
			return nil, fmt.Errorf("%w: player %q", err, name)
		}

		player, err := s.playerRepo.GetByName(ctx, strings.TrimSpace(name))
		if err == nil {
			players = append(players, *player)
			continue
		}
		if !errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, err
		}

		created := &models.Player{ID: uuid.NewString(), Name: strings.TrimSpace(name)}
		if err := s.playerRepo.Create(ctx, created); err != nil {
			return nil, err
		}
		players = append(players, *created)
	}
	return players, nil
}

// buildTeams shuffles the players and groups them into teams. Team
// counters start at zero regardless of the players' career totals.
func buildTeams(players []models.Player, teamSize int) []models.Team {
	shuffled := make([]models.Player, len(players))
	copy(shuffled, players)
	utils.Shuffle(shuffled)

	teams := make([]models.Team, 0, len(shuffled)/teamSize)
	for i := 0; i+teamSize <= len(shuffled); i += teamSize {
		members := make([]models.Player, teamSize)
		copy(members, shuffled[i:i+teamSize])

		names := make([]string, teamSize)
		for j, p := range members {
			names[j] = p.Name
		}

		teams = append(teams, models.Team{
			ID:      uuid.NewString(),
			Name:    strings.Join(names, " / "),
			Players: members,
		})
	}
	return teams
}

// GetByID loads the tournament with its teams and generates the bracket
// on first view.
func (s *tournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.loadWithTeams(ctx, id)
	if err != nil {
		return nil, err
	}

	if !tournament.HasBracket() && tournament.Status != models.TournamentStatusCompleted {
		if err := s.generateBracket(ctx, tournament); err != nil {
			return nil, err
		}
	}

	populateTeamListLogoURLs(tournament.Teams, s.uploader)
	return tournament, nil
}

func (s *tournamentService) loadWithTeams(ctx context.Context, id string) (*models.Tournament, error) {
	var (
		tournament *models.Tournament
		teams      []models.Team
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournament, err = s.tournamentRepo.GetByID(gctx, id)
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tournament.Teams = teams
	return tournament, nil
}

// generateBracket runs the format's generator, credits generation-time
// byes and persists the bracket together with the counter updates in a
// single transaction.
func (s *tournamentService) generateBracket(ctx context.Context, t *models.Tournament) error {
	generator, err := brackets.ForFormat(t.Format)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, t.Format)
	}

	result, err := generator.Generate(brackets.GenerateParams{
		TournamentID: t.ID,
		Teams:        t.Teams,
		Sets:         t.Sets,
		Rounds:       t.Sets,
	})
	if err != nil {
		return fmt.Errorf("failed to generate bracket: %w", err)
	}

	t.Bracket = result.Bracket
	t.Elimination = result.Elimination
	t.Status = models.TournamentStatusActive
	t.CurrentRound = 1
	if t.Format == models.FormatSwiss {
		t.Sets = result.Rounds
	}

	var adjustments []brackets.StatAdjustment
	for _, bye := range result.Byes {
		adj := brackets.Reconcile(nil, bye.Winner, bye)
		brackets.ApplyAdjustments(t, adj)
		adjustments = append(adjustments, adj...)
	}

	err = runInTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.tournamentRepo.SaveBracket(ctx, tx, t); err != nil {
			return err
		}
		return s.applyStatAdjustments(ctx, tx, adjustments)
	})
	if err != nil {
		return fmt.Errorf("failed to persist generated bracket: %w", err)
	}

	s.logger.InfoContext(ctx, "bracket generated",
		slog.String("tournament_id", t.ID),
		slog.String("format", string(t.Format)),
		slog.Int("byes", len(result.Byes)),
	)
	return nil
}

func (s *tournamentService) applyStatAdjustments(ctx context.Context, tx *sql.Tx, adjustments []brackets.StatAdjustment) error {
	return applyStatAdjustments(ctx, tx, s.teamRepo, s.playerRepo, adjustments)
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx, filter)
}

func (s *tournamentService) Delete(ctx context.Context, id string) error {
	err := s.tournamentRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return ErrTournamentNotFound
	}
	return err
}

// Standings ranks the tournament's teams by their current counters.
func (s *tournamentService) Standings(ctx context.Context, id string) ([]brackets.Standing, error) {
	tournament, err := s.loadWithTeams(ctx, id)
	if err != nil {
		return nil, err
	}
	return brackets.Standings(tournament), nil
}

// completedAtNow is split out so the match service can stamp completion
// consistently.
func completedAtNow() *time.Time {
	now := time.Now().UTC()
	return &now
}
