package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smashscore/smashscore/models"
)

var ErrTeamNotFound = errors.New("team not found")

// TeamRepository stores the per-tournament team rows. Teams are frozen
// at tournament creation; only their counters and logo change later.
type TeamRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, tournamentID string, teams []models.Team) error
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Team, error)
	GetByID(ctx context.Context, id string) (*models.Team, error)
	AdjustStat(ctx context.Context, exec SQLExecutor, id string, field string, delta int) error
	UpdateLogoKey(ctx context.Context, id string, logoKey *string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) CreateBatch(ctx context.Context, exec SQLExecutor, tournamentID string, teams []models.Team) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO teams (id, tournament_id, seed, name, players, wins, losses)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for i, team := range teams {
		players, err := json.Marshal(team.Players)
		if err != nil {
			return fmt.Errorf("failed to marshal players of team %s: %w", team.ID, err)
		}
		if _, err := executor.ExecContext(ctx, query,
			team.ID, tournamentID, i+1, team.Name, players, team.Wins, team.Losses,
		); err != nil {
			return fmt.Errorf("failed to insert team %s: %w", team.ID, err)
		}
	}
	return nil
}

// ListByTournament returns the teams in seed order, which is the order
// bracket generation consumes them in.
func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Team, error) {
	query := `
		SELECT id, name, players, wins, losses, logo_key
		FROM teams
		WHERE tournament_id = $1
		ORDER BY seed ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `SELECT id, name, players, wins, losses, logo_key FROM teams WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	team, err := scanTeamRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) AdjustStat(ctx context.Context, exec SQLExecutor, id string, field string, delta int) error {
	executor := r.getExecutor(exec)

	var query string
	switch field {
	case "wins":
		query = `UPDATE teams SET wins = GREATEST(wins + $1, 0) WHERE id = $2`
	case "losses":
		query = `UPDATE teams SET losses = GREATEST(losses + $1, 0) WHERE id = $2`
	default:
		return fmt.Errorf("unknown team stat field %q", field)
	}

	result, err := executor.ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("failed to adjust team %s: %w", field, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update team logo key: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTeam(rows *sql.Rows) (*models.Team, error) {
	return scanTeamRow(rows)
}

func scanTeamRow(row rowScanner) (*models.Team, error) {
	team := &models.Team{}
	var players []byte
	if err := row.Scan(&team.ID, &team.Name, &players, &team.Wins, &team.Losses, &team.LogoKey); err != nil {
		return nil, err
	}
	if len(players) > 0 {
		if err := json.Unmarshal(players, &team.Players); err != nil {
			return nil, fmt.Errorf("failed to unmarshal players of team %s: %w", team.ID, err)
		}
	}
	return team, nil
}
