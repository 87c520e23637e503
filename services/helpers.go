package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/smashscore/smashscore/brackets"
	"github.com/smashscore/smashscore/models"
	"github.com/smashscore/smashscore/repositories"
	"github.com/smashscore/smashscore/storage"
)

// runInTx wraps fn in a transaction, rolling back on error or panic.
func runInTx(ctx context.Context, db *sql.DB, logger *slog.Logger, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorContext(ctx, "transaction rollback failed",
					slog.Any("error", rbErr), slog.Any("cause", txErr))
			}
		}
	}()

	if txErr = fn(tx); txErr != nil {
		return txErr
	}
	if cErr := tx.Commit(); cErr != nil {
		return fmt.Errorf("failed to commit transaction: %w", cErr)
	}
	return nil
}

// applyStatAdjustments persists counter deltas: team-level entries go
// to the teams table, player-level entries to the career registry.
func applyStatAdjustments(
	ctx context.Context,
	tx *sql.Tx,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	adjustments []brackets.StatAdjustment,
) error {
	for _, adj := range adjustments {
		if adj.PlayerID != "" {
			if err := playerRepo.AdjustStat(ctx, tx, adj.PlayerID, string(adj.Field), adj.Delta); err != nil {
				return fmt.Errorf("failed to adjust player %s: %w", adj.PlayerID, err)
			}
			continue
		}
		if err := teamRepo.AdjustStat(ctx, tx, adj.TeamID, string(adj.Field), adj.Delta); err != nil {
			return fmt.Errorf("failed to adjust team %s: %w", adj.TeamID, err)
		}
	}
	return nil
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 || len(trimmed) > 30 {
		return ErrNameInvalid
	}
	return nil
}

func validateTournamentName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 3 || len(trimmed) > 50 {
		return ErrTournamentNameInvalid
	}
	return nil
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team == nil || uploader == nil || team.LogoKey == nil || *team.LogoKey == "" {
		return
	}
	if url := uploader.GetPublicURL(*team.LogoKey); url != "" {
		team.LogoURL = &url
	}
}

func populateTeamListLogoURLs(teams []models.Team, uploader storage.FileUploader) {
	for i := range teams {
		populateTeamLogoURL(&teams[i], uploader)
	}
}

// GetExtensionFromContentType maps an uploaded image's content type to
// a storage key extension.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("unsupported image content type: %q", contentType)
	}
}
