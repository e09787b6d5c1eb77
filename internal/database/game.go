package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/uno-arcade/uno-service/internal/models"
)

// SavePlayer records a login. No-op without a configured pool.
func SavePlayer(ctx context.Context, user *models.User) error {
	if DB == nil {
		return nil
	}

	q := `INSERT INTO players (id, username, created_at) VALUES ($1, $2, $3)`

	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q, user.ID, user.Username, time.Now().UTC())
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

// GameResult is the durable summary of a finished game.
type GameResult struct {
	GameID      uuid.UUID
	Name        string
	WinnerID    uuid.UUID
	PlayerCount int
	FinishedAt  time.Time
}

// SaveGameResult records the outcome of a finished game. No-op without a
// configured pool.
func SaveGameResult(ctx context.Context, res GameResult) error {
	if DB == nil {
		return nil
	}

	q := `INSERT INTO game_results (game_id, name, winner_id, player_count, finished_at)
	      VALUES ($1, $2, $3, $4, $5)`

	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q, res.GameID, res.Name, res.WinnerID, res.PlayerCount, res.FinishedAt)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to insert game result: %w", err)
	}
	return nil
}
