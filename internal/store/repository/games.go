package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fortuna/gridiron/internal/store"
	"github.com/lib/pq"
)

// GameRepository handles game data access
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

const gameColumns = `game_id, opponent, game_date, level, created_at, updated_at`

// GetByID finds a game by ID
func (r *GameRepository) GetByID(ctx context.Context, gameID int) (*store.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_id = $1`

	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query, gameID).Scan(
		&game.GameID, &game.Opponent, &game.GameDate, &game.Level,
		&game.CreatedAt, &game.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}

	return game, nil
}

// GetByDate returns all games on a specific date
func (r *GameRepository) GetByDate(ctx context.Context, date time.Time) ([]*store.Game, error) {
	startOfDay := date.Truncate(24 * time.Hour)
	endOfDay := startOfDay.Add(24 * time.Hour)

	query := `SELECT ` + gameColumns + `
		FROM games
		WHERE game_date >= $1 AND game_date < $2
		ORDER BY game_date`

	rows, err := r.db.DB().QueryContext(ctx, query, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// PlayerGame pairs a player with one of their games, the unit the weekly
// report builder joins against.
type PlayerGame struct {
	PlayerID int
	Game     *store.Game
}

// GetPlayerGamesInRange returns every (player, game) appearance for the
// given players with a game date inside [start, end], most recent first.
// One query across all players in scope rather than a round trip each.
func (r *GameRepository) GetPlayerGamesInRange(ctx context.Context, playerIDs []int, start, end time.Time) ([]*PlayerGame, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT gp.player_id, g.game_id, g.opponent, g.game_date, g.level,
			g.created_at, g.updated_at
		FROM game_players gp
		JOIN games g ON g.game_id = gp.game_id
		WHERE gp.player_id = ANY($1)
		  AND g.game_date >= $2 AND g.game_date <= $3
		ORDER BY g.game_date DESC, g.game_id DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, pq.Array(playerIDs), start, end)
	if err != nil {
		return nil, fmt.Errorf("querying player games: %w", err)
	}
	defer rows.Close()

	var appearances []*PlayerGame
	for rows.Next() {
		game := &store.Game{}
		pg := &PlayerGame{Game: game}
		err := rows.Scan(
			&pg.PlayerID, &game.GameID, &game.Opponent, &game.GameDate, &game.Level,
			&game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning player game: %w", err)
		}
		appearances = append(appearances, pg)
	}

	return appearances, rows.Err()
}

// Create inserts a new game
func (r *GameRepository) Create(ctx context.Context, game *store.Game) error {
	query := `
		INSERT INTO games (opponent, game_date, level)
		VALUES ($1, $2, $3)
		RETURNING game_id, created_at, updated_at
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		game.Opponent, game.GameDate, game.Level,
	).Scan(&game.GameID, &game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		return fmt.Errorf("inserting game: %w", err)
	}

	return nil
}

// LinkPlayer records that a player appeared in a game. Re-linking the same
// pair is a no-op.
func (r *GameRepository) LinkPlayer(ctx context.Context, gameID, playerID int) error {
	query := `
		INSERT INTO game_players (game_id, player_id)
		VALUES ($1, $2)
		ON CONFLICT (game_id, player_id) DO NOTHING
	`

	if _, err := r.db.DB().ExecContext(ctx, query, gameID, playerID); err != nil {
		return fmt.Errorf("linking player to game: %w", err)
	}

	return nil
}

// scanGames is a helper to scan multiple game rows
func (r *GameRepository) scanGames(rows *sql.Rows) ([]*store.Game, error) {
	var games []*store.Game
	for rows.Next() {
		game := &store.Game{}
		err := rows.Scan(
			&game.GameID, &game.Opponent, &game.GameDate, &game.Level,
			&game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}
