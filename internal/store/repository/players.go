package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/gridiron/internal/store"
	"github.com/lib/pq"
)

// PlayerRepository handles player data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `player_id, first_name, last_name, full_name,
	position, offense_position, defense_position, school, state, grad_year,
	recruiting_tags, committed_school, committed_date, composite_rating,
	created_at, updated_at`

// GetByID finds a player by ID
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int) (*store.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE player_id = $1`

	player := &store.Player{}
	err := r.db.DB().QueryRowContext(ctx, query, playerID).Scan(
		&player.PlayerID, &player.FirstName, &player.LastName, &player.FullName,
		&player.Position, &player.OffensePosition, &player.DefensePosition,
		&player.School, &player.State, &player.GradYear,
		&player.RecruitingTags, &player.CommittedSchool, &player.CommittedDate,
		&player.CompositeRating, &player.CreatedAt, &player.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return player, nil
}

// Search returns players matching a name fragment (case-insensitive)
func (r *PlayerRepository) Search(ctx context.Context, name string) ([]*store.Player, error) {
	query := `SELECT ` + playerColumns + `
		FROM players
		WHERE full_name ILIKE $1
		ORDER BY full_name
		LIMIT 50`

	rows, err := r.db.DB().QueryContext(ctx, query, "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	return r.scanPlayers(rows)
}

// GetAll returns all players
func (r *PlayerRepository) GetAll(ctx context.Context) ([]*store.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY full_name`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	return r.scanPlayers(rows)
}

// GetTagged returns all players carrying at least one recruiting-status tag,
// the input set for recruit synchronization.
func (r *PlayerRepository) GetTagged(ctx context.Context) ([]*store.Player, error) {
	query := `SELECT ` + playerColumns + `
		FROM players
		WHERE cardinality(recruiting_tags) > 0
		ORDER BY player_id`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying tagged players: %w", err)
	}
	defer rows.Close()

	return r.scanPlayers(rows)
}

// Create inserts a new player
func (r *PlayerRepository) Create(ctx context.Context, player *store.Player) error {
	query := `
		INSERT INTO players (first_name, last_name, full_name, position,
			offense_position, defense_position, school, state, grad_year,
			recruiting_tags, committed_school, committed_date, composite_rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING player_id, created_at, updated_at
	`

	if player.RecruitingTags == nil {
		player.RecruitingTags = pq.StringArray{}
	}

	err := r.db.DB().QueryRowContext(ctx, query,
		player.FirstName, player.LastName, player.FullName, player.Position,
		player.OffensePosition, player.DefensePosition, player.School, player.State,
		player.GradYear, player.RecruitingTags, player.CommittedSchool,
		player.CommittedDate, player.CompositeRating,
	).Scan(&player.PlayerID, &player.CreatedAt, &player.UpdatedAt)

	if err != nil {
		return fmt.Errorf("inserting player: %w", err)
	}

	return nil
}

// scanPlayers is a helper to scan multiple player rows
func (r *PlayerRepository) scanPlayers(rows *sql.Rows) ([]*store.Player, error) {
	var players []*store.Player
	for rows.Next() {
		player := &store.Player{}
		err := rows.Scan(
			&player.PlayerID, &player.FirstName, &player.LastName, &player.FullName,
			&player.Position, &player.OffensePosition, &player.DefensePosition,
			&player.School, &player.State, &player.GradYear,
			&player.RecruitingTags, &player.CommittedSchool, &player.CommittedDate,
			&player.CompositeRating, &player.CreatedAt, &player.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, player)
	}

	return players, rows.Err()
}
