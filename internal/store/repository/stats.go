package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fortuna/gridiron/internal/store"
	"github.com/lib/pq"
)

// StatEventRepository handles stat event data access
type StatEventRepository struct {
	db *store.Database
}

// NewStatEventRepository creates a new stat event repository
func NewStatEventRepository(db *store.Database) *StatEventRepository {
	return &StatEventRepository{db: db}
}

// Insert records one observed stat event
func (r *StatEventRepository) Insert(ctx context.Context, event *store.StatEvent) error {
	query := `
		INSERT INTO stat_events (game_id, player_id, stat_type, value)
		VALUES ($1, $2, $3, $4)
		RETURNING event_id, created_at
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		event.GameID, event.PlayerID, event.StatType, event.Value,
	).Scan(&event.EventID, &event.CreatedAt)

	if err != nil {
		return fmt.Errorf("inserting stat event: %w", err)
	}

	return nil
}

// GetForGamePlayer returns all stat events for one player in one game
func (r *StatEventRepository) GetForGamePlayer(ctx context.Context, gameID, playerID int) ([]*store.StatEvent, error) {
	query := `
		SELECT event_id, game_id, player_id, stat_type, value, created_at
		FROM stat_events
		WHERE game_id = $1 AND player_id = $2
		ORDER BY event_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID, playerID)
	if err != nil {
		return nil, fmt.Errorf("querying stat events: %w", err)
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

// GetForGames returns all stat events across a set of games in one query.
// Callers regroup by (game, player) in memory.
func (r *StatEventRepository) GetForGames(ctx context.Context, gameIDs []int) ([]*store.StatEvent, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT event_id, game_id, player_id, stat_type, value, created_at
		FROM stat_events
		WHERE game_id = ANY($1)
		ORDER BY event_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, pq.Array(gameIDs))
	if err != nil {
		return nil, fmt.Errorf("querying stat events: %w", err)
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

// WeekStatRow is one stat event joined with its game, player, and any grade,
// the raw material for the top-performances calculation.
type WeekStatRow struct {
	GameID     int
	PlayerID   int
	StatType   string
	Value      float64
	Opponent   string
	GameDate   time.Time
	PlayerName string
	Position   sql.NullString
	School     sql.NullString
	Letter     sql.NullString
	GradeNotes sql.NullString
}

// GetWeekStatRows returns every stat event for games inside [start, end]
// joined with game, player, and grade context in a single query.
func (r *StatEventRepository) GetWeekStatRows(ctx context.Context, start, end time.Time) ([]*WeekStatRow, error) {
	query := `
		SELECT se.game_id, se.player_id, se.stat_type, se.value,
			g.opponent, g.game_date,
			p.full_name, p.position, p.school,
			gr.letter, gr.notes
		FROM stat_events se
		JOIN games g ON g.game_id = se.game_id
		JOIN players p ON p.player_id = se.player_id
		LEFT JOIN grades gr ON gr.game_id = se.game_id AND gr.player_id = se.player_id
		WHERE g.game_date >= $1 AND g.game_date <= $2
		ORDER BY se.game_id, se.player_id, se.event_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying week stat rows: %w", err)
	}
	defer rows.Close()

	var all []*WeekStatRow
	for rows.Next() {
		row := &WeekStatRow{}
		err := rows.Scan(
			&row.GameID, &row.PlayerID, &row.StatType, &row.Value,
			&row.Opponent, &row.GameDate,
			&row.PlayerName, &row.Position, &row.School,
			&row.Letter, &row.GradeNotes,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning week stat row: %w", err)
		}
		all = append(all, row)
	}

	return all, rows.Err()
}

// scanEvents scans multiple stat event rows
func (r *StatEventRepository) scanEvents(rows *sql.Rows) ([]*store.StatEvent, error) {
	var events []*store.StatEvent
	for rows.Next() {
		event := &store.StatEvent{}
		err := rows.Scan(
			&event.EventID, &event.GameID, &event.PlayerID,
			&event.StatType, &event.Value, &event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning stat event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
