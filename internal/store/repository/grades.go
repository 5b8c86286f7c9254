package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fortuna/gridiron/internal/store"
	"github.com/lib/pq"
)

// GradeRepository handles grade data access
type GradeRepository struct {
	db *store.Database
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *store.Database) *GradeRepository {
	return &GradeRepository{db: db}
}

const gradeColumns = `grade_id, game_id, player_id, letter, notes, admin_notes,
	game_score, next_opponent, next_game_date, created_at, updated_at`

// Upsert inserts or updates the grade for a (game, player) pair
func (r *GradeRepository) Upsert(ctx context.Context, grade *store.Grade) error {
	query := `
		INSERT INTO grades (game_id, player_id, letter, notes, admin_notes,
			game_score, next_opponent, next_game_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (game_id, player_id) DO UPDATE SET
			letter = EXCLUDED.letter,
			notes = EXCLUDED.notes,
			admin_notes = EXCLUDED.admin_notes,
			game_score = EXCLUDED.game_score,
			next_opponent = EXCLUDED.next_opponent,
			next_game_date = EXCLUDED.next_game_date,
			updated_at = NOW()
		RETURNING grade_id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		grade.GameID, grade.PlayerID, grade.Letter, grade.Notes, grade.AdminNotes,
		grade.GameScore, grade.NextOpponent, grade.NextGameDate,
	).Scan(&grade.GradeID)

	if err != nil {
		return fmt.Errorf("upserting grade: %w", err)
	}

	return nil
}

// GetForGames returns all grades across a set of games in one query
func (r *GradeRepository) GetForGames(ctx context.Context, gameIDs []int) ([]*store.Grade, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + gradeColumns + ` FROM grades WHERE game_id = ANY($1)`

	rows, err := r.db.DB().QueryContext(ctx, query, pq.Array(gameIDs))
	if err != nil {
		return nil, fmt.Errorf("querying grades: %w", err)
	}
	defer rows.Close()

	return r.scanGrades(rows)
}

// LeaderboardRow is a player's appearance in one game with the grade letter
// attached when a grade exists.
type LeaderboardRow struct {
	PlayerID   int
	PlayerName string
	GameID     int
	Letter     sql.NullString
}

// GetLeaderboardRows returns one row per (player, game) appearance in the
// date range, left-joined with grades so ungraded games still qualify a
// player for the leaderboard.
func (r *GradeRepository) GetLeaderboardRows(ctx context.Context, start, end time.Time) ([]*LeaderboardRow, error) {
	query := `
		SELECT gp.player_id, p.full_name, g.game_id, gr.letter
		FROM game_players gp
		JOIN games g ON g.game_id = gp.game_id
		JOIN players p ON p.player_id = gp.player_id
		LEFT JOIN grades gr ON gr.game_id = gp.game_id AND gr.player_id = gp.player_id
		WHERE g.game_date >= $1 AND g.game_date <= $2
		ORDER BY gp.player_id, g.game_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying leaderboard rows: %w", err)
	}
	defer rows.Close()

	var all []*LeaderboardRow
	for rows.Next() {
		row := &LeaderboardRow{}
		if err := rows.Scan(&row.PlayerID, &row.PlayerName, &row.GameID, &row.Letter); err != nil {
			return nil, fmt.Errorf("scanning leaderboard row: %w", err)
		}
		all = append(all, row)
	}

	return all, rows.Err()
}

// scanGrades scans multiple grade rows
func (r *GradeRepository) scanGrades(rows *sql.Rows) ([]*store.Grade, error) {
	var grades []*store.Grade
	for rows.Next() {
		grade := &store.Grade{}
		err := rows.Scan(
			&grade.GradeID, &grade.GameID, &grade.PlayerID, &grade.Letter,
			&grade.Notes, &grade.AdminNotes, &grade.GameScore,
			&grade.NextOpponent, &grade.NextGameDate,
			&grade.CreatedAt, &grade.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning grade: %w", err)
		}
		grades = append(grades, grade)
	}

	return grades, rows.Err()
}
