package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fortuna/gridiron/internal/store"
	"github.com/lib/pq"
)

// WeeklyReportRepository handles weekly report data access
type WeeklyReportRepository struct {
	db *store.Database
}

// NewWeeklyReportRepository creates a new weekly report repository
func NewWeeklyReportRepository(db *store.Database) *WeeklyReportRepository {
	return &WeeklyReportRepository{db: db}
}

const reportColumns = `report_id, recruit_id, week_start, game_id, opponent,
	result, score, next_opponent, next_game_date, stats, other_stats, notes,
	created_at, updated_at`

// GetByWeek returns all reports for a week keyed by recruit ID
func (r *WeeklyReportRepository) GetByWeek(ctx context.Context, weekStart time.Time) (map[int]*store.WeeklyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM weekly_reports WHERE week_start = $1`

	rows, err := r.db.DB().QueryContext(ctx, query, weekStart)
	if err != nil {
		return nil, fmt.Errorf("querying weekly reports: %w", err)
	}
	defer rows.Close()

	reports, err := r.scanReports(rows)
	if err != nil {
		return nil, err
	}

	byRecruit := make(map[int]*store.WeeklyReport, len(reports))
	for _, report := range reports {
		byRecruit[report.RecruitID] = report
	}
	return byRecruit, nil
}

// GetByRecruitWeek returns one recruit's report for a week
func (r *WeeklyReportRepository) GetByRecruitWeek(ctx context.Context, recruitID int, weekStart time.Time) (*store.WeeklyReport, error) {
	query := `SELECT ` + reportColumns + `
		FROM weekly_reports
		WHERE recruit_id = $1 AND week_start = $2`

	report := &store.WeeklyReport{}
	err := r.db.DB().QueryRowContext(ctx, query, recruitID, weekStart).Scan(
		&report.ReportID, &report.RecruitID, &report.WeekStart, &report.GameID,
		&report.Opponent, &report.Result, &report.Score, &report.NextOpponent,
		&report.NextGameDate, &report.Stats, &report.OtherStats, &report.Notes,
		&report.CreatedAt, &report.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying weekly report: %w", err)
	}

	return report, nil
}

// InsertIfAbsent inserts a computed report row. A concurrent duplicate for
// the same (recruit, week) is a harmless no-op: first writer wins.
func (r *WeeklyReportRepository) InsertIfAbsent(ctx context.Context, report *store.WeeklyReport) error {
	query := `
		INSERT INTO weekly_reports (recruit_id, week_start, game_id, opponent,
			result, score, next_opponent, next_game_date, stats, other_stats, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (recruit_id, week_start) DO NOTHING
	`

	stats := report.Stats
	if len(stats) == 0 {
		stats = []byte(`{}`)
	}
	other := report.OtherStats
	if other == nil {
		other = pq.StringArray{}
	}

	_, err := r.db.DB().ExecContext(ctx, query,
		report.RecruitID, report.WeekStart, report.GameID, report.Opponent,
		report.Result, report.Score, report.NextOpponent, report.NextGameDate,
		stats, other, report.Notes,
	)
	if err != nil {
		return fmt.Errorf("inserting weekly report: %w", err)
	}

	return nil
}

// UpdateIfStatsEmpty refreshes the game-derived fields of an existing row,
// guarded at the store so a row that gained stats since it was read is left
// alone. Once stats are non-empty the row belongs to a human editor.
func (r *WeeklyReportRepository) UpdateIfStatsEmpty(ctx context.Context, report *store.WeeklyReport) error {
	query := `
		UPDATE weekly_reports
		SET game_id = $3, opponent = $4, result = $5, score = $6,
			next_opponent = $7, next_game_date = $8, stats = $9,
			other_stats = $10, notes = $11, updated_at = NOW()
		WHERE recruit_id = $1 AND week_start = $2
		  AND stats = '{}'::jsonb
	`

	stats := report.Stats
	if len(stats) == 0 {
		stats = []byte(`{}`)
	}
	other := report.OtherStats
	if other == nil {
		other = pq.StringArray{}
	}

	_, err := r.db.DB().ExecContext(ctx, query,
		report.RecruitID, report.WeekStart, report.GameID, report.Opponent,
		report.Result, report.Score, report.NextOpponent, report.NextGameDate,
		stats, other, report.Notes,
	)
	if err != nil {
		return fmt.Errorf("updating weekly report: %w", err)
	}

	return nil
}

// ManualUpsert writes a caller-supplied report, replacing whatever automated
// population stored. The explicit edit path always wins.
func (r *WeeklyReportRepository) ManualUpsert(ctx context.Context, report *store.WeeklyReport) error {
	query := `
		INSERT INTO weekly_reports (recruit_id, week_start, game_id, opponent,
			result, score, next_opponent, next_game_date, stats, other_stats, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (recruit_id, week_start) DO UPDATE SET
			game_id = EXCLUDED.game_id,
			opponent = EXCLUDED.opponent,
			result = EXCLUDED.result,
			score = EXCLUDED.score,
			next_opponent = EXCLUDED.next_opponent,
			next_game_date = EXCLUDED.next_game_date,
			stats = EXCLUDED.stats,
			other_stats = EXCLUDED.other_stats,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING report_id
	`

	stats := report.Stats
	if len(stats) == 0 {
		stats = []byte(`{}`)
	}
	other := report.OtherStats
	if other == nil {
		other = pq.StringArray{}
	}

	err := r.db.DB().QueryRowContext(ctx, query,
		report.RecruitID, report.WeekStart, report.GameID, report.Opponent,
		report.Result, report.Score, report.NextOpponent, report.NextGameDate,
		stats, other, report.Notes,
	).Scan(&report.ReportID)

	if err != nil {
		return fmt.Errorf("upserting weekly report: %w", err)
	}

	return nil
}

// scanReports scans multiple weekly report rows
func (r *WeeklyReportRepository) scanReports(rows *sql.Rows) ([]*store.WeeklyReport, error) {
	var reports []*store.WeeklyReport
	for rows.Next() {
		report := &store.WeeklyReport{}
		err := rows.Scan(
			&report.ReportID, &report.RecruitID, &report.WeekStart, &report.GameID,
			&report.Opponent, &report.Result, &report.Score, &report.NextOpponent,
			&report.NextGameDate, &report.Stats, &report.OtherStats, &report.Notes,
			&report.CreatedAt, &report.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning weekly report: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}
