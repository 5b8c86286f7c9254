package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/gridiron/internal/store"
)

// RecruitRepository handles recruit tracking record access
type RecruitRepository struct {
	db *store.Database
}

// NewRecruitRepository creates a new recruit repository
func NewRecruitRepository(db *store.Database) *RecruitRepository {
	return &RecruitRepository{db: db}
}

const recruitColumns = `recruit_id, player_id, name, position, side_of_ball,
	status, coach, committed_school, committed_date, created_at, updated_at`

// GetByID finds a recruit by ID
func (r *RecruitRepository) GetByID(ctx context.Context, recruitID int) (*store.Recruit, error) {
	query := `SELECT ` + recruitColumns + ` FROM recruits WHERE recruit_id = $1`

	recruit := &store.Recruit{}
	err := r.db.DB().QueryRowContext(ctx, query, recruitID).Scan(
		&recruit.RecruitID, &recruit.PlayerID, &recruit.Name, &recruit.Position,
		&recruit.SideOfBall, &recruit.Status, &recruit.Coach,
		&recruit.CommittedSchool, &recruit.CommittedDate,
		&recruit.CreatedAt, &recruit.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying recruit: %w", err)
	}

	return recruit, nil
}

// GetAll returns all recruit tracking records ordered for the dossier view:
// side of ball, then position, then name.
func (r *RecruitRepository) GetAll(ctx context.Context) ([]*store.Recruit, error) {
	query := `SELECT ` + recruitColumns + `
		FROM recruits
		ORDER BY side_of_ball NULLS LAST, position NULLS LAST, name`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying recruits: %w", err)
	}
	defer rows.Close()

	return r.scanRecruits(rows)
}

// GetLinked returns all recruits with a linked player, in dossier order
func (r *RecruitRepository) GetLinked(ctx context.Context) ([]*store.Recruit, error) {
	query := `SELECT ` + recruitColumns + `
		FROM recruits
		WHERE player_id IS NOT NULL
		ORDER BY side_of_ball NULLS LAST, position NULLS LAST, name`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying linked recruits: %w", err)
	}
	defer rows.Close()

	return r.scanRecruits(rows)
}

// Insert creates a new recruit tracking record. When the record links a
// player and another writer created that link first, the insert is a no-op.
func (r *RecruitRepository) Insert(ctx context.Context, recruit *store.Recruit) error {
	query := `
		INSERT INTO recruits (player_id, name, position, side_of_ball, status,
			coach, committed_school, committed_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (player_id) WHERE player_id IS NOT NULL DO NOTHING
		RETURNING recruit_id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		recruit.PlayerID, recruit.Name, recruit.Position, recruit.SideOfBall,
		recruit.Status, recruit.Coach, recruit.CommittedSchool, recruit.CommittedDate,
	).Scan(&recruit.RecruitID)

	if err == sql.ErrNoRows {
		// First writer won; nothing to do.
		return nil
	}
	if err != nil {
		return fmt.Errorf("inserting recruit: %w", err)
	}

	return nil
}

// UpdateSyncFields refreshes only the fields synchronization owns: status
// and committed school. Everything else on the record is a manual edit and
// stays as stored.
func (r *RecruitRepository) UpdateSyncFields(ctx context.Context, recruitID int, status string, committedSchool sql.NullString) error {
	query := `
		UPDATE recruits
		SET status = $2, committed_school = $3, updated_at = NOW()
		WHERE recruit_id = $1
	`

	if _, err := r.db.DB().ExecContext(ctx, query, recruitID, status, committedSchool); err != nil {
		return fmt.Errorf("updating recruit sync fields: %w", err)
	}

	return nil
}

// scanRecruits scans multiple recruit rows
func (r *RecruitRepository) scanRecruits(rows *sql.Rows) ([]*store.Recruit, error) {
	var recruits []*store.Recruit
	for rows.Next() {
		recruit := &store.Recruit{}
		err := rows.Scan(
			&recruit.RecruitID, &recruit.PlayerID, &recruit.Name, &recruit.Position,
			&recruit.SideOfBall, &recruit.Status, &recruit.Coach,
			&recruit.CommittedSchool, &recruit.CommittedDate,
			&recruit.CreatedAt, &recruit.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning recruit: %w", err)
		}
		recruits = append(recruits, recruit)
	}

	return recruits, rows.Err()
}
