package store

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Player represents a scouted player
type Player struct {
	PlayerID        int             `json:"player_id" db:"player_id"`
	FirstName       string          `json:"first_name" db:"first_name"`
	LastName        string          `json:"last_name" db:"last_name"`
	FullName        string          `json:"full_name" db:"full_name"`
	Position        sql.NullString  `json:"position,omitempty" db:"position"`
	OffensePosition sql.NullString  `json:"offense_position,omitempty" db:"offense_position"`
	DefensePosition sql.NullString  `json:"defense_position,omitempty" db:"defense_position"`
	School          sql.NullString  `json:"school,omitempty" db:"school"`
	State           sql.NullString  `json:"state,omitempty" db:"state"`
	GradYear        sql.NullInt32   `json:"grad_year,omitempty" db:"grad_year"`
	RecruitingTags  pq.StringArray  `json:"recruiting_tags" db:"recruiting_tags"`
	CommittedSchool sql.NullString  `json:"committed_school,omitempty" db:"committed_school"`
	CommittedDate   sql.NullTime    `json:"committed_date,omitempty" db:"committed_date"`
	CompositeRating sql.NullFloat64 `json:"composite_rating,omitempty" db:"composite_rating"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// Game represents a scouted game
type Game struct {
	GameID    int            `json:"game_id" db:"game_id"`
	Opponent  string         `json:"opponent" db:"opponent"`
	GameDate  time.Time      `json:"game_date" db:"game_date"`
	Level     sql.NullString `json:"level,omitempty" db:"level"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// GamePlayer links a player to a game they appeared in
type GamePlayer struct {
	ID       int `json:"id" db:"id"`
	GameID   int `json:"game_id" db:"game_id"`
	PlayerID int `json:"player_id" db:"player_id"`
}

// StatEvent is one observed occurrence of a labeled action by a player in a
// game. Multiple events may share the same (game, player, stat_type) triple.
type StatEvent struct {
	EventID   int       `json:"event_id" db:"event_id"`
	GameID    int       `json:"game_id" db:"game_id"`
	PlayerID  int       `json:"player_id" db:"player_id"`
	StatType  string    `json:"stat_type" db:"stat_type"`
	Value     float64   `json:"value" db:"value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Grade is a scout's evaluation of a player in a game, at most one per
// (game, player) pair.
type Grade struct {
	GradeID      int            `json:"grade_id" db:"grade_id"`
	GameID       int            `json:"game_id" db:"game_id"`
	PlayerID     int            `json:"player_id" db:"player_id"`
	Letter       sql.NullString `json:"letter,omitempty" db:"letter"`
	Notes        sql.NullString `json:"notes,omitempty" db:"notes"`
	AdminNotes   sql.NullString `json:"admin_notes,omitempty" db:"admin_notes"`
	GameScore    sql.NullString `json:"game_score,omitempty" db:"game_score"`
	NextOpponent sql.NullString `json:"next_opponent,omitempty" db:"next_opponent"`
	NextGameDate sql.NullString `json:"next_game_date,omitempty" db:"next_game_date"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// Recruit is a recruiting pipeline tracking record. PlayerID is null for
// manually entered prospects with no linked player.
type Recruit struct {
	RecruitID       int            `json:"recruit_id" db:"recruit_id"`
	PlayerID        sql.NullInt32  `json:"player_id,omitempty" db:"player_id"`
	Name            string         `json:"name" db:"name"`
	Position        sql.NullString `json:"position,omitempty" db:"position"`
	SideOfBall      sql.NullString `json:"side_of_ball,omitempty" db:"side_of_ball"`
	Status          string         `json:"status" db:"status"`
	Coach           sql.NullString `json:"coach,omitempty" db:"coach"`
	CommittedSchool sql.NullString `json:"committed_school,omitempty" db:"committed_school"`
	CommittedDate   sql.NullTime   `json:"committed_date,omitempty" db:"committed_date"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

// WeeklyReport is the per-recruit, per-week dossier row. Stats holds the
// position-shaped stats object as JSON; once non-empty the row belongs to a
// human editor and automated population must not touch it.
type WeeklyReport struct {
	ReportID     int            `json:"report_id" db:"report_id"`
	RecruitID    int            `json:"recruit_id" db:"recruit_id"`
	WeekStart    time.Time      `json:"week_start" db:"week_start"`
	GameID       sql.NullInt32  `json:"game_id,omitempty" db:"game_id"`
	Opponent     sql.NullString `json:"opponent,omitempty" db:"opponent"`
	Result       sql.NullString `json:"result,omitempty" db:"result"`
	Score        sql.NullString `json:"score,omitempty" db:"score"`
	NextOpponent sql.NullString `json:"next_opponent,omitempty" db:"next_opponent"`
	NextGameDate sql.NullString `json:"next_game_date,omitempty" db:"next_game_date"`
	Stats        []byte         `json:"stats" db:"stats"`
	OtherStats   pq.StringArray `json:"other_stats" db:"other_stats"`
	Notes        sql.NullString `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// HasStats reports whether the report's stats payload is non-empty, which is
// the ownership signal for the merge policy.
func (r *WeeklyReport) HasStats() bool {
	switch string(r.Stats) {
	case "", "{}", "null":
		return false
	}
	return true
}
