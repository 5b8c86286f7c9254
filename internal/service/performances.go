package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fortuna/gridiron/internal/scoring"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// PerformanceService computes top single-game performances and the grade
// leaderboard.
type PerformanceService struct {
	statsRepo *repository.StatEventRepository
	gradeRepo *repository.GradeRepository
}

// NewPerformanceService creates a new performance service
func NewPerformanceService(db *store.Database) *PerformanceService {
	return &PerformanceService{
		statsRepo: repository.NewStatEventRepository(db),
		gradeRepo: repository.NewGradeRepository(db),
	}
}

// Performance is one player's evaluated outing in one game.
type Performance struct {
	Player     PerformancePlayer  `json:"player"`
	Game       PerformanceGame    `json:"game"`
	Grade      string             `json:"grade,omitempty"`
	GradeNotes string             `json:"gradeNotes,omitempty"`
	Stats      map[string]float64 `json:"stats"`
	Scores     PerformanceScores  `json:"scores"`
}

// PerformancePlayer carries the player fields shown on a performance card.
type PerformancePlayer struct {
	PlayerID int    `json:"playerId"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	School   string `json:"school,omitempty"`
}

// PerformanceGame carries the game fields shown on a performance card.
type PerformanceGame struct {
	GameID   int    `json:"gameId"`
	Opponent string `json:"opponent"`
	Date     string `json:"date"`
}

// PerformanceScores breaks the evaluation into its parts: the numeric grade
// (0 when ungraded), the weighted stat score, and the composite the list is
// ranked by.
type PerformanceScores struct {
	Grade     int     `json:"grade"`
	Stats     float64 `json:"stats"`
	Composite float64 `json:"composite"`
}

// TopPerformancesResult is the full top-performances response.
type TopPerformancesResult struct {
	Week           WeekWindow     `json:"week"`
	Performances   []*Performance `json:"performances"`
	TotalEvaluated int            `json:"totalEvaluated"`
}

// TopPerformances returns the highest-composite performances of the current
// calendar week (Sunday–Saturday), truncated to limit.
func (s *PerformanceService) TopPerformances(ctx context.Context, limit int) (*TopPerformancesResult, error) {
	week := currentScoutingWeek(time.Now())

	rows, err := s.statsRepo.GetWeekStatRows(ctx, week.Start, week.End)
	if err != nil {
		return nil, fmt.Errorf("fetching week stats: %w", err)
	}

	performances := buildPerformances(rows)
	total := len(performances)
	if limit > 0 && len(performances) > limit {
		performances = performances[:limit]
	}

	return &TopPerformancesResult{
		Week:           week,
		Performances:   performances,
		TotalEvaluated: total,
	}, nil
}

// buildPerformances groups joined stat rows by (game, player), scores each
// group, and orders the result descending by composite score. Pure: safe to
// call on rows in any order.
func buildPerformances(rows []*repository.WeekStatRow) []*Performance {
	type key struct{ gameID, playerID int }

	groups := make(map[key][]*repository.WeekStatRow)
	var order []key
	for _, row := range rows {
		k := key{row.GameID, row.PlayerID}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], row)
	}

	performances := make([]*Performance, 0, len(order))
	for _, k := range order {
		group := groups[k]
		head := group[0]

		events := make([]scoring.Event, len(group))
		for i, row := range group {
			events[i] = scoring.Event{Type: row.StatType, Value: row.Value}
		}

		statScore := scoring.Score(events)
		grade := 0
		letter := ""
		if head.Letter.Valid {
			letter = head.Letter.String
			grade = scoring.GradeDisplayValue(letter)
		}

		p := &Performance{
			Player: PerformancePlayer{
				PlayerID: head.PlayerID,
				Name:     head.PlayerName,
				Position: head.Position.String,
				School:   head.School.String,
			},
			Game: PerformanceGame{
				GameID:   head.GameID,
				Opponent: head.Opponent,
				Date:     head.GameDate.Format("2006-01-02"),
			},
			Grade:      letter,
			GradeNotes: head.GradeNotes.String,
			Stats:      scoring.Aggregate(events),
			Scores: PerformanceScores{
				Grade:     grade,
				Stats:     statScore,
				Composite: compositeScore(statScore, grade),
			},
		}
		performances = append(performances, p)
	}

	sort.SliceStable(performances, func(i, j int) bool {
		if performances[i].Scores.Composite != performances[j].Scores.Composite {
			return performances[i].Scores.Composite > performances[j].Scores.Composite
		}
		return performances[i].Player.Name < performances[j].Player.Name
	})

	return performances
}

// compositeScore blends the weighted stat score with the scout's grade; a
// top grade is worth ten composite points.
func compositeScore(statScore float64, grade int) float64 {
	return math.Round((statScore+float64(grade)/10)*10) / 10
}
