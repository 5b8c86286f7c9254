package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/recruiting"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// ReportService builds and merges per-week recruiting reports.
type ReportService struct {
	recruitRepo *repository.RecruitRepository
	playerRepo  *repository.PlayerRepository
	gameRepo    *repository.GameRepository
	gradeRepo   *repository.GradeRepository
	statsRepo   *repository.StatEventRepository
	reportRepo  *repository.WeeklyReportRepository
	recruits    *RecruitService
	cache       *cache.RedisCache
}

// NewReportService creates a new report service. The cache is optional; with
// no cache, concurrent builds for the same week proceed unserialized, which
// the merge policy tolerates.
func NewReportService(db *store.Database, redisCache *cache.RedisCache) *ReportService {
	return &ReportService{
		recruitRepo: repository.NewRecruitRepository(db),
		playerRepo:  repository.NewPlayerRepository(db),
		gameRepo:    repository.NewGameRepository(db),
		gradeRepo:   repository.NewGradeRepository(db),
		statsRepo:   repository.NewStatEventRepository(db),
		reportRepo:  repository.NewWeeklyReportRepository(db),
		recruits:    NewRecruitService(db),
		cache:       redisCache,
	}
}

// BuildSummary reports what one build pass did.
type BuildSummary struct {
	Recruits int `json:"recruits"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

// mergeAction is the outcome of the merge policy for one (recruit, week).
type mergeAction int

const (
	mergeInsert mergeAction = iota
	mergeUpdate
	mergeSkip
)

// decideMerge applies the merge policy: no existing row means insert; an
// existing row with stats is human-owned and untouchable; an existing row
// without stats is refreshed only when the computed row brings stats.
func decideMerge(existing *store.WeeklyReport, computedHasStats bool) mergeAction {
	if existing == nil {
		return mergeInsert
	}
	if existing.HasStats() {
		return mergeSkip
	}
	if computedHasStats {
		return mergeUpdate
	}
	return mergeSkip
}

// BuildWeek populates weekly reports for every linked recruit for the week
// starting at weekStart. All upstream data is batch-fetched up front and
// joined in memory; per-row writes go through store-level guards so repeated
// or concurrent builds converge on the same rows.
func (s *ReportService) BuildWeek(ctx context.Context, weekStart time.Time) (*BuildSummary, error) {
	recruits, err := s.recruitRepo.GetLinked(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching recruits: %w", err)
	}

	playerIDs := make([]int, 0, len(recruits))
	for _, recruit := range recruits {
		playerIDs = append(playerIDs, int(recruit.PlayerID.Int32))
	}

	weekEnd := reportWeekEnd(weekStart)
	appearances, err := s.gameRepo.GetPlayerGamesInRange(ctx, playerIDs, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("fetching games in week: %w", err)
	}

	// Most recent game per player; appearances come back newest first.
	latestGame := make(map[int]*store.Game)
	gameIDSet := make(map[int]bool)
	for _, pg := range appearances {
		if _, ok := latestGame[pg.PlayerID]; !ok {
			latestGame[pg.PlayerID] = pg.Game
			gameIDSet[pg.Game.GameID] = true
		}
	}
	gameIDs := make([]int, 0, len(gameIDSet))
	for id := range gameIDSet {
		gameIDs = append(gameIDs, id)
	}

	grades, err := s.gradeRepo.GetForGames(ctx, gameIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching grades: %w", err)
	}
	gradeByGamePlayer := make(map[[2]int]*store.Grade, len(grades))
	for _, grade := range grades {
		gradeByGamePlayer[[2]int{grade.GameID, grade.PlayerID}] = grade
	}

	events, err := s.statsRepo.GetForGames(ctx, gameIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching stat events: %w", err)
	}
	eventsByGamePlayer := make(map[[2]int][]*store.StatEvent)
	for _, event := range events {
		k := [2]int{event.GameID, event.PlayerID}
		eventsByGamePlayer[k] = append(eventsByGamePlayer[k], event)
	}

	existing, err := s.reportRepo.GetByWeek(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("fetching existing reports: %w", err)
	}

	summary := &BuildSummary{Recruits: len(recruits)}
	for _, recruit := range recruits {
		playerID := int(recruit.PlayerID.Int32)
		game := latestGame[playerID]

		var grade *store.Grade
		var gameEvents []*store.StatEvent
		if game != nil {
			grade = gradeByGamePlayer[[2]int{game.GameID, playerID}]
			gameEvents = eventsByGamePlayer[[2]int{game.GameID, playerID}]
		}

		computed, err := composeReport(recruit, weekStart, game, grade, gameEvents)
		if err != nil {
			return nil, fmt.Errorf("composing report for recruit %d: %w", recruit.RecruitID, err)
		}

		switch decideMerge(existing[recruit.RecruitID], computed.HasStats()) {
		case mergeInsert:
			if err := s.reportRepo.InsertIfAbsent(ctx, computed); err != nil {
				return nil, err
			}
			summary.Inserted++
		case mergeUpdate:
			if err := s.reportRepo.UpdateIfStatsEmpty(ctx, computed); err != nil {
				return nil, err
			}
			summary.Updated++
		case mergeSkip:
			summary.Skipped++
		}
	}

	return summary, nil
}

// composeReport builds the computed report row for one recruit. A recruit
// whose player had no game in the window gets a row with null game and stat
// fields, which the merge policy treats as carrying no stats.
func composeReport(recruit *store.Recruit, weekStart time.Time, game *store.Game, grade *store.Grade, events []*store.StatEvent) (*store.WeeklyReport, error) {
	report := &store.WeeklyReport{
		RecruitID: recruit.RecruitID,
		WeekStart: weekStart,
		Stats:     []byte(`{}`),
	}

	if game == nil {
		return report, nil
	}

	report.GameID = sql.NullInt32{Int32: int32(game.GameID), Valid: true}
	report.Opponent = sql.NullString{String: game.Opponent, Valid: true}

	if grade != nil {
		if grade.GameScore.Valid {
			result, score := recruiting.ParseGameScore(grade.GameScore.String)
			if result != "" {
				report.Result = sql.NullString{String: result, Valid: true}
			}
			if score != "" {
				report.Score = sql.NullString{String: score, Valid: true}
			}
		}
		report.NextOpponent = grade.NextOpponent
		if grade.NextGameDate.Valid {
			report.NextGameDate = sql.NullString{
				String: recruiting.ReformatDate(grade.NextGameDate.String),
				Valid:  true,
			}
		}
		report.Notes = grade.AdminNotes
	}

	if len(events) > 0 {
		counts := make(map[string]float64)
		sums := make(map[string]float64)
		for _, event := range events {
			counts[event.StatType]++
			sums[event.StatType] += event.Value
		}

		stats, other := recruiting.ShapeStats(recruit.Position.String, counts, sums)
		payload, err := json.Marshal(stats)
		if err != nil {
			return nil, fmt.Errorf("marshaling stats: %w", err)
		}
		report.Stats = payload
		report.OtherStats = other
	}

	return report, nil
}

// DossierEntry pairs a recruit with its report for the requested week.
type DossierEntry struct {
	Recruit *store.Recruit      `json:"recruit"`
	Report  *store.WeeklyReport `json:"report,omitempty"`
}

// Dossier is the full weekly recruiting dossier response.
type Dossier struct {
	WeekStart string          `json:"week_start"`
	Recruits  []*DossierEntry `json:"recruits"`
	Notes     []string        `json:"notes"`
}

// dossier ordering: offense first, then defense, then special teams, then
// recruits with no side.
var sideOrder = map[string]int{
	recruiting.SideOffense:      0,
	recruiting.SideDefense:      1,
	recruiting.SideSpecialTeams: 2,
}

// BuildDossier runs the synchronize-then-build sequence and returns the
// joined dossier for pipeline-eligible recruits.
func (s *ReportService) BuildDossier(ctx context.Context, weekStart time.Time) (*Dossier, error) {
	if s.cache != nil {
		locked, err := s.cache.AcquireSyncLock(ctx, weekStart.Format("2006-01-02"))
		if err != nil {
			log.Printf("Sync lock unavailable: %v (continuing unlocked)", err)
		} else if locked {
			defer s.cache.ReleaseSyncLock(ctx, weekStart.Format("2006-01-02"))
		}
		// Not acquiring the lock is fine: the merge policy makes a
		// concurrent duplicate build benign.
	}

	if _, err := s.recruits.Synchronize(ctx); err != nil {
		return nil, fmt.Errorf("synchronizing recruits: %w", err)
	}

	if _, err := s.BuildWeek(ctx, weekStart); err != nil {
		return nil, fmt.Errorf("building weekly reports: %w", err)
	}

	recruits, err := s.recruitRepo.GetLinked(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching recruits: %w", err)
	}

	reports, err := s.reportRepo.GetByWeek(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("fetching reports: %w", err)
	}

	dossier := &Dossier{
		WeekStart: weekStart.Format("2006-01-02"),
		Recruits:  []*DossierEntry{},
		Notes:     []string{},
	}
	for _, recruit := range recruits {
		if !recruiting.IsEligibleStatus(recruit.Status) {
			continue
		}
		entry := &DossierEntry{Recruit: recruit, Report: reports[recruit.RecruitID]}
		dossier.Recruits = append(dossier.Recruits, entry)
		if entry.Report != nil && entry.Report.Notes.Valid && entry.Report.Notes.String != "" {
			dossier.Notes = append(dossier.Notes, fmt.Sprintf("%s: %s", recruit.Name, entry.Report.Notes.String))
		}
	}

	sortDossier(dossier.Recruits)

	return dossier, nil
}

// sortDossier orders entries by side of ball, then position, then name.
func sortDossier(entries []*DossierEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Recruit, entries[j].Recruit
		as, bs := sideRank(a), sideRank(b)
		if as != bs {
			return as < bs
		}
		if a.Position.String != b.Position.String {
			return a.Position.String < b.Position.String
		}
		return a.Name < b.Name
	})
}

func sideRank(recruit *store.Recruit) int {
	if rank, ok := sideOrder[recruit.SideOfBall.String]; ok {
		return rank
	}
	return len(sideOrder)
}

// ManualUpsert writes a caller-supplied report for one recruit and week,
// bypassing the merge policy entirely.
func (s *ReportService) ManualUpsert(ctx context.Context, report *store.WeeklyReport) (*store.WeeklyReport, error) {
	if _, err := s.recruitRepo.GetByID(ctx, report.RecruitID); err != nil {
		return nil, err
	}

	if err := s.reportRepo.ManualUpsert(ctx, report); err != nil {
		return nil, err
	}

	return s.reportRepo.GetByRecruitWeek(ctx, report.RecruitID, report.WeekStart)
}
