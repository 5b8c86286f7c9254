package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/fortuna/gridiron/internal/recruiting"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// RecruitService keeps recruit tracking records synchronized with player
// records.
type RecruitService struct {
	playerRepo  *repository.PlayerRepository
	recruitRepo *repository.RecruitRepository
}

// NewRecruitService creates a new recruit service
func NewRecruitService(db *store.Database) *RecruitService {
	return &RecruitService{
		playerRepo:  repository.NewPlayerRepository(db),
		recruitRepo: repository.NewRecruitRepository(db),
	}
}

// SyncSummary reports what one synchronization pass did.
type SyncSummary struct {
	PlayersExamined int `json:"players_examined"`
	Created         int `json:"created"`
	Updated         int `json:"updated"`
}

// Synchronize refreshes recruit tracking records from player records. For
// every player with at least one recruiting tag:
//
//   - an already-linked recruit gets only its status and committed school
//     refreshed; every other field keeps its stored (possibly hand-edited)
//     value
//   - an unlinked, pipeline-eligible player gets a new recruit record seeded
//     from computed position, side, status, and coach
//   - an unlinked, ineligible player is left alone
//
// Recruits are never deleted, even when a player's recomputed eligibility
// has lapsed.
func (s *RecruitService) Synchronize(ctx context.Context) (*SyncSummary, error) {
	players, err := s.playerRepo.GetTagged(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching tagged players: %w", err)
	}

	linked, err := s.recruitRepo.GetLinked(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching linked recruits: %w", err)
	}
	byPlayer := make(map[int]*store.Recruit, len(linked))
	for _, recruit := range linked {
		if recruit.PlayerID.Valid {
			byPlayer[int(recruit.PlayerID.Int32)] = recruit
		}
	}

	summary := &SyncSummary{PlayersExamined: len(players)}
	for _, player := range players {
		status, eligible := recruiting.ResolveStatus(player.RecruitingTags)

		if existing, ok := byPlayer[player.PlayerID]; ok {
			if err := s.recruitRepo.UpdateSyncFields(ctx, existing.RecruitID, status, player.CommittedSchool); err != nil {
				return nil, err
			}
			summary.Updated++
			continue
		}

		if !eligible {
			continue
		}

		recruit := seedRecruit(player, status)
		if err := s.recruitRepo.Insert(ctx, recruit); err != nil {
			return nil, err
		}
		summary.Created++
	}

	log.Printf("Recruit sync: %d players examined, %d created, %d updated",
		summary.PlayersExamined, summary.Created, summary.Updated)

	return summary, nil
}

// seedRecruit builds a new tracking record from a player's computed
// recruiting fields.
func seedRecruit(player *store.Player, status string) *store.Recruit {
	position := recruiting.EffectivePosition(
		player.Position.String,
		player.OffensePosition.String,
		player.DefensePosition.String,
	)

	recruit := &store.Recruit{
		PlayerID: sql.NullInt32{Int32: int32(player.PlayerID), Valid: true},
		Name:     player.FullName,
		Status:   status,
	}
	if position != "" {
		recruit.Position = sql.NullString{String: position, Valid: true}
	}
	if side := recruiting.SideOfBall(position); side != "" {
		recruit.SideOfBall = sql.NullString{String: side, Valid: true}
	}
	if coach := recruiting.CoachFor(position); coach != "" {
		recruit.Coach = sql.NullString{String: coach, Valid: true}
	}
	recruit.CommittedSchool = player.CommittedSchool
	recruit.CommittedDate = player.CommittedDate

	return recruit
}
