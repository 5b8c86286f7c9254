package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fortuna/gridiron/internal/scoring"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// LeaderboardEntry is one ranked player on the grade leaderboard.
// AverageGrade is nil for players with no numeric grades in range; those
// players still appear, ranked after everyone with an average.
type LeaderboardEntry struct {
	Rank         int      `json:"rank"`
	PlayerID     int      `json:"playerId"`
	Player       string   `json:"player"`
	GamesPlayed  int      `json:"gamesPlayed"`
	AverageGrade *float64 `json:"averageGrade"`
}

// Leaderboard ranks players by mean numeric grade across games in the date
// range. Every player with at least one game in range appears.
func (s *PerformanceService) Leaderboard(ctx context.Context, start, end time.Time, limit int) ([]*LeaderboardEntry, error) {
	rows, err := s.gradeRepo.GetLeaderboardRows(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching leaderboard rows: %w", err)
	}

	return rankLeaderboard(rows, limit), nil
}

// rankLeaderboard computes per-player means in memory and sorts with
// graded players first (descending mean), ungraded players after, rank
// assigned 1-based by sorted position.
func rankLeaderboard(rows []*repository.LeaderboardRow, limit int) []*LeaderboardEntry {
	type acc struct {
		name     string
		games    map[int]bool
		sum      int
		numGrade int
	}

	players := make(map[int]*acc)
	var order []int
	for _, row := range rows {
		a, ok := players[row.PlayerID]
		if !ok {
			a = &acc{name: row.PlayerName, games: make(map[int]bool)}
			players[row.PlayerID] = a
			order = append(order, row.PlayerID)
		}
		a.games[row.GameID] = true
		if row.Letter.Valid {
			if v, known := scoring.GradeValue(row.Letter.String); known {
				a.sum += v
				a.numGrade++
			}
		}
	}

	entries := make([]*LeaderboardEntry, 0, len(order))
	for _, playerID := range order {
		a := players[playerID]
		entry := &LeaderboardEntry{
			PlayerID:    playerID,
			Player:      a.name,
			GamesPlayed: len(a.games),
		}
		if a.numGrade > 0 {
			avg := math.Round(float64(a.sum)/float64(a.numGrade)*10) / 10
			entry.AverageGrade = &avg
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.AverageGrade != nil && b.AverageGrade == nil:
			return true
		case a.AverageGrade == nil && b.AverageGrade != nil:
			return false
		case a.AverageGrade != nil && b.AverageGrade != nil && *a.AverageGrade != *b.AverageGrade:
			return *a.AverageGrade > *b.AverageGrade
		}
		return a.Player < b.Player
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i, entry := range entries {
		entry.Rank = i + 1
	}

	return entries
}
