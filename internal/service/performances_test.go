package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/fortuna/gridiron/internal/store/repository"
	"github.com/stretchr/testify/assert"
)

func statRow(gameID, playerID int, name, statType string, value float64, letter string) *repository.WeekStatRow {
	row := &repository.WeekStatRow{
		GameID:     gameID,
		PlayerID:   playerID,
		StatType:   statType,
		Value:      value,
		Opponent:   "Central",
		GameDate:   time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC),
		PlayerName: name,
	}
	if letter != "" {
		row.Letter = sql.NullString{String: letter, Valid: true}
	}
	return row
}

func TestBuildPerformancesGroupsAndScores(t *testing.T) {
	rows := []*repository.WeekStatRow{
		statRow(1, 10, "Marcus Webb", "Rush TD", 0, "A"),
		statRow(1, 10, "Marcus Webb", "Rush", 45, "A"),
		statRow(1, 11, "Devon Price", "Tackle", 0, ""),
	}

	performances := buildPerformances(rows)
	assert.Len(t, performances, 2)

	top := performances[0]
	assert.Equal(t, "Marcus Webb", top.Player.Name)
	assert.Equal(t, "A", top.Grade)
	assert.Equal(t, 14.5, top.Scores.Stats)
	assert.Equal(t, 96, top.Scores.Grade)
	assert.Equal(t, 24.1, top.Scores.Composite)
	assert.Equal(t, map[string]float64{"Rush TD": 1, "Rush": 45}, top.Stats)

	second := performances[1]
	assert.Equal(t, "Devon Price", second.Player.Name)
	assert.Equal(t, "", second.Grade)
	assert.Equal(t, 0, second.Scores.Grade)
	assert.Equal(t, 2.0, second.Scores.Composite)
}

func TestBuildPerformancesSeparatesGames(t *testing.T) {
	// Same player in two games yields two performances.
	rows := []*repository.WeekStatRow{
		statRow(1, 10, "Marcus Webb", "Rush", 50, ""),
		statRow(2, 10, "Marcus Webb", "Rush", 20, ""),
	}

	performances := buildPerformances(rows)
	assert.Len(t, performances, 2)
	assert.Equal(t, 5.0, performances[0].Scores.Composite)
	assert.Equal(t, 2.0, performances[1].Scores.Composite)
}

func TestBuildPerformancesTiebreakByName(t *testing.T) {
	rows := []*repository.WeekStatRow{
		statRow(1, 12, "Zane Oliver", "Tackle", 0, ""),
		statRow(1, 11, "Aaron Bell", "Tackle", 0, ""),
	}

	performances := buildPerformances(rows)
	assert.Equal(t, "Aaron Bell", performances[0].Player.Name)
	assert.Equal(t, "Zane Oliver", performances[1].Player.Name)
}

func TestCompositeScore(t *testing.T) {
	assert.Equal(t, 24.5, compositeScore(14.5, 100))
	assert.Equal(t, 14.5, compositeScore(14.5, 0))
	assert.Equal(t, 9.0, compositeScore(0, 90))
}

func TestRankLeaderboard(t *testing.T) {
	letter := func(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }
	rows := []*repository.LeaderboardRow{
		{PlayerID: 1, PlayerName: "Marcus Webb", GameID: 1, Letter: letter("A")},
		{PlayerID: 1, PlayerName: "Marcus Webb", GameID: 2, Letter: letter("B+")},
		{PlayerID: 2, PlayerName: "Devon Price", GameID: 1, Letter: letter("A+")},
		{PlayerID: 3, PlayerName: "Cole Harmon", GameID: 1},
	}

	entries := rankLeaderboard(rows, 0)
	assert.Len(t, entries, 3)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Devon Price", entries[0].Player)
	assert.Equal(t, 100.0, *entries[0].AverageGrade)

	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Marcus Webb", entries[1].Player)
	assert.Equal(t, 92.0, *entries[1].AverageGrade)
	assert.Equal(t, 2, entries[1].GamesPlayed)

	// Ungraded players appear last, never dropped.
	assert.Equal(t, 3, entries[2].Rank)
	assert.Equal(t, "Cole Harmon", entries[2].Player)
	assert.Nil(t, entries[2].AverageGrade)
}

func TestRankLeaderboardUnknownLetterTreatedAsUngraded(t *testing.T) {
	rows := []*repository.LeaderboardRow{
		{PlayerID: 1, PlayerName: "Marcus Webb", GameID: 1, Letter: sql.NullString{String: "Z", Valid: true}},
	}

	entries := rankLeaderboard(rows, 0)
	assert.Len(t, entries, 1)
	assert.Nil(t, entries[0].AverageGrade)
	assert.Equal(t, 1, entries[0].GamesPlayed)
}

func TestRankLeaderboardLimit(t *testing.T) {
	letter := func(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }
	rows := []*repository.LeaderboardRow{
		{PlayerID: 1, PlayerName: "Marcus Webb", GameID: 1, Letter: letter("A")},
		{PlayerID: 2, PlayerName: "Devon Price", GameID: 1, Letter: letter("B")},
		{PlayerID: 3, PlayerName: "Cole Harmon", GameID: 1, Letter: letter("C")},
	}

	entries := rankLeaderboard(rows, 2)
	assert.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestCurrentScoutingWeek(t *testing.T) {
	// Wednesday Oct 8, 2025 falls in the Sunday Oct 5 – Saturday Oct 11 week.
	now := time.Date(2025, 10, 8, 15, 30, 0, 0, time.UTC)
	week := currentScoutingWeek(now)

	assert.Equal(t, time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC), week.Start)
	assert.Equal(t, time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC), week.End)
	assert.Equal(t, "Week of Oct 5, 2025", week.Label)

	// A Sunday is the start of its own week.
	sunday := time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, week.Start, currentScoutingWeek(sunday).Start)
}

func TestReportWeekEnd(t *testing.T) {
	// Tuesday anchor: start + 5 days lands on Sunday.
	start := time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC), reportWeekEnd(start))
}
