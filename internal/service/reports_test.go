package service

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/fortuna/gridiron/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideMerge(t *testing.T) {
	withStats := &store.WeeklyReport{Stats: []byte(`{"carries":12}`)}
	withoutStats := &store.WeeklyReport{Stats: []byte(`{}`)}

	tests := []struct {
		name             string
		existing         *store.WeeklyReport
		computedHasStats bool
		want             mergeAction
	}{
		{"no existing row", nil, true, mergeInsert},
		{"no existing row, no stats", nil, false, mergeInsert},
		{"existing row is human-owned", withStats, true, mergeSkip},
		{"existing empty, computed brings stats", withoutStats, true, mergeUpdate},
		{"existing empty, computed still empty", withoutStats, false, mergeSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decideMerge(tt.existing, tt.computedHasStats))
		})
	}
}

func testRecruit(id int, name, position, side string) *store.Recruit {
	recruit := &store.Recruit{RecruitID: id, Name: name, Status: "OFFERED"}
	if position != "" {
		recruit.Position = sql.NullString{String: position, Valid: true}
	}
	if side != "" {
		recruit.SideOfBall = sql.NullString{String: side, Valid: true}
	}
	return recruit
}

func TestComposeReportNoGame(t *testing.T) {
	recruit := testRecruit(7, "Marcus Webb", "RB", "offense")
	weekStart := time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)

	report, err := composeReport(recruit, weekStart, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 7, report.RecruitID)
	assert.Equal(t, weekStart, report.WeekStart)
	assert.False(t, report.GameID.Valid)
	assert.False(t, report.Opponent.Valid)
	assert.False(t, report.HasStats())
}

func TestComposeReportWithGameAndGrade(t *testing.T) {
	recruit := testRecruit(7, "Marcus Webb", "RB", "offense")
	weekStart := time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)
	game := &store.Game{GameID: 3, Opponent: "Central", GameDate: time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)}
	grade := &store.Grade{
		GameID:       3,
		PlayerID:     12,
		GameScore:    sql.NullString{String: "W 28-14", Valid: true},
		NextOpponent: sql.NullString{String: "Eastside", Valid: true},
		NextGameDate: sql.NullString{String: "10/17/2025", Valid: true},
		AdminNotes:   sql.NullString{String: "Ran hard between the tackles", Valid: true},
	}
	events := []*store.StatEvent{
		{GameID: 3, PlayerID: 12, StatType: "Rush", Value: 12},
		{GameID: 3, PlayerID: 12, StatType: "Rush", Value: 33},
		{GameID: 3, PlayerID: 12, StatType: "Rush TD", Value: 0},
	}

	report, err := composeReport(recruit, weekStart, game, grade, events)
	require.NoError(t, err)

	assert.Equal(t, int32(3), report.GameID.Int32)
	assert.Equal(t, "Central", report.Opponent.String)
	assert.Equal(t, "W", report.Result.String)
	assert.Equal(t, "28-14", report.Score.String)
	assert.Equal(t, "Eastside", report.NextOpponent.String)
	assert.Equal(t, "2025-10-17", report.NextGameDate.String)
	assert.Equal(t, "Ran hard between the tackles", report.Notes.String)

	require.True(t, report.HasStats())
	var stats map[string]float64
	require.NoError(t, json.Unmarshal(report.Stats, &stats))
	assert.Equal(t, 2.0, stats["carries"])
	assert.Equal(t, 45.0, stats["rushing_yards"])
	assert.Equal(t, 1.0, stats["rushing_tds"])
}

func TestComposeReportGameWithoutGrade(t *testing.T) {
	recruit := testRecruit(7, "Marcus Webb", "RB", "offense")
	weekStart := time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)
	game := &store.Game{GameID: 3, Opponent: "Central"}

	report, err := composeReport(recruit, weekStart, game, nil, nil)
	require.NoError(t, err)

	assert.True(t, report.GameID.Valid)
	assert.False(t, report.Result.Valid)
	assert.False(t, report.Notes.Valid)
	assert.False(t, report.HasStats())
}

func TestSortDossier(t *testing.T) {
	entries := []*DossierEntry{
		{Recruit: testRecruit(1, "Pat Nolan", "P", "special_teams")},
		{Recruit: testRecruit(2, "Devon Price", "LB", "defense")},
		{Recruit: testRecruit(3, "Marcus Webb", "RB", "offense")},
		{Recruit: testRecruit(4, "Aaron Bell", "QB", "offense")},
		{Recruit: testRecruit(5, "Cole Harmon", "", "")},
		{Recruit: testRecruit(6, "Jake Webb", "RB", "offense")},
	}

	sortDossier(entries)

	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Recruit.Name
	}

	// Offense first ordered by position then name, then defense, then
	// special teams, then recruits with no side.
	assert.Equal(t, []string{
		"Aaron Bell",
		"Jake Webb",
		"Marcus Webb",
		"Devon Price",
		"Pat Nolan",
		"Cole Harmon",
	}, names)
}
