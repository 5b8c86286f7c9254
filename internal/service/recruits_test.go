package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/fortuna/gridiron/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestSeedRecruit(t *testing.T) {
	committed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	player := &store.Player{
		PlayerID:        12,
		FullName:        "Marcus Webb",
		Position:        sql.NullString{String: "RB", Valid: true},
		CommittedSchool: sql.NullString{String: "State", Valid: true},
		CommittedDate:   sql.NullTime{Time: committed, Valid: true},
	}

	recruit := seedRecruit(player, "OFFERED")

	assert.Equal(t, int32(12), recruit.PlayerID.Int32)
	assert.Equal(t, "Marcus Webb", recruit.Name)
	assert.Equal(t, "OFFERED", recruit.Status)
	assert.Equal(t, "RB", recruit.Position.String)
	assert.Equal(t, "offense", recruit.SideOfBall.String)
	assert.Equal(t, "M. Whitfield", recruit.Coach.String)
	assert.Equal(t, "State", recruit.CommittedSchool.String)
	assert.Equal(t, committed, recruit.CommittedDate.Time)
}

func TestSeedRecruitFallsBackToDefensePosition(t *testing.T) {
	player := &store.Player{
		PlayerID:        13,
		FullName:        "Devon Price",
		DefensePosition: sql.NullString{String: "LB", Valid: true},
	}

	recruit := seedRecruit(player, "SIGNED")

	assert.Equal(t, "LB", recruit.Position.String)
	assert.Equal(t, "defense", recruit.SideOfBall.String)
	assert.Equal(t, "C. Branch", recruit.Coach.String)
}

func TestSeedRecruitUnknownPosition(t *testing.T) {
	player := &store.Player{
		PlayerID: 14,
		FullName: "Cole Harmon",
		Position: sql.NullString{String: "ATH", Valid: true},
	}

	recruit := seedRecruit(player, "WATCHING")

	assert.Equal(t, "ATH", recruit.Position.String)
	assert.False(t, recruit.SideOfBall.Valid)
	assert.False(t, recruit.Coach.Valid)
}
