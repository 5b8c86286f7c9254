package recruiting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveStatus_PriorityWins(t *testing.T) {
	status, eligible := ResolveStatus([]string{"Committed", "Watching"})

	assert.Equal(t, StatusCommitted, status)
	assert.True(t, eligible)
}

func TestResolveStatus_InputOrderIrrelevant(t *testing.T) {
	a, _ := ResolveStatus([]string{"watching", "offered", "interested"})
	b, _ := ResolveStatus([]string{"interested", "watching", "offered"})

	assert.Equal(t, StatusOffered, a)
	assert.Equal(t, a, b)
}

func TestResolveStatus_Empty(t *testing.T) {
	status, eligible := ResolveStatus(nil)

	assert.Equal(t, StatusWatching, status)
	assert.False(t, eligible)
}

func TestResolveStatus_Synonyms(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"offer", StatusOffered},
		{"Offered", StatusOffered},
		{"  interested ", StatusRecruit},
		{"priority", StatusRecruit},
		{"not interested", StatusPassed},
		{"committed elsewhere", StatusCommittedElsewhere},
		{"signed LOI", StatusSigned},
		{"evaluating", StatusEvaluated},
		{"watch list", StatusWatching},
	}

	for _, tt := range tests {
		status, _ := ResolveStatus([]string{tt.tag})
		assert.Equal(t, tt.want, status, "tag %q", tt.tag)
	}
}

func TestResolveStatus_UnmappedPassesThroughUppercased(t *testing.T) {
	status, eligible := ResolveStatus([]string{"camp invite"})

	assert.Equal(t, "CAMP INVITE", status)
	assert.False(t, eligible)
}

func TestResolveStatus_Eligibility(t *testing.T) {
	tests := []struct {
		tags     []string
		eligible bool
	}{
		{[]string{"offered"}, true},
		{[]string{"committed"}, true},
		{[]string{"committed elsewhere"}, true},
		{[]string{"signed"}, true},
		{[]string{"watching"}, false},
		{[]string{"evaluated"}, false},
		{[]string{"not interested"}, false},
		// An eligible tag anywhere in the set flips the flag even when a
		// lower-priority status would not.
		{[]string{"watching", "offer"}, true},
	}

	for _, tt := range tests {
		_, eligible := ResolveStatus(tt.tags)
		assert.Equal(t, tt.eligible, eligible, "tags %v", tt.tags)
	}
}

func TestEffectivePosition(t *testing.T) {
	assert.Equal(t, "QB", EffectivePosition("QB", "WR", "DB"))
	assert.Equal(t, "WR", EffectivePosition("", "WR", "DB"))
	assert.Equal(t, "DB", EffectivePosition("", "", "DB"))
	assert.Equal(t, "", EffectivePosition("", "", ""))
}

func TestSideOfBall(t *testing.T) {
	assert.Equal(t, SideOffense, SideOfBall("QB"))
	assert.Equal(t, SideDefense, SideOfBall("CB"))
	assert.Equal(t, SideSpecialTeams, SideOfBall("K"))
	assert.Equal(t, "", SideOfBall("ATH"))
}

func TestCoachFor(t *testing.T) {
	assert.NotEmpty(t, CoachFor("QB"))
	assert.Equal(t, CoachFor("DE"), CoachFor("DT"))
	assert.Empty(t, CoachFor("ATH"))
}
