package recruiting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGameScore(t *testing.T) {
	tests := []struct {
		in     string
		result string
		score  string
	}{
		{"W 35-14", "W", "35-14"},
		{"L 10-21", "L", "10-21"},
		{"35-14", "", "35-14"},
		{"Won big", "", "Won big"}, // no "W " prefix, whole string is score text
		{"", "", ""},
		{"W", "", "W"}, // bare letter, no room for a score
	}

	for _, tt := range tests {
		result, score := ParseGameScore(tt.in)
		assert.Equal(t, tt.result, result, "result for %q", tt.in)
		assert.Equal(t, tt.score, score, "score for %q", tt.in)
	}
}

func TestReformatDate(t *testing.T) {
	assert.Equal(t, "2025-10-03", ReformatDate("10/03/2025"))
	assert.Equal(t, "", ReformatDate(""))
	assert.Equal(t, "next friday", ReformatDate("next friday"))
}

func TestShapeStats_Quarterback(t *testing.T) {
	counts := map[string]float64{
		"Completion":   14,
		"Incompletion": 6,
		"Pass TD":      2,
		"Rush":         5,
		"Rush TD":      1,
		"Interception": 1,
		"Fumble":       0,
	}
	sums := map[string]float64{
		"Completion": 212,
		"Rush":       31,
	}

	stats, other := ShapeStats("QB", counts, sums)

	assert.Equal(t, 14.0, stats["completions"])
	assert.Equal(t, 20.0, stats["attempts"])
	assert.Equal(t, 70.0, stats["completion_pct"])
	assert.Equal(t, 212.0, stats["passing_yards"])
	assert.Equal(t, 2.0, stats["passing_tds"])
	assert.Equal(t, 31.0, stats["rushing_yards"])
	assert.Equal(t, 1.0, stats["rushing_tds"])
	assert.Equal(t, 1.0, stats["interceptions"])
	assert.Empty(t, other)
}

func TestShapeStats_CompletionPctZeroAttempts(t *testing.T) {
	stats, _ := ShapeStats("QB", map[string]float64{}, map[string]float64{})
	assert.Equal(t, 0.0, stats["completion_pct"])
}

func TestShapeStats_RunningBack(t *testing.T) {
	counts := map[string]float64{
		"Rush":      18,
		"Rush TD":   2,
		"Reception": 3,
		"Rec TD":    1,
	}
	sums := map[string]float64{
		"Rush":      142,
		"Reception": 28,
	}

	stats, _ := ShapeStats("RB", counts, sums)

	assert.Equal(t, 18.0, stats["carries"])
	assert.Equal(t, 142.0, stats["rushing_yards"])
	assert.Equal(t, 2.0, stats["rushing_tds"])
	assert.Equal(t, 3.0, stats["receptions"])
	assert.Equal(t, 28.0, stats["receiving_yards"])
	assert.Equal(t, 1.0, stats["receiving_tds"])
}

func TestShapeStats_DefensiveLine(t *testing.T) {
	counts := map[string]float64{
		"Tackle":        7,
		"TFL":           2,
		"Sack":          1,
		"Pass Breakup":  1,
		"Forced Fumble": 1,
	}

	stats, other := ShapeStats("DE", counts, map[string]float64{})

	assert.Equal(t, 7.0, stats["tackles"])
	assert.Equal(t, 2.0, stats["tfl"])
	assert.Equal(t, 1.0, stats["sacks"])
	assert.Equal(t, 1.0, stats["pass_breakups"])
	assert.Equal(t, 1.0, stats["forced_fumbles"])
	assert.Empty(t, other)
}

func TestShapeStats_Punter(t *testing.T) {
	counts := map[string]float64{"Punt": 4}
	sums := map[string]float64{"Punt": 165}

	stats, _ := ShapeStats("P", counts, sums)

	assert.Equal(t, 4.0, stats["punts"])
	assert.Equal(t, 41.3, stats["net_avg"])
}

func TestShapeStats_UnconsumedTypesGoToOther(t *testing.T) {
	counts := map[string]float64{
		"Tackle": 7,
		"Rush":   2, // a DL carrying the ball: not in the DL shape
	}
	sums := map[string]float64{"Rush": 9}

	_, other := ShapeStats("DL", counts, sums)

	assert.Equal(t, []string{"Rush: 9"}, other)
}

func TestShapeStats_UnknownPosition(t *testing.T) {
	counts := map[string]float64{"Tackle": 3}

	stats, other := ShapeStats("ATH", counts, map[string]float64{})

	assert.Empty(t, stats)
	assert.Equal(t, []string{"Tackle: 3"}, other)
}
