package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_RushingLine(t *testing.T) {
	events := []Event{
		{Type: "Rush TD", Value: 1},
		{Type: "Rush", Value: 45},
	}

	// 10×1 + 0.1×45
	assert.Equal(t, 14.5, Score(events))
}

func TestScore_CountStatsIgnoreValue(t *testing.T) {
	big := Score([]Event{{Type: "Rush TD", Value: 7}})
	one := Score([]Event{{Type: "Rush TD", Value: 1}})

	assert.Equal(t, one, big, "count-classified types must ignore the recorded value")
	assert.Equal(t, 10.0, one)
}

func TestScore_OrderIndependent(t *testing.T) {
	events := []Event{
		{Type: "Completion", Value: 12},
		{Type: "Completion", Value: 33},
		{Type: "Pass TD"},
		{Type: "Interception"},
		{Type: "Rush", Value: 8},
		{Type: "Fumble"},
	}
	want := Score(events)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]Event, len(events))
		copy(shuffled, events)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, Score(shuffled))
	}
}

func TestScore_UnknownTypesIgnored(t *testing.T) {
	events := []Event{
		{Type: "Pancake Block", Value: 4},
		{Type: "Rush", Value: 20},
	}

	assert.Equal(t, 2.0, Score(events))
}

func TestScore_ZeroMagnitudeDefaultsToOne(t *testing.T) {
	// A bare "Rush" with no recorded yardage still registers one unit.
	assert.Equal(t, 0.1, Score([]Event{{Type: "Rush", Value: 0}}))
}

func TestScore_NegativeEvents(t *testing.T) {
	events := []Event{
		{Type: "Interception"},
		{Type: "Fumble"},
		{Type: "Penalty"},
	}

	assert.Equal(t, -13.0, Score(events))
}

func TestScore_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Score(nil))
}

func TestAggregate(t *testing.T) {
	events := []Event{
		{Type: "Rush TD", Value: 1},
		{Type: "Rush", Value: 45},
		{Type: "Rush", Value: 12},
		{Type: "Tackle", Value: 3}, // count stat: value ignored
		{Type: "Tackle"},
	}

	totals := Aggregate(events)

	assert.Equal(t, 1.0, totals["Rush TD"])
	assert.Equal(t, 57.0, totals["Rush"])
	assert.Equal(t, 2.0, totals["Tackle"])
}

func TestAggregate_ZeroValueStaysZero(t *testing.T) {
	totals := Aggregate([]Event{{Type: "Rush", Value: 0}})
	assert.Equal(t, 0.0, totals["Rush"])
}

func TestGradeValue(t *testing.T) {
	tests := []struct {
		letter string
		value  int
		known  bool
	}{
		{"A+", 100, true},
		{"A-", 92, true},
		{"B", 84, true},
		{"F", 50, true},
		{"Z", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		v, ok := GradeValue(tt.letter)
		assert.Equal(t, tt.value, v, "GradeValue(%q)", tt.letter)
		assert.Equal(t, tt.known, ok, "GradeValue(%q) known", tt.letter)
	}
}

func TestGradeDisplayValue_UnknownIsZero(t *testing.T) {
	assert.Equal(t, 0, GradeDisplayValue("Z"))
	assert.Equal(t, 92, GradeDisplayValue("A-"))
}
