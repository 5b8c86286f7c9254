// Package scoring converts raw scouted stat events into a single comparable
// composite score and per-type display totals. All functions are pure and
// order-independent: any permutation of the same multiset of events yields
// identical output.
package scoring

import "math"

// Event is one (stat type, value) observation for a player in a game.
type Event struct {
	Type  string
	Value float64
}

// Score computes the weighted composite score for one player's events in one
// game, rounded to one decimal place.
//
// Count-classified types contribute weight × 1 regardless of recorded value.
// Magnitude types contribute weight × value, with a zero value defaulting to
// 1 so a bare event still registers. Unknown types contribute nothing.
func Score(events []Event) float64 {
	var total float64
	for _, ev := range events {
		w := Weight(ev.Type)
		if IsCountStat(ev.Type) {
			total += w
			continue
		}
		v := ev.Value
		if v == 0 {
			v = 1
		}
		total += w * v
	}
	return math.Round(total*10) / 10
}

// Aggregate produces the display totals per stat type: count types increment
// by 1 per event, magnitude types by the event's value (0 stays 0).
func Aggregate(events []Event) map[string]float64 {
	totals := make(map[string]float64, len(events))
	for _, ev := range events {
		if IsCountStat(ev.Type) {
			totals[ev.Type]++
		} else {
			totals[ev.Type] += ev.Value
		}
	}
	return totals
}
