package scoring

// Stat weights for the composite performance score. Touchdown-type events
// carry the most weight, turnovers and penalties are negative, yardage-type
// events carry a small per-unit weight.
var statWeights = map[string]float64{
	// Scoring plays
	"Pass TD":   10,
	"Rush TD":   10,
	"Rec TD":    10,
	"Return TD": 10,

	// Yardage (per yard)
	"Completion":   0.04,
	"Rush":         0.1,
	"Reception":    0.1,
	"Return":       0.1,
	"Punt":         0.04,
	"Incompletion": 0,

	// Defense
	"INT":           8,
	"Sack":          6,
	"Forced Fumble": 5,
	"TFL":           4,
	"Pass Breakup":  3,
	"Tackle":        2,

	// Kicking
	"FG Made":     5,
	"FG Attempt":  0,
	"PAT Made":    1,
	"PAT Attempt": 0,

	// Negative plays
	"Interception": -5,
	"Fumble":       -5,
	"Penalty":      -3,
}

// countStats lists the stat types scored as unit events: each row counts as
// 1 and the recorded value is ignored. Every other known type is a magnitude
// event whose recorded value is the contribution.
var countStats = map[string]bool{
	"Pass TD":       true,
	"Rush TD":       true,
	"Rec TD":        true,
	"Return TD":     true,
	"Incompletion":  true,
	"Interception":  true,
	"Fumble":        true,
	"Penalty":       true,
	"INT":           true,
	"Sack":          true,
	"Forced Fumble": true,
	"TFL":           true,
	"Pass Breakup":  true,
	"Tackle":        true,
	"FG Made":       true,
	"FG Attempt":    true,
	"PAT Made":      true,
	"PAT Attempt":   true,
}

// Weight returns the signed score weight for a stat type. Unknown types
// weigh 0 so unrecognized scout entries never fail a score calculation.
func Weight(statType string) float64 {
	return statWeights[statType]
}

// IsCountStat reports whether a stat type is a unit event. The score
// calculator and the display aggregator both consult this set so the two
// never diverge on classification.
func IsCountStat(statType string) bool {
	return countStats[statType]
}
