package recruiting

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fortuna/gridiron/internal/scoring"
)

// positionGroups collapses individual positions into the stat-shape groups.
var positionGroups = map[string]string{
	"QB": "qb",
	"RB": "rb", "FB": "rb",
	"WR": "receiver", "TE": "receiver",
	"OL": "ol", "C": "ol", "G": "ol", "T": "ol",
	"DL": "dl", "DE": "dl", "DT": "dl", "NT": "dl",
	"LB": "lb", "ILB": "lb", "OLB": "lb", "MLB": "lb",
	"DB": "db", "CB": "db", "S": "db", "FS": "db", "SS": "db",
	"K": "k",
	"P": "p",
}

// shapeFields lists, per group, the report stat fields and the event types
// each one reads. "count:X" reads the per-type count, "sum:X" the per-type
// value sum.
var shapeFields = map[string][]shapeField{
	"qb": {
		{"completions", []string{"count:Completion"}},
		{"attempts", []string{"count:Completion", "count:Incompletion"}},
		{"completion_pct", nil}, // derived, see ShapeStats
		{"passing_yards", []string{"sum:Completion"}},
		{"passing_tds", []string{"count:Pass TD"}},
		{"rushing_yards", []string{"sum:Rush"}},
		{"rushing_tds", []string{"count:Rush TD"}},
		{"interceptions", []string{"count:Interception"}},
		{"fumbles", []string{"count:Fumble"}},
	},
	"rb": {
		{"carries", []string{"count:Rush"}},
		{"rushing_yards", []string{"sum:Rush"}},
		{"rushing_tds", []string{"count:Rush TD"}},
		{"receptions", []string{"count:Reception"}},
		{"receiving_yards", []string{"sum:Reception"}},
		{"receiving_tds", []string{"count:Rec TD"}},
		{"fumbles", []string{"count:Fumble"}},
	},
	"receiver": {
		{"receptions", []string{"count:Reception"}},
		{"receiving_yards", []string{"sum:Reception"}},
		{"receiving_tds", []string{"count:Rec TD"}},
		{"carries", []string{"count:Rush"}},
		{"rushing_yards", []string{"sum:Rush"}},
		{"rushing_tds", []string{"count:Rush TD"}},
		{"fumbles", []string{"count:Fumble"}},
	},
	"ol": {
		{"penalties", []string{"count:Penalty"}},
	},
	"dl": {
		{"tackles", []string{"count:Tackle"}},
		{"tfl", []string{"count:TFL"}},
		{"pass_breakups", []string{"count:Pass Breakup"}},
		{"sacks", []string{"count:Sack"}},
		{"forced_fumbles", []string{"count:Forced Fumble"}},
	},
	"lb": {
		{"tackles", []string{"count:Tackle"}},
		{"tfl", []string{"count:TFL"}},
		{"sacks", []string{"count:Sack"}},
		{"interceptions", []string{"count:INT"}},
		{"pass_breakups", []string{"count:Pass Breakup"}},
		{"forced_fumbles", []string{"count:Forced Fumble"}},
	},
	"db": {
		{"tackles", []string{"count:Tackle"}},
		{"interceptions", []string{"count:INT"}},
		{"pass_breakups", []string{"count:Pass Breakup"}},
		{"forced_fumbles", []string{"count:Forced Fumble"}},
	},
	"k": {
		{"fg_attempts", []string{"count:FG Attempt"}},
		{"fg_made", []string{"count:FG Made"}},
		{"pat_attempts", []string{"count:PAT Attempt"}},
		{"pat_made", []string{"count:PAT Made"}},
	},
	"p": {
		{"punts", []string{"count:Punt"}},
		{"net_avg", nil}, // derived
	},
}

type shapeField struct {
	name    string
	sources []string
}

// ShapeStats shapes per-type counts and sums into the position-specific
// stats object for the weekly report. Stat types not consumed by the
// position's shape come back as "other" display lines so scout-entered
// oddities are never silently dropped. Unknown positions get no shaped
// stats; everything lands in other.
func ShapeStats(position string, counts, sums map[string]float64) (map[string]float64, []string) {
	group := positionGroups[position]
	fields := shapeFields[group]

	stats := make(map[string]float64, len(fields))
	consumed := make(map[string]bool)

	for _, f := range fields {
		var total float64
		for _, src := range f.sources {
			if statType, ok := strings.CutPrefix(src, "count:"); ok {
				total += counts[statType]
				consumed[statType] = true
			} else if statType, ok := strings.CutPrefix(src, "sum:"); ok {
				total += sums[statType]
				consumed[statType] = true
			}
		}
		stats[f.name] = total
	}

	switch group {
	case "qb":
		stats["completion_pct"] = completionPct(stats["completions"], stats["attempts"])
	case "p":
		stats["net_avg"] = puntNetAverage(counts["Punt"], sums["Punt"])
		consumed["Punt"] = true
	}

	return stats, otherLines(counts, sums, consumed)
}

// completionPct is round(completions/attempts*100), 0 when attempts is 0.
func completionPct(completions, attempts float64) float64 {
	if attempts == 0 {
		return 0
	}
	return math.Round(completions / attempts * 100)
}

// puntNetAverage is the per-punt net yardage to one decimal place.
func puntNetAverage(punts, netYards float64) float64 {
	if punts == 0 {
		return 0
	}
	return math.Round(netYards/punts*10) / 10
}

// otherLines formats the unconsumed stat totals for the report's free list.
func otherLines(counts, sums map[string]float64, consumed map[string]bool) []string {
	var types []string
	for statType := range counts {
		if !consumed[statType] {
			types = append(types, statType)
		}
	}
	sort.Strings(types)

	lines := make([]string, 0, len(types))
	for _, statType := range types {
		total := counts[statType]
		if !scoring.IsCountStat(statType) {
			total = sums[statType]
		}
		lines = append(lines, fmt.Sprintf("%s: %g", statType, total))
	}
	return lines
}
