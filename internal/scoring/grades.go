package scoring

// Letter grades map to 100 down to 50 in steps of 4, F at the floor.
var gradeValues = map[string]int{
	"A+": 100,
	"A":  96,
	"A-": 92,
	"B+": 88,
	"B":  84,
	"B-": 80,
	"C+": 76,
	"C":  72,
	"C-": 68,
	"D+": 64,
	"D":  60,
	"D-": 56,
	"F":  50,
}

// GradeValue converts a letter grade to its numeric value. The second return
// is false for unknown or absent grades so callers averaging grades can
// exclude them instead of dragging the mean down with zeros.
func GradeValue(letter string) (int, bool) {
	v, ok := gradeValues[letter]
	return v, ok
}

// GradeDisplayValue is GradeValue for display purposes: unknown grades show
// as 0 rather than being omitted.
func GradeDisplayValue(letter string) int {
	v, _ := gradeValues[letter]
	return v
}
