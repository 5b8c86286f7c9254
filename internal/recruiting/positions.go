package recruiting

// Side-of-ball groupings.
const (
	SideOffense      = "offense"
	SideDefense      = "defense"
	SideSpecialTeams = "special_teams"
)

var positionSides = map[string]string{
	"QB": SideOffense,
	"RB": SideOffense,
	"FB": SideOffense,
	"WR": SideOffense,
	"TE": SideOffense,
	"OL": SideOffense,
	"C":  SideOffense,
	"G":  SideOffense,
	"T":  SideOffense,

	"DL":  SideDefense,
	"DE":  SideDefense,
	"DT":  SideDefense,
	"NT":  SideDefense,
	"LB":  SideDefense,
	"ILB": SideDefense,
	"OLB": SideDefense,
	"MLB": SideDefense,
	"DB":  SideDefense,
	"CB":  SideDefense,
	"S":   SideDefense,
	"FS":  SideDefense,
	"SS":  SideDefense,

	"K":  SideSpecialTeams,
	"P":  SideSpecialTeams,
	"LS": SideSpecialTeams,
}

// Position-group coach assignments for new recruit records.
var positionCoaches = map[string]string{
	"QB": "T. Alvarez",
	"RB": "M. Whitfield",
	"FB": "M. Whitfield",
	"WR": "D. Okafor",
	"TE": "D. Okafor",
	"OL": "R. Kowalski",
	"C":  "R. Kowalski",
	"G":  "R. Kowalski",
	"T":  "R. Kowalski",

	"DL":  "J. Mercer",
	"DE":  "J. Mercer",
	"DT":  "J. Mercer",
	"NT":  "J. Mercer",
	"LB":  "C. Branch",
	"ILB": "C. Branch",
	"OLB": "C. Branch",
	"MLB": "C. Branch",
	"DB":  "A. Fontaine",
	"CB":  "A. Fontaine",
	"S":   "A. Fontaine",
	"FS":  "A. Fontaine",
	"SS":  "A. Fontaine",

	"K":  "P. Strand",
	"P":  "P. Strand",
	"LS": "P. Strand",
}

// SideOfBall returns the offense/defense/special-teams grouping for a
// position, or "" for unknown positions.
func SideOfBall(position string) string {
	return positionSides[position]
}

// CoachFor returns the coach assigned to a position group, or "" when no
// assignment exists.
func CoachFor(position string) string {
	return positionCoaches[position]
}

// EffectivePosition picks a player's working position: primary if set, else
// offense position, else defense position.
func EffectivePosition(primary, offense, defense string) string {
	if primary != "" {
		return primary
	}
	if offense != "" {
		return offense
	}
	return defense
}
