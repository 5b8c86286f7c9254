// Package recruiting holds the pure recruiting-pipeline logic: canonical
// status resolution from free-form tags, position lookups, and the weekly
// report field shaping. Nothing in here touches the store.
package recruiting

import "strings"

// Canonical recruiting statuses, highest pipeline stage first.
const (
	StatusSigned             = "SIGNED"
	StatusCommittedElsewhere = "COMMITTED ELSEWHERE"
	StatusCommitted          = "COMMITTED"
	StatusOffered            = "OFFERED"
	StatusEvaluated          = "EVALUATED"
	StatusRecruit            = "RECRUIT"
	StatusPassed             = "PASSED"
	StatusWatching           = "WATCHING"
)

// statusPriority resolves conflicts when a player carries several tags: the
// first of these present in the normalized set wins.
var statusPriority = []string{
	StatusSigned,
	StatusCommittedElsewhere,
	StatusCommitted,
	StatusOffered,
	StatusEvaluated,
	StatusRecruit,
	StatusPassed,
	StatusWatching,
}

// statusSynonyms maps normalized free-form tags to canonical statuses.
// Unmapped tags pass through upper-cased verbatim.
var statusSynonyms = map[string]string{
	"offer":               StatusOffered,
	"offered":             StatusOffered,
	"interested":          StatusRecruit,
	"priority":            StatusRecruit,
	"recruit":             StatusRecruit,
	"not interested":      StatusPassed,
	"pass":                StatusPassed,
	"passed":              StatusPassed,
	"committed":           StatusCommitted,
	"commit":              StatusCommitted,
	"committed elsewhere": StatusCommittedElsewhere,
	"signed":              StatusSigned,
	"signed loi":          StatusSigned,
	"evaluate":            StatusEvaluated,
	"evaluating":          StatusEvaluated,
	"evaluated":           StatusEvaluated,
	"watch":               StatusWatching,
	"watching":            StatusWatching,
	"watch list":          StatusWatching,
}

// eligibleStatuses marks the pipeline stages that make a player
// recruit-pipeline eligible.
var eligibleStatuses = map[string]bool{
	StatusOffered:            true,
	StatusCommitted:          true,
	StatusCommittedElsewhere: true,
	StatusSigned:             true,
}

// IsEligibleStatus reports whether a canonical status marks a
// recruit-pipeline eligible stage.
func IsEligibleStatus(status string) bool {
	return eligibleStatuses[status]
}

// NormalizeTag maps one free-form status tag to its canonical form.
func NormalizeTag(tag string) string {
	key := strings.ToLower(strings.TrimSpace(tag))
	if canonical, ok := statusSynonyms[key]; ok {
		return canonical
	}
	return strings.ToUpper(strings.TrimSpace(tag))
}

// ResolveStatus resolves a player's unordered set of free-form status tags
// to one canonical status plus the recruit-pipeline eligibility flag.
//
// The highest-priority canonical value present wins regardless of input
// order. If no priority value is present the first normalized tag is
// returned verbatim. Empty input resolves to WATCHING, ineligible.
func ResolveStatus(tags []string) (string, bool) {
	if len(tags) == 0 {
		return StatusWatching, false
	}

	normalized := make([]string, 0, len(tags))
	present := make(map[string]bool, len(tags))
	eligible := false
	for _, tag := range tags {
		n := NormalizeTag(tag)
		normalized = append(normalized, n)
		present[n] = true
		if eligibleStatuses[n] {
			eligible = true
		}
	}

	for _, status := range statusPriority {
		if present[status] {
			return status, eligible
		}
	}

	// Fallback for tags outside the canonical vocabulary.
	return normalized[0], eligible
}
