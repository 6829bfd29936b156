package recommend

import (
	"strings"
	"unicode/utf8"
)

// avoidanceNone is the quiz answer meaning "nothing to avoid".
const avoidanceNone = "none"

// How much of the description participates in avoidance matching.
const avoidanceDescriptionLimit = 200

// clipRunes cuts the string to at most limit characters, never splitting a
// multi-byte rune.
func clipRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// Terms that conflict with each avoidance tag a user can declare. Matching
// is case-insensitive substring search over industries, title and the start
// of the description.
var avoidanceConflicts = map[string][]string{
	"door":     {"Sales", "Door-to-Door", "door-to-door", "canvassing"},
	"heavy":    {"Physical Services", "Heavy Labor", "Construction", "Moving", "labor"},
	"nights":   {"Street Vending", "Events", "late night", "nightclub"},
	"delivery": {"Delivery", "Mobile Services", "courier", "food delivery"},
	"children": {"Child Care", "Education", "Kids", "Tutoring", "children"},
}

// PassesAvoidance reports whether the opportunity survives the user's hard
// exclusions. It is a gate applied before any scoring: a false result means
// the candidate gets a zero total and no breakdown.
func PassesAvoidance(avoidances []string, opp *Opportunity) bool {
	if len(avoidances) == 0 {
		return true
	}
	for _, a := range avoidances {
		if a == avoidanceNone {
			return true
		}
	}

	var blob strings.Builder
	blob.WriteString(strings.Join(opp.Industries, " "))
	blob.WriteString(" ")
	blob.WriteString(opp.Title)
	if opp.Description != "" {
		blob.WriteString(" ")
		blob.WriteString(clipRunes(opp.Description, avoidanceDescriptionLimit))
	}
	text := strings.ToLower(blob.String())

	for _, avoidance := range avoidances {
		for _, term := range avoidanceConflicts[avoidance] {
			if strings.Contains(text, strings.ToLower(term)) {
				return false
			}
		}
	}

	return true
}
