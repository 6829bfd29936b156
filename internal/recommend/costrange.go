package recommend

import (
	"strconv"
	"strings"
)

// Separators tried in order when splitting a range string. The en-dash comes
// first because it is what the catalog editor emits.
var rangeSeparators = []string{"–", "-", "to"}

// ParseCostRange extracts a numeric range from strings like "$1,000–$3,000",
// "$500" or "100 to 500". Currency symbols and thousands separators are
// stripped before parsing. Unparseable or empty input yields the (0,0)
// unknown sentinel; this function never fails.
func ParseCostRange(s string) CostRange {
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return CostRange{}
	}

	for _, sep := range rangeSeparators {
		if !strings.Contains(s, sep) {
			continue
		}
		parts := strings.Split(s, sep)
		if len(parts) != 2 {
			continue
		}
		minVal, errMin := strconv.Atoi(strings.TrimSpace(parts[0]))
		maxVal, errMax := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errMin != nil || errMax != nil {
			// A separator that does not yield two integers is not a
			// range separator here; try the next one.
			continue
		}
		return CostRange{Min: minVal, Max: maxVal}
	}

	if v, err := strconv.Atoi(s); err == nil {
		return CostRange{Min: v, Max: v}
	}

	return CostRange{}
}
