package recommend

import "math"

// Every scorer in this file is pure and total: unknown or missing input
// degrades to a documented neutral score, never to an error.

// Hours tiers as collected by the quiz.
var weeklyHoursByTier = map[int]float64{0: 5, 1: 10, 2: 20, 3: 30}

// Weekly hours a business typically needs, keyed by its skill level label.
var requiredHoursByLevel = map[string]float64{
	"Beginner":                 10,
	"Intermediate":             15,
	"Beginner to Intermediate": 12,
	"Advanced":                 20,
}

// Industry sets used by the schedule, tech and task scorers. Matching is by
// exact industry tag, mirroring how blueprints are labeled in the catalog.
var (
	weekendIndustries  = []string{"Events", "Event Planning", "Street Vending", "Hospitality"}
	flexibleIndustries = []string{"E-Commerce", "Print-on-Demand", "Technology", "Online Services"}
	weekdayIndustries  = []string{"B2B Services", "Automotive", "Consulting"}

	highTechIndustries     = []string{"E-Commerce", "Technology", "Print-on-Demand", "Digital Services", "AI"}
	moderateTechIndustries = []string{"Marketing", "Retail", "Hospitality", "Consulting"}
	lowTechIndustries      = []string{"Street Vending", "Food & Beverage", "Physical Services", "Cleaning"}

	preferredIndustriesByTask = map[string][]string{
		"creative":   {"E-Commerce", "Marketing", "Apparel", "Technology", "Design", "Content"},
		"structured": {"B2B Services", "Automotive", "Maintenance", "Cleaning", "Bookkeeping"},
		"analytical": {"Technology", "Retail", "E-Commerce", "Data", "Consulting"},
		"social":     {"Events", "Hospitality", "Street Vending", "Sales", "Coaching"},
	}
)

// The five-point ordinal risk scale shared by user levels and business
// risk buckets.
var riskLevels = []string{"very_low", "low", "moderate", "high", "very_high"}

func riskLevelIndex(level string) int {
	for i, l := range riskLevels {
		if l == level {
			return i
		}
	}
	return 2 // moderate
}

func anyIndustryIn(industries, set []string) bool {
	return countIndustriesIn(industries, set) > 0
}

func countIndustriesIn(industries, set []string) int {
	count := 0
	for _, ind := range industries {
		for _, s := range set {
			if ind == s {
				count++
				break
			}
		}
	}
	return count
}

// scoreStartupCost rates affordability of the business against the user's
// budget. An unknown cost range scores 0.8: most catalog entries without
// cost data are low-investment.
func scoreStartupCost(budget int, cost CostRange) float64 {
	if cost.Unknown() {
		return 0.8
	}

	b := float64(budget)
	switch {
	case b >= cost.Avg():
		return 1.0
	case b >= float64(cost.Min):
		return 0.7
	case b >= float64(cost.Min)*0.5:
		return 0.4
	default:
		return 0.1
	}
}

// scoreTimeCommitment compares the user's available hours with what the
// business skill level implies. Unknown tiers default to 10h/week, unknown
// skill levels to 15h/week required.
func scoreTimeCommitment(hoursTier int, skillLevel string) float64 {
	actual, ok := weeklyHoursByTier[hoursTier]
	if !ok {
		actual = 10
	}

	required, ok := requiredHoursByLevel[skillLevel]
	if !ok {
		required = 15
	}

	switch {
	case actual >= required*1.5:
		return 1.0
	case actual >= required:
		return 0.9
	case actual >= required*0.7:
		return 0.6
	default:
		return 0.3
	}
}

// scoreScheduleFit checks the user's availability window against industries
// that tend to demand specific schedules.
func scoreScheduleFit(schedule string, industries []string) float64 {
	if len(industries) == 0 {
		return 0.7
	}

	switch schedule {
	case "flexible":
		return 1.0
	case "weekends":
		if anyIndustryIn(industries, weekendIndustries) {
			return 0.9
		}
		return 0.5
	case "weekdays":
		if anyIndustryIn(industries, weekdayIndustries) {
			return 0.9
		}
		return 0.6
	case "evenings":
		if anyIndustryIn(industries, flexibleIndustries) {
			return 0.8
		}
		return 0.5
	case "early":
		return 0.7
	}

	return 0.6
}

// scoreRiskTolerance aligns the user's declared risk appetite with a
// business risk bucket derived from estimated months to break even.
func scoreRiskTolerance(userRisk string, profit, cost CostRange) float64 {
	if profit.Min == 0 || cost.Min == 0 {
		return 0.6
	}

	monthsToBreakEven := 12.0
	if profit.Avg() > 0 {
		monthsToBreakEven = cost.Avg() / profit.Avg()
	}

	var businessRisk string
	switch {
	case monthsToBreakEven <= 1:
		businessRisk = "low"
	case monthsToBreakEven <= 3:
		businessRisk = "moderate"
	case monthsToBreakEven <= 6:
		businessRisk = "high"
	default:
		businessRisk = "very_high"
	}

	diff := int(math.Abs(float64(riskLevelIndex(userRisk) - riskLevelIndex(businessRisk))))
	switch diff {
	case 0:
		return 1.0
	case 1:
		return 0.7
	case 2:
		return 0.4
	default:
		return 0.2
	}
}

// scoreTechComfort classifies the business on a 1-3 tech scale by industry
// membership and compares it with the user's comfort level.
func scoreTechComfort(userTech string, industries []string) float64 {
	if len(industries) == 0 {
		return 0.7
	}

	businessLevel := 2
	switch {
	case anyIndustryIn(industries, highTechIndustries):
		businessLevel = 3
	case anyIndustryIn(industries, moderateTechIndustries):
		businessLevel = 2
	case anyIndustryIn(industries, lowTechIndustries):
		businessLevel = 1
	}

	userLevel := 2
	switch userTech {
	case "very":
		userLevel = 3
	case "moderate":
		userLevel = 2
	case "minimal":
		userLevel = 1
	case "none":
		userLevel = 0
	}

	switch int(math.Abs(float64(userLevel - businessLevel))) {
	case 0:
		return 1.0
	case 1:
		return 0.7
	case 2:
		return 0.4
	default:
		return 0.1
	}
}

// scoreTaskPreference counts overlaps between the preferred-industry set for
// the user's task style and the business industries. "mixed" and anything
// unrecognized score a flat 0.8.
func scoreTaskPreference(preference string, industries []string) float64 {
	if len(industries) == 0 {
		return 0.7
	}

	preferred, ok := preferredIndustriesByTask[preference]
	if !ok {
		return 0.8
	}

	switch countIndustriesIn(industries, preferred) {
	case 0:
		return 0.4
	case 1:
		return 0.7
	default:
		return 1.0
	}
}
