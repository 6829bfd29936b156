package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Factor names, in evaluation order. The order is fixed so that explanation
// generation is deterministic when factors tie.
const (
	FactorStartupCost    = "startup_cost"
	FactorTimeCommitment = "time_commitment"
	FactorSkillMatch     = "skill_match"
	FactorScheduleFit    = "schedule_fit"
	FactorRiskTolerance  = "risk_tolerance"
	FactorTechComfort    = "tech_comfort"
	FactorTaskPreference = "task_preference"
)

var factorOrder = []string{
	FactorStartupCost,
	FactorTimeCommitment,
	FactorSkillMatch,
	FactorScheduleFit,
	FactorRiskTolerance,
	FactorTechComfort,
	FactorTaskPreference,
}

// Weights combines the seven factor scores into one total. They sum to 1.00
// exactly; changing one means rebalancing the rest.
var Weights = map[string]float64{
	FactorStartupCost:    0.25,
	FactorTimeCommitment: 0.20,
	FactorSkillMatch:     0.20,
	FactorScheduleFit:    0.10,
	FactorRiskTolerance:  0.10,
	FactorTechComfort:    0.08,
	FactorTaskPreference: 0.07,
}

const conflictReason = "Conflicts with user preferences"

// ScoreOpportunity runs the avoidance gate and, when it passes, all seven
// factor scorers for a single candidate. A gated candidate short-circuits
// with a zero total and an empty breakdown; its scorers are never invoked.
func (r *Ranker) ScoreOpportunity(ctx context.Context, profile *UserProfile, opp *Opportunity, useOracle bool) Recommendation {
	rec := Recommendation{
		BusinessID:      opp.ID,
		BusinessTitle:   opp.Title,
		EstimatedProfit: opp.EstimatedMonthlyProfit,
		StartupCost:     opp.StartupCost,
		ThumbnailURL:    opp.ThumbnailURL,
		VideoLink:       opp.VideoLink,
		Summary:         opp.Summary,
	}

	if !PassesAvoidance(profile.Avoidances, opp) {
		rec.TotalScore = 0.0
		rec.MatchReason = conflictReason
		rec.Breakdown = Breakdown{}
		return rec
	}

	cost := ParseCostRange(opp.StartupCost)
	profit := ParseCostRange(opp.EstimatedMonthlyProfit)

	scores := map[string]float64{
		FactorStartupCost:    scoreStartupCost(profile.InvestmentBudget, cost),
		FactorTimeCommitment: scoreTimeCommitment(profile.WeeklyHours, opp.SkillLevel),
		FactorSkillMatch:     r.scoreSkillMatch(ctx, profile, opp, useOracle),
		FactorScheduleFit:    scoreScheduleFit(profile.WorkSchedule, opp.Industries),
		FactorRiskTolerance:  scoreRiskTolerance(profile.RiskTolerance, profit, cost),
		FactorTechComfort:    scoreTechComfort(profile.TechComfort, opp.Industries),
		FactorTaskPreference: scoreTaskPreference(profile.TaskPreference, opp.Industries),
	}

	total := 0.0
	breakdown := make(Breakdown, len(scores))
	for _, name := range factorOrder {
		total += scores[name] * Weights[name]
		breakdown[name] = round2(scores[name])
	}

	rec.TotalScore = round3(total)
	rec.MatchReason = matchReason(scores)
	rec.Breakdown = breakdown
	return rec
}

// matchReason names the strongest factors. Factors above 0.7 among the top
// three become "strong match" mentions; without any, the fit is reported as
// moderate.
func matchReason(scores map[string]float64) string {
	ordered := make([]string, len(factorOrder))
	copy(ordered, factorOrder)
	sort.SliceStable(ordered, func(i, j int) bool {
		return scores[ordered[i]] > scores[ordered[j]]
	})

	var strong []string
	for _, name := range ordered[:3] {
		if scores[name] > 0.7 {
			strong = append(strong, strings.ReplaceAll(name, "_", " "))
		}
	}

	if len(strong) == 0 {
		return "Moderate fit overall"
	}
	return fmt.Sprintf("Strong match in: %s", strings.Join(strong, ", "))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
