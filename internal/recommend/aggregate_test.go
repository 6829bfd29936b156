package recommend

import (
	"context"
	"math"
	"testing"
)

func TestWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, name := range factorOrder {
		w, ok := Weights[name]
		if !ok {
			t.Fatalf("factor %q has no weight", name)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("weights sum to %v, want 1.0", sum)
	}
	if len(Weights) != len(factorOrder) {
		t.Fatalf("got %d weights for %d factors", len(Weights), len(factorOrder))
	}
}

func TestScoreOpportunity(t *testing.T) {
	ranker := NewRanker(nil, nil)

	profile := &UserProfile{
		WeeklyHours:      2,
		InvestmentBudget: 1000,
		WorkSchedule:     "flexible",
		RiskTolerance:    "moderate",
		TechComfort:      "very",
		Background:       "Software developer with 5 years experience",
		Skills:           []string{"web_development", "programming"},
		TaskPreference:   "creative",
	}
	opp := &Opportunity{
		ID:                     "biz-1",
		Title:                  "AI-Powered T-Shirt Business",
		StartupCost:            "$100 - $500",
		EstimatedMonthlyProfit: "$1,000 - $3,000",
		SkillLevel:             "Beginner",
		Industries:             []string{"E-Commerce", "Apparel", "Print-on-Demand", "Technology"},
	}

	rec := ranker.ScoreOpportunity(context.Background(), profile, opp, false)

	if rec.BusinessID != "biz-1" || rec.BusinessTitle != opp.Title {
		t.Fatalf("identity fields not carried: %+v", rec)
	}
	if rec.StartupCost != opp.StartupCost || rec.EstimatedProfit != opp.EstimatedMonthlyProfit {
		t.Fatalf("cost fields not carried: %+v", rec)
	}
	if rec.TotalScore != 0.77 {
		t.Fatalf("total score = %v, want 0.77", rec.TotalScore)
	}
	if want := "Strong match in: startup cost, time commitment, schedule fit"; rec.MatchReason != want {
		t.Fatalf("match reason = %q, want %q", rec.MatchReason, want)
	}

	wantBreakdown := Breakdown{
		FactorStartupCost:    1.0,
		FactorTimeCommitment: 1.0,
		FactorSkillMatch:     0.0,
		FactorScheduleFit:    1.0,
		FactorRiskTolerance:  0.7,
		FactorTechComfort:    1.0,
		FactorTaskPreference: 1.0,
	}
	if len(rec.Breakdown) != len(wantBreakdown) {
		t.Fatalf("breakdown has %d entries, want %d", len(rec.Breakdown), len(wantBreakdown))
	}
	for name, want := range wantBreakdown {
		if got := rec.Breakdown[name]; got != want {
			t.Errorf("breakdown[%s] = %v, want %v", name, got, want)
		}
	}
}

func TestScoreOpportunityModerateFit(t *testing.T) {
	ranker := NewRanker(nil, nil)

	profile := &UserProfile{
		WeeklyHours:      0,
		InvestmentBudget: 100,
		WorkSchedule:     "weekends",
		RiskTolerance:    "very_low",
		TechComfort:      "none",
		TaskPreference:   "structured",
	}
	opp := &Opportunity{
		ID:          "biz-2",
		Title:       "Drop Shipping Empire",
		StartupCost: "$400 - $600",
		SkillLevel:  "Advanced",
		Industries:  []string{"E-Commerce"},
	}

	rec := ranker.ScoreOpportunity(context.Background(), profile, opp, false)
	if rec.MatchReason != "Moderate fit overall" {
		t.Fatalf("match reason = %q, want moderate fit", rec.MatchReason)
	}
}

func TestScoreOpportunityAvoidanceShortCircuit(t *testing.T) {
	oracle := &stubOracle{score: 0.9}
	ranker := NewRanker(oracle, nil)

	profile := &UserProfile{
		InvestmentBudget: 10000,
		Avoidances:       []string{"delivery"},
	}
	opp := &Opportunity{
		ID:         "biz-3",
		Title:      "Courier Network",
		Industries: []string{"Delivery"},
	}

	rec := ranker.ScoreOpportunity(context.Background(), profile, opp, true)

	if rec.TotalScore != 0.0 {
		t.Fatalf("gated candidate score = %v, want 0.0", rec.TotalScore)
	}
	if rec.MatchReason != conflictReason {
		t.Fatalf("gated candidate reason = %q, want %q", rec.MatchReason, conflictReason)
	}
	if rec.Breakdown == nil || len(rec.Breakdown) != 0 {
		t.Fatalf("gated candidate breakdown = %v, want empty", rec.Breakdown)
	}
	if oracle.calls != 0 {
		t.Fatalf("oracle invoked for a gated candidate: %d calls", oracle.calls)
	}
}

func TestBreakdownRounding(t *testing.T) {
	if got := round2(0.777); got != 0.78 {
		t.Errorf("round2(0.777) = %v, want 0.78", got)
	}
	if got := round3(0.7777); got != 0.778 {
		t.Errorf("round3(0.7777) = %v, want 0.778", got)
	}
}
