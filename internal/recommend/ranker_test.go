package recommend

import (
	"context"
	"testing"
)

func rankProfile() *UserProfile {
	return &UserProfile{
		WeeklyHours:      3,
		InvestmentBudget: 1000,
		WorkSchedule:     "flexible",
		RiskTolerance:    "moderate",
		TechComfort:      "very",
		TaskPreference:   "mixed",
		Avoidances:       []string{"delivery"},
	}
}

func techOpportunity(id, startupCost string) Opportunity {
	return Opportunity{
		ID:                     id,
		Title:                  "Automation Agency",
		StartupCost:            startupCost,
		EstimatedMonthlyProfit: "$1,000",
		SkillLevel:             "Beginner",
		Industries:             []string{"Technology"},
	}
}

func TestRank(t *testing.T) {
	ranker := NewRanker(nil, nil)

	catalog := []Opportunity{
		techOpportunity("weak", "$5,000 - $6,000"),
		techOpportunity("a", "$100 - $200"),
		techOpportunity("b", "$100 - $200"),
		techOpportunity("c", "$100 - $200"),
		{
			ID:         "blocked",
			Title:      "Courier Network",
			Industries: []string{"Delivery"},
		},
	}

	result := ranker.Rank(context.Background(), rankProfile(), catalog, Options{
		Limit:    2,
		MinScore: 0.6,
	})

	if result.TotalAnalyzed != 5 {
		t.Fatalf("analyzed = %d, want 5", result.TotalAnalyzed)
	}
	if result.TotalMatches != 2 {
		t.Fatalf("matches = %d, want 2", result.TotalMatches)
	}
	if len(result.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(result.Recommendations))
	}

	// Ties keep catalog order, so a and b survive the limit, not c.
	if result.Recommendations[0].BusinessID != "a" || result.Recommendations[1].BusinessID != "b" {
		t.Fatalf("unexpected order: %s, %s",
			result.Recommendations[0].BusinessID, result.Recommendations[1].BusinessID)
	}
	if result.Recommendations[0].TotalScore != 0.756 {
		t.Fatalf("top score = %v, want 0.756", result.Recommendations[0].TotalScore)
	}
}

func TestRankThreshold(t *testing.T) {
	ranker := NewRanker(nil, nil)

	catalog := []Opportunity{
		techOpportunity("weak", "$5,000 - $6,000"),
	}

	result := ranker.Rank(context.Background(), rankProfile(), catalog, Options{MinScore: 0.6})
	if result.TotalMatches != 0 || len(result.Recommendations) != 0 {
		t.Fatalf("weak candidate survived the threshold: %+v", result)
	}

	// The same candidate passes with the default minimum.
	result = ranker.Rank(context.Background(), rankProfile(), catalog, Options{MinScore: DefaultMinScore})
	if result.TotalMatches != 1 {
		t.Fatalf("matches = %d, want 1", result.TotalMatches)
	}
	if result.Recommendations[0].TotalScore != 0.531 {
		t.Fatalf("score = %v, want 0.531", result.Recommendations[0].TotalScore)
	}
}

func TestRankDefaultLimit(t *testing.T) {
	ranker := NewRanker(nil, nil)

	catalog := make([]Opportunity, DefaultLimit+5)
	for i := range catalog {
		catalog[i] = techOpportunity(string(rune('a'+i)), "$100 - $200")
	}

	result := ranker.Rank(context.Background(), rankProfile(), catalog, Options{})
	if len(result.Recommendations) != DefaultLimit {
		t.Fatalf("got %d recommendations, want the default limit %d",
			len(result.Recommendations), DefaultLimit)
	}
}

func TestRankSortsDescending(t *testing.T) {
	ranker := NewRanker(nil, nil)

	catalog := []Opportunity{
		techOpportunity("cheap-last", "$5,000 - $6,000"),
		techOpportunity("best", "$100 - $200"),
	}

	result := ranker.Rank(context.Background(), rankProfile(), catalog, Options{MinScore: 0.3})
	if result.Recommendations[0].BusinessID != "best" {
		t.Fatalf("expected best candidate first, got %s", result.Recommendations[0].BusinessID)
	}
	if result.Recommendations[0].TotalScore <= result.Recommendations[1].TotalScore {
		t.Fatalf("scores not descending: %v then %v",
			result.Recommendations[0].TotalScore, result.Recommendations[1].TotalScore)
	}
}

func TestRankEmptyCatalog(t *testing.T) {
	ranker := NewRanker(nil, nil)

	result := ranker.Rank(context.Background(), rankProfile(), nil, Options{})
	if result.TotalAnalyzed != 0 || result.TotalMatches != 0 {
		t.Fatalf("empty catalog counts: %+v", result)
	}
	if result.Recommendations == nil {
		t.Fatal("recommendations slice must be non-nil")
	}
}
