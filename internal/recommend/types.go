package recommend

// UserProfile holds the answers collected by the onboarding quiz. It is
// treated as an immutable input for a single scoring run.
type UserProfile struct {
	// WeeklyHours is an ordinal tier: 0 => 5h, 1 => 10h, 2 => 20h, 3 => 30h per week.
	WeeklyHours      int      `json:"weekly_hours" mapstructure:"weekly_hours"`
	InvestmentBudget int      `json:"investment_budget" mapstructure:"investment_budget"`
	WorkSchedule     string   `json:"work_schedule" mapstructure:"work_schedule"`
	RiskTolerance    string   `json:"risk_tolerance" mapstructure:"risk_tolerance"`
	TechComfort      string   `json:"tech_comfort" mapstructure:"tech_comfort"`
	Background       string   `json:"background" mapstructure:"background"`
	Skills           []string `json:"skills" mapstructure:"skills"`
	TaskPreference   string   `json:"task_preference" mapstructure:"task_preference"`
	Avoidances       []string `json:"avoidances" mapstructure:"avoidances"`
	WillingToLearn   string   `json:"willing_to_learn" mapstructure:"willing_to_learn"`
}

// Opportunity is a single published business blueprint from the catalog.
// Cost and profit stay in their original string form; display fields are
// passed through to recommendations unchanged.
type Opportunity struct {
	ID                     string   `json:"id"`
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	StartupCost            string   `json:"startup_cost"`
	EstimatedMonthlyProfit string   `json:"estimated_monthly_profit"`
	SkillLevel             string   `json:"skill_level"`
	Industries             []string `json:"industry"`
	ThumbnailURL           string   `json:"thumbnail_url,omitempty"`
	VideoLink              string   `json:"video_link,omitempty"`
	Summary                string   `json:"summary,omitempty"`
}

// CostRange is the numeric form of a cost or profit string. Both fields are
// zero when the string could not be parsed; that sentinel means the value is
// unknown, not that the business is free.
type CostRange struct {
	Min int
	Max int
}

// Unknown reports whether the range carries no usable data.
func (r CostRange) Unknown() bool {
	return r.Min == 0 && r.Max == 0
}

// Avg returns the midpoint of the range.
func (r CostRange) Avg() float64 {
	return float64(r.Min+r.Max) / 2
}

// Breakdown maps factor names to their individual scores in [0,1].
type Breakdown map[string]float64

// Recommendation is one scored catalog entry as returned to callers.
type Recommendation struct {
	BusinessID      string    `json:"business_id"`
	BusinessTitle   string    `json:"business_title"`
	TotalScore      float64   `json:"total_score"`
	MatchReason     string    `json:"match_reason"`
	Breakdown       Breakdown `json:"breakdown"`
	EstimatedProfit string    `json:"estimated_profit"`
	StartupCost     string    `json:"startup_cost"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	VideoLink       string    `json:"video_link,omitempty"`
	Summary         string    `json:"summary,omitempty"`
}

// Result is the outcome of ranking a full catalog for one profile.
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	TotalAnalyzed   int              `json:"total_analyzed"`
	TotalMatches    int              `json:"total_matches"`
}
