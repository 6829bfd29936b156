package recommend

import (
	"strings"
	"testing"
)

func TestPassesAvoidance(t *testing.T) {
	cases := []struct {
		name       string
		avoidances []string
		opp        Opportunity
		want       bool
	}{
		{
			name:       "no avoidances",
			avoidances: nil,
			opp:        Opportunity{Title: "Moving Company", Industries: []string{"Heavy Labor"}},
			want:       true,
		},
		{
			name:       "none disables the filter",
			avoidances: []string{"none"},
			opp:        Opportunity{Title: "Moving Company", Industries: []string{"Heavy Labor"}},
			want:       true,
		},
		{
			name:       "delivery industry conflicts",
			avoidances: []string{"delivery"},
			opp:        Opportunity{Title: "Local Courier", Industries: []string{"Delivery"}},
			want:       false,
		},
		{
			name:       "conflict found in title",
			avoidances: []string{"door"},
			opp:        Opportunity{Title: "Door-to-Door Sales Kit", Industries: []string{"Retail"}},
			want:       false,
		},
		{
			name:       "conflict found in description",
			avoidances: []string{"heavy"},
			opp:        Opportunity{Title: "Outdoor Crew", Description: "Daily manual labor on site"},
			want:       false,
		},
		{
			name:       "conflict beyond description window is ignored",
			avoidances: []string{"heavy"},
			opp: Opportunity{
				Title:       "Quiet Office Gig",
				Description: strings.Repeat("calm paperwork ", 20) + "construction",
			},
			want: true,
		},
		{
			name:       "window counts characters, not bytes",
			avoidances: []string{"heavy"},
			opp: Opportunity{
				Title:       "Atelier",
				Description: strings.Repeat("é", 195) + "labor",
			},
			want: false,
		},
		{
			name:       "unknown avoidance tag has no conflicts",
			avoidances: []string{"spiders"},
			opp:        Opportunity{Title: "Exotic Pet Store", Industries: []string{"Retail"}},
			want:       true,
		},
		{
			name:       "clean candidate passes",
			avoidances: []string{"heavy", "delivery"},
			opp:        Opportunity{Title: "Print Shop", Industries: []string{"Print-on-Demand"}},
			want:       true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PassesAvoidance(tc.avoidances, &tc.opp); got != tc.want {
				t.Fatalf("PassesAvoidance(%v, %q) = %v, want %v", tc.avoidances, tc.opp.Title, got, tc.want)
			}
		})
	}
}
