package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lanewaylabs/bizmatch/internal/ai"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testRequest() *ai.SkillMatchRequest {
	return &ai.SkillMatchRequest{
		Background:     "Former barista with retail experience",
		Skills:         []string{"customer service", "latte art"},
		WillingToLearn: "yes",
		Title:          "Mobile Coffee Cart",
		Industries:     []string{"Food & Beverage", "Street Vending"},
		Description:    "Serve specialty coffee at events and markets.",
	}
}

func TestScoreSkillMatch(t *testing.T) {
	cases := []struct {
		name     string
		response string
		want     float64
		wantErr  bool
	}{
		{name: "bare decimal", response: "0.75", want: 0.75},
		{name: "decimal with whitespace", response: "  0.6\n", want: 0.6},
		{name: "fenced decimal", response: "```\n0.6\n```", want: 0.6},
		{name: "backticked decimal", response: "`0.85`", want: 0.85},
		{name: "boundary zero", response: "0.0", want: 0.0},
		{name: "boundary one", response: "1.0", want: 1.0},
		{name: "prose instead of a number", response: "The match is strong.", wantErr: true},
		{name: "above range", response: "1.5", wantErr: true},
		{name: "below range", response: "-0.2", wantErr: true},
		{name: "not a number literal", response: "NaN", wantErr: true},
		{name: "infinity", response: "+Inf", wantErr: true},
		{name: "empty response", response: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			matcher := NewMatcher(&stubGenerator{response: tc.response}, nil, time.Second, 0)

			got, err := matcher.ScoreSkillMatch(context.Background(), testRequest())
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error for %q, got score %v", tc.response, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("score = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScoreSkillMatchGeneratorError(t *testing.T) {
	genErr := errors.New("quota exceeded")
	matcher := NewMatcher(&stubGenerator{err: genErr}, nil, time.Second, 0)

	_, err := matcher.ScoreSkillMatch(context.Background(), testRequest())
	if !errors.Is(err, genErr) {
		t.Fatalf("expected generator error to propagate, got %v", err)
	}
}

func TestScoreSkillMatchNilRequest(t *testing.T) {
	matcher := NewMatcher(&stubGenerator{response: "0.5"}, nil, 0, 0)
	if _, err := matcher.ScoreSkillMatch(context.Background(), nil); err == nil {
		t.Fatal("expected an error for a nil request")
	}
}

func TestBuildPromptSubstitution(t *testing.T) {
	gen := &stubGenerator{response: "0.5"}
	matcher := NewMatcher(gen, nil, time.Second, 0)

	if _, err := matcher.ScoreSkillMatch(context.Background(), testRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Former barista with retail experience",
		"customer service, latte art",
		"Mobile Coffee Cart",
		"Food & Beverage, Street Vending",
		"Serve specialty coffee at events and markets.",
	} {
		if !strings.Contains(gen.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(gen.prompt, "{{") {
		t.Errorf("prompt has unsubstituted placeholders:\n%s", gen.prompt)
	}
}

func TestBuildPromptDefaults(t *testing.T) {
	gen := &stubGenerator{response: "0.5"}
	matcher := NewMatcher(gen, nil, time.Second, 0)

	req := &ai.SkillMatchRequest{Title: "Mystery Venture"}
	if _, err := matcher.ScoreSkillMatch(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"None specified", "Various", "No description available"} {
		if !strings.Contains(gen.prompt, want) {
			t.Errorf("prompt missing default %q", want)
		}
	}
}
