package gemini

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/lanewaylabs/bizmatch/internal/ai"
	"github.com/lanewaylabs/bizmatch/internal/util"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	defaultTimeout      = 15 * time.Second
)

// Matcher asks Gemini for a single skill-match score. It implements
// ai.Oracle; callers treat every returned error as a fallback trigger, so
// the matcher reports problems instead of papering over them.
type Matcher struct {
	generator contentGenerator
	logger    *zap.Logger
	timeout   time.Duration
	maxLogLen int
}

// NewMatcher builds a Matcher around the given generator. Zero timeout and
// log-length values fall back to defaults.
func NewMatcher(generator contentGenerator, logger *zap.Logger, timeout time.Duration, maxLogLength int) *Matcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Matcher{
		generator: generator,
		logger:    logger,
		timeout:   timeout,
		maxLogLen: maxLogLength,
	}
}

// ScoreSkillMatch renders the prompt, queries the model under the configured
// timeout and parses the response as one decimal in [0,1].
func (m *Matcher) ScoreSkillMatch(ctx context.Context, req *ai.SkillMatchRequest) (float64, error) {
	if req == nil {
		return 0, fmt.Errorf("skill match request is required")
	}

	prompt := buildPrompt(req)

	m.logger.Debug("gemini skill match request",
		zap.String("business_title", req.Title),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, m.maxLogLen)),
	)

	callCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	raw, err := m.generator.GenerateContent(callCtx, prompt)
	if err != nil {
		return 0, err
	}

	m.logger.Debug("gemini skill match response",
		zap.String("business_title", req.Title),
		zap.String("response_preview", util.TruncateForLog(raw, m.maxLogLen)),
	)

	return parseScore(raw)
}

func buildPrompt(req *ai.SkillMatchRequest) string {
	skills := "None specified"
	if len(req.Skills) > 0 {
		skills = strings.Join(req.Skills, ", ")
	}

	industries := "Various"
	if len(req.Industries) > 0 {
		industries = strings.Join(req.Industries, ", ")
	}

	description := req.Description
	if strings.TrimSpace(description) == "" {
		description = "No description available"
	}

	replacer := strings.NewReplacer(
		"{{BACKGROUND}}", req.Background,
		"{{SKILLS}}", skills,
		"{{WILLING_TO_LEARN}}", req.WillingToLearn,
		"{{TITLE}}", req.Title,
		"{{INDUSTRIES}}", industries,
		"{{DESCRIPTION}}", description,
	)

	return replacer.Replace(promptTemplate)
}

// parseScore accepts a bare decimal, possibly wrapped in markdown fences or
// backticks. Anything else, including out-of-range values, is an error.
func parseScore(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx != -1 {
			cleaned = cleaned[:idx]
		}
	}
	cleaned = strings.Trim(cleaned, "` \n")

	score, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse gemini score %q: %w", util.TruncateForLog(raw, 40), err)
	}

	// ParseFloat accepts "NaN", which a range comparison alone lets through.
	if math.IsNaN(score) || score < 0 || score > 1 {
		return 0, fmt.Errorf("gemini score %v out of range [0,1]", score)
	}

	return score, nil
}
