package recommend

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/lanewaylabs/bizmatch/internal/ai"
)

// How much of the description is sent to the oracle.
const oracleDescriptionLimit = 400

// KeywordSkillMatch is the deterministic skill-match estimate used when the
// oracle is disabled or fails. Industry tags found verbatim in the
// background and skills found in the title or an industry tag are worth one
// match point each; title words longer than four characters that appear in
// the background are worth half a point. The score is min(1, 0.25 * points).
func KeywordSkillMatch(background string, skills []string, title string, industries []string) float64 {
	backgroundLower := strings.ToLower(background)
	titleLower := strings.ToLower(title)

	industriesLower := make([]string, 0, len(industries))
	for _, ind := range industries {
		industriesLower = append(industriesLower, strings.ToLower(ind))
	}

	var matches float64

	for _, ind := range industriesLower {
		if ind != "" && strings.Contains(backgroundLower, ind) {
			matches++
		}
	}

	for _, skill := range skills {
		skill = strings.ToLower(skill)
		if skill == "" {
			continue
		}
		if strings.Contains(titleLower, skill) {
			matches++
			continue
		}
		for _, ind := range industriesLower {
			if strings.Contains(ind, skill) {
				matches++
				break
			}
		}
	}

	for _, word := range strings.Fields(titleLower) {
		if len(word) > 4 && strings.Contains(backgroundLower, word) {
			matches += 0.5
		}
	}

	score := matches * 0.25
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// scoreSkillMatch asks the oracle when one is available and requested,
// falling back to KeywordSkillMatch on any failure. The fallback is part of
// the contract: an oracle error never fails the scoring run.
func (r *Ranker) scoreSkillMatch(ctx context.Context, profile *UserProfile, opp *Opportunity, useOracle bool) float64 {
	if !useOracle || r.oracle == nil {
		return KeywordSkillMatch(profile.Background, profile.Skills, opp.Title, opp.Industries)
	}

	desc := clipRunes(opp.Description, oracleDescriptionLimit)

	score, err := r.oracle.ScoreSkillMatch(ctx, &ai.SkillMatchRequest{
		Background:     profile.Background,
		Skills:         profile.Skills,
		WillingToLearn: profile.WillingToLearn,
		Title:          opp.Title,
		Industries:     opp.Industries,
		Description:    desc,
	})
	if err != nil {
		r.logger.Warn("skill match oracle failed, using keyword fallback",
			zap.String("business_id", opp.ID),
			zap.Error(err),
		)
		return KeywordSkillMatch(profile.Background, profile.Skills, opp.Title, opp.Industries)
	}

	if math.IsNaN(score) {
		r.logger.Warn("skill match oracle returned NaN, using keyword fallback",
			zap.String("business_id", opp.ID),
		)
		return KeywordSkillMatch(profile.Background, profile.Skills, opp.Title, opp.Industries)
	}

	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}
