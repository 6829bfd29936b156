package ai

import "context"

// SkillMatchRequest carries everything a provider needs to judge how well a
// user's experience transfers to one business opportunity. Description is
// already truncated by the caller.
type SkillMatchRequest struct {
	Background     string
	Skills         []string
	WillingToLearn string
	Title          string
	Industries     []string
	Description    string
}

// Oracle estimates a skill-match score in [0,1] for a single candidate.
// Implementations are advisory: any error (transport, timeout, unparseable
// response) makes the caller fall back to deterministic keyword matching.
type Oracle interface {
	ScoreSkillMatch(ctx context.Context, req *SkillMatchRequest) (float64, error)
}
