package recommend

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lanewaylabs/bizmatch/internal/ai"
)

const (
	// DefaultLimit caps how many recommendations a run returns when the
	// caller does not say otherwise.
	DefaultLimit = 10
	// DefaultMinScore drops weak matches from the result.
	DefaultMinScore = 0.3

	defaultConcurrency = 4
)

// Options tunes a single ranking run.
type Options struct {
	Limit     int
	MinScore  float64
	UseOracle bool
}

// Ranker scores a catalog of opportunities against one user profile. The
// oracle is injected by the composition layer and may be nil, in which case
// skill matching always uses the keyword fallback.
type Ranker struct {
	oracle      ai.Oracle
	logger      *zap.Logger
	concurrency int
}

// NewRanker builds a Ranker. A nil logger is replaced with a no-op one.
func NewRanker(oracle ai.Oracle, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{
		oracle:      oracle,
		logger:      logger,
		concurrency: defaultConcurrency,
	}
}

// Rank scores every candidate, keeps those at or above the minimum score,
// sorts them by total score descending and truncates to the limit. Equal
// scores keep their original catalog order. Candidates are scored
// concurrently; only the skill-match oracle call can block.
func (r *Ranker) Rank(ctx context.Context, profile *UserProfile, catalog []Opportunity, opts Options) *Result {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	scored := make([]Recommendation, len(catalog))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i := range catalog {
		g.Go(func() error {
			scored[i] = r.ScoreOpportunity(gctx, profile, &catalog[i], opts.UseOracle)
			return nil
		})
	}
	// Scoring never returns an error; the group is used only for the
	// bounded fan-out.
	_ = g.Wait()

	kept := make([]Recommendation, 0, len(scored))
	for _, rec := range scored {
		if rec.TotalScore >= opts.MinScore {
			kept = append(kept, rec)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].TotalScore > kept[j].TotalScore
	})

	if len(kept) > opts.Limit {
		kept = kept[:opts.Limit]
	}

	r.logger.Info("ranking completed",
		zap.Int("analyzed", len(catalog)),
		zap.Int("matched", len(kept)),
		zap.Float64("min_score", opts.MinScore),
		zap.Bool("oracle", opts.UseOracle && r.oracle != nil),
	)

	return &Result{
		Recommendations: kept,
		TotalAnalyzed:   len(catalog),
		TotalMatches:    len(kept),
	}
}
