package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lanewaylabs/bizmatch/internal/recommend"
)

var (
	rankUserID      string
	rankProfileFile string
	rankCatalogFile string
	rankLimit       int
	rankMinScore    float64
	rankNoOracle    bool
	rankSave        bool
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the catalog for one user and print the recommendations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		lg := newLogger()

		config, err := getConfig()
		if err != nil {
			return err
		}

		var profile *recommend.UserProfile
		var catalog []recommend.Opportunity

		needsStore := rankProfileFile == "" || rankCatalogFile == "" || rankSave

		var st storeAccess
		if needsStore {
			pg, err := newStore(ctx, config, lg)
			if err != nil {
				return err
			}
			defer pg.Close()
			st = pg
		}

		switch {
		case rankProfileFile != "":
			profile = &recommend.UserProfile{}
			if err := readJSONFile(rankProfileFile, profile); err != nil {
				return fmt.Errorf("reading profile file: %w", err)
			}
		case rankUserID != "":
			profile, err = st.GetUserProfile(ctx, rankUserID)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("either --user or --profile is required")
		}

		if rankCatalogFile != "" {
			if err := readJSONFile(rankCatalogFile, &catalog); err != nil {
				return fmt.Errorf("reading catalog file: %w", err)
			}
		} else {
			catalog, err = st.ListPublishedOpportunities(ctx)
			if err != nil {
				return err
			}
		}

		if len(catalog) == 0 {
			return fmt.Errorf("the opportunity catalog is empty")
		}

		oracle, err := newOracle(ctx, config.AI, lg)
		if err != nil {
			lg.Warn("skill match oracle unavailable, keyword fallback only", zap.Error(err))
		}

		result := recommend.NewRanker(oracle, lg).Rank(ctx, profile, catalog, recommend.Options{
			Limit:     rankLimit,
			MinScore:  rankMinScore,
			UseOracle: !rankNoOracle,
		})

		if rankSave && rankUserID != "" {
			if err := st.SaveRecommendations(ctx, rankUserID, result); err != nil {
				lg.Warn("caching recommendations", zap.Error(err))
			}
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

// storeAccess is what rank needs from the store; nil when running purely
// from files.
type storeAccess interface {
	GetUserProfile(ctx context.Context, userID string) (*recommend.UserProfile, error)
	ListPublishedOpportunities(ctx context.Context) ([]recommend.Opportunity, error)
	SaveRecommendations(ctx context.Context, userID string, result *recommend.Result) error
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func init() {
	rankCmd.Flags().StringVar(&rankUserID, "user", "", "user id to rank for")
	rankCmd.Flags().StringVar(&rankProfileFile, "profile", "", "JSON file with a user profile (skips the database read)")
	rankCmd.Flags().StringVar(&rankCatalogFile, "catalog", "", "JSON file with the opportunity catalog (skips the database read)")
	rankCmd.Flags().IntVar(&rankLimit, "limit", recommend.DefaultLimit, "maximum number of recommendations")
	rankCmd.Flags().Float64Var(&rankMinScore, "min-score", recommend.DefaultMinScore, "minimum total score to keep")
	rankCmd.Flags().BoolVar(&rankNoOracle, "no-ai", false, "skip the skill match oracle and use keyword matching")
	rankCmd.Flags().BoolVar(&rankSave, "save", false, "cache the result in the database")
	rootCmd.AddCommand(rankCmd)
}
