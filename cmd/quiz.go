package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lanewaylabs/bizmatch/internal/recommend"
)

var quizUserID string

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Answer the onboarding quiz and store the resulting profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		lg := newLogger()

		config, err := getConfig()
		if err != nil {
			return err
		}

		profile, err := runQuiz()
		if err != nil {
			return err
		}

		st, err := newStore(ctx, config, lg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		userID, err := st.SaveUserProfile(ctx, quizUserID, profile)
		if err != nil {
			return err
		}

		lg.Info("profile stored", zap.String("user_id", userID))
		fmt.Printf("Profile stored. User id: %s\n", userID)
		return nil
	},
}

func runQuiz() (*recommend.UserProfile, error) {
	profile := &recommend.UserProfile{}

	hoursTier, err := selectIndex("How many hours per week can you commit?",
		[]string{"About 5 hours", "About 10 hours", "About 20 hours", "30+ hours"})
	if err != nil {
		return nil, err
	}
	profile.WeeklyHours = hoursTier

	budget, err := promptNumber("How much can you invest upfront (USD)?")
	if err != nil {
		return nil, err
	}
	profile.InvestmentBudget = budget

	profile.WorkSchedule, err = selectValue("When are you available to work?",
		[]string{"flexible", "weekends", "weekdays", "evenings", "early"})
	if err != nil {
		return nil, err
	}

	profile.RiskTolerance, err = selectValue("How much financial risk are you comfortable with?",
		[]string{"very_low", "low", "moderate", "high", "very_high"})
	if err != nil {
		return nil, err
	}

	profile.TechComfort, err = selectValue("How comfortable are you with technology?",
		[]string{"none", "minimal", "moderate", "very"})
	if err != nil {
		return nil, err
	}

	profile.Background, err = promptText("Describe your professional background")
	if err != nil {
		return nil, err
	}

	skills, err := promptText("List your skills (comma separated)")
	if err != nil {
		return nil, err
	}
	profile.Skills = splitList(skills)

	profile.TaskPreference, err = selectValue("What kind of work do you prefer?",
		[]string{"creative", "structured", "analytical", "social", "mixed"})
	if err != nil {
		return nil, err
	}

	avoid, err := promptText("Anything to avoid? (door, heavy, nights, delivery, children, none; comma separated)")
	if err != nil {
		return nil, err
	}
	profile.Avoidances = splitList(avoid)
	if len(profile.Avoidances) == 0 {
		profile.Avoidances = []string{"none"}
	}

	profile.WillingToLearn, err = selectValue("Are you willing to learn new skills?",
		[]string{"yes", "possible", "no"})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func selectIndex(label string, items []string) (int, error) {
	idx, _, err := (&promptui.Select{Label: label, Items: items}).Run()
	return idx, err
}

func selectValue(label string, items []string) (string, error) {
	_, value, err := (&promptui.Select{Label: label, Items: items}).Run()
	return value, err
}

func promptText(label string) (string, error) {
	value, err := (&promptui.Prompt{Label: label}).Run()
	return strings.TrimSpace(value), err
}

func promptNumber(label string) (int, error) {
	validate := func(input string) error {
		v, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || v < 0 {
			return fmt.Errorf("enter a non-negative whole number")
		}
		return nil
	}

	value, err := (&promptui.Prompt{Label: label, Validate: validate}).Run()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(value))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	quizCmd.Flags().StringVar(&quizUserID, "user", "", "existing user id to overwrite (a new id is generated when empty)")
	rootCmd.AddCommand(quizCmd)
}
