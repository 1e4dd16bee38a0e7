package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"career-workers/internal/models"
	"career-workers/internal/profile"
)

//nolint:gochecknoglobals // Cobra boilerplate
var profileAnswers string

//nolint:gochecknoglobals // Cobra boilerplate
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Build a student profile from assessment answers",
	Long: `Folds a JSON object of question id to selected option index into an
interest, value and environment profile.

Example answers.json:
  {"q1": 0, "q2": 3, "q9": 1, "q11": 2, "q12": 0}`,
	RunE: runProfile,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVar(&profileAnswers, "answers", "", "assessment answers JSON file")
	_ = profileCmd.MarkFlagRequired("answers")
}

type profileReport struct {
	Profile   models.StudentProfile    `json:"profile"`
	TopRIASEC []models.RIASECDimension `json:"topRIASEC"`
	TopValue  models.ValueDimension    `json:"topValue"`
}

func runProfile(cmd *cobra.Command, _ []string) (err error) {
	answers := map[string]int{}
	err = readJSON(profileAnswers, &answers)
	if err != nil {
		return err
	}

	p := profile.Build(answers)
	err = printJSON(cmd.OutOrStdout(), profileReport{
		Profile:   p,
		TopRIASEC: profile.Top3RIASEC(p.RIASEC),
		TopValue:  profile.TopValue(p.Values),
	})
	if err != nil {
		err = errors.Wrap(err, "failed to write profile")
	}
	return err
}
