package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"career-workers/internal/catalog"
	"career-workers/internal/matcher"
	"career-workers/internal/models"
	"career-workers/internal/profile"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	matchAnswers     string
	matchProfile     string
	matchCareers     string
	matchCategory    string
	matchLimit       int
	matchParallelism int
)

//nolint:gochecknoglobals // Cobra boilerplate
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank careers for a student",
	Long: `Ranks a JSON career catalog against a student built from --answers, or
against a saved profile given with --profile.`,
	RunE: runMatch,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringVar(&matchAnswers, "answers", "", "assessment answers JSON file")
	matchCmd.Flags().StringVar(&matchProfile, "profile", "", "student profile JSON file")
	matchCmd.Flags().StringVar(&matchCareers, "careers", "", "career catalog JSON file")
	matchCmd.Flags().StringVar(&matchCategory, "category", "", "only rank careers in this category")
	matchCmd.Flags().IntVar(&matchLimit, "limit", matcher.DefaultLimit, "number of matches to return")
	matchCmd.Flags().IntVar(&matchParallelism, "parallelism", 1, "careers scored concurrently")
	_ = matchCmd.MarkFlagRequired("careers")
	matchCmd.MarkFlagsMutuallyExclusive("answers", "profile")
}

func runMatch(cmd *cobra.Command, _ []string) (err error) {
	var student models.StudentProfile
	student, err = loadStudent(matchAnswers, matchProfile)
	if err != nil {
		return err
	}

	var repo *catalog.StaticRepository
	repo, err = catalog.LoadFile(matchCareers)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var careers []models.Career
	careers, err = repo.ListCareers(ctx, catalog.Filter{Category: matchCategory})
	if err != nil {
		return err
	}

	var matches []models.MatchResult
	matches, err = matcher.MatchStudentToCareers(ctx, student, careers, matchLimit, matcher.Options{
		Parallelism: matchParallelism,
	})
	if err != nil {
		err = errors.Wrap(err, "matching failed")
		return err
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Ranked %d careers, showing %d\n", len(careers), len(matches))
	}
	return printJSON(cmd.OutOrStdout(), matches)
}

func loadStudent(answersPath, profilePath string) (student models.StudentProfile, err error) {
	switch {
	case profilePath != "":
		err = readJSON(profilePath, &student)
	case answersPath != "":
		answers := map[string]int{}
		err = readJSON(answersPath, &answers)
		if err == nil {
			student = profile.Build(answers)
		}
	default:
		err = errors.New("one of --answers or --profile is required")
	}
	return student, err
}
