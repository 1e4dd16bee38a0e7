package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"career-workers/internal/models"
	"career-workers/internal/quizbank"
	"career-workers/internal/realityquiz"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	quizCareer  string
	quizChoices string
	quizAnswers string
)

//nolint:gochecknoglobals // Cobra boilerplate
var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Work with reality quizzes",
}

//nolint:gochecknoglobals // Cobra boilerplate
var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available quizzes",
	RunE:  runQuizList,
}

//nolint:gochecknoglobals // Cobra boilerplate
var quizValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate quiz definitions",
	Long: `Validates every quiz definition in dir against the quiz schema and the
structural rules. Without dir the embedded definitions are checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuizValidate,
}

//nolint:gochecknoglobals // Cobra boilerplate
var quizPlayCmd = &cobra.Command{
	Use:   "play",
	Short: "Step through a quiz with a fixed list of choices",
	Long: `Drives a quiz session one question at a time, printing the explanation
for each choice and the final result.

Example:
  careerctl quiz play --career registered-nurse --choices 0,1,0,2`,
	RunE: runQuizPlay,
}

//nolint:gochecknoglobals // Cobra boilerplate
var quizScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a complete set of quiz answers",
	RunE:  runQuizScore,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(quizCmd)
	quizCmd.AddCommand(quizListCmd, quizValidateCmd, quizPlayCmd, quizScoreCmd)

	quizPlayCmd.Flags().StringVar(&quizCareer, "career", "", "career id of the quiz")
	quizPlayCmd.Flags().StringVar(&quizChoices, "choices", "", "comma separated option indices, one per question")
	_ = quizPlayCmd.MarkFlagRequired("career")
	_ = quizPlayCmd.MarkFlagRequired("choices")

	quizScoreCmd.Flags().StringVar(&quizCareer, "career", "", "career id of the quiz")
	quizScoreCmd.Flags().StringVar(&quizAnswers, "answers", "", "quiz answers JSON file")
	_ = quizScoreCmd.MarkFlagRequired("career")
	_ = quizScoreCmd.MarkFlagRequired("answers")
}

func runQuizList(cmd *cobra.Command, _ []string) (err error) {
	var bank *quizbank.Bank
	bank, err = loadBank()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CAREER\tVERSION\tQUESTIONS\tDURATION\tTITLE")
	for _, s := range bank.List() {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", s.CareerID, s.Version, s.Questions, s.Duration, s.Title)
	}
	return w.Flush()
}

func runQuizValidate(cmd *cobra.Command, args []string) (err error) {
	var bank *quizbank.Bank
	source := "embedded definitions"
	if len(args) == 1 {
		source = args[0]
		bank, err = quizbank.LoadDir(source)
	} else {
		bank, err = quizbank.Embedded()
	}
	if err != nil {
		err = errors.Wrapf(err, "%s failed validation", source)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d quiz definitions valid\n", source, bank.Len())
	return err
}

func runQuizPlay(cmd *cobra.Command, _ []string) (err error) {
	var choices []int
	choices, err = parseChoices(quizChoices)
	if err != nil {
		return err
	}

	var quiz *models.Quiz
	quiz, err = findQuiz(quizCareer)
	if err != nil {
		return err
	}

	_, err = playQuiz(cmd.OutOrStdout(), quiz, choices)
	return err
}

func runQuizScore(cmd *cobra.Command, _ []string) (err error) {
	var quiz *models.Quiz
	quiz, err = findQuiz(quizCareer)
	if err != nil {
		return err
	}

	answers := map[string]int{}
	err = readJSON(quizAnswers, &answers)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), realityquiz.Score(*quiz, answers))
}

func findQuiz(careerID string) (quiz *models.Quiz, err error) {
	var bank *quizbank.Bank
	bank, err = loadBank()
	if err != nil {
		return quiz, err
	}
	quiz, err = bank.Get(careerID)
	if err != nil {
		err = errors.Wrap(err, "run 'careerctl quiz list' to see available quizzes")
	}
	return quiz, err
}

func parseChoices(raw string) (choices []int, err error) {
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var n int
		n, err = strconv.Atoi(part)
		if err != nil {
			err = errors.Wrapf(err, "invalid choice %q", part)
			return nil, err
		}
		choices = append(choices, n)
	}
	return choices, err
}

// playQuiz walks a session through choices and writes each reveal and the
// final result to w. It fails when choices does not cover every question.
func playQuiz(w io.Writer, quiz *models.Quiz, choices []int) (result models.QuizResult, err error) {
	if len(choices) != len(quiz.Questions) {
		err = errors.Errorf("quiz %s has %d questions, got %d choices", quiz.CareerID, len(quiz.Questions), len(choices))
		return result, err
	}

	fmt.Fprintf(w, "%s\n%s\n\n", quiz.Title, quiz.Description)

	session := realityquiz.NewSession(quiz)
	session, err = session.Start()
	if err != nil {
		return result, err
	}

	for i, choice := range choices {
		q, _ := session.Current()
		fmt.Fprintf(w, "Question %d of %d: %s\n", i+1, len(quiz.Questions), q.Scenario)

		session, err = session.Select(choice)
		if err != nil {
			return result, err
		}
		reveal, _ := session.Reveal()
		writeReveal(w, reveal)

		session, err = session.Advance()
		if err != nil {
			return result, err
		}
	}

	result, _ = session.Result()
	fmt.Fprintf(w, "Readiness: %d%% (%s)\n%s\n%s\n", result.ReadinessPercentage, result.ResultTier, result.Title, result.Message)
	for _, dim := range models.QuizDimensions {
		if score, ok := result.Scores[dim]; ok {
			fmt.Fprintf(w, "  %-16s %3d\n", dim, score)
		}
	}
	return result, err
}

func writeReveal(w io.Writer, r realityquiz.Reveal) {
	fmt.Fprintf(w, "  > %s\n", r.Option.Text)
	if r.Correct != nil {
		if *r.Correct {
			fmt.Fprintln(w, "  Correct.")
		} else {
			fmt.Fprintf(w, "  Not quite. Best answer: %s\n", r.Question.Options[*r.Question.CorrectAnswer].Text)
		}
	}
	if r.Option.Insight != "" {
		fmt.Fprintf(w, "  %s\n", r.Option.Insight)
	}
	if r.Question.Explanation != "" {
		fmt.Fprintf(w, "  %s\n", r.Question.Explanation)
	}
	if r.Question.RealityNote != "" {
		fmt.Fprintf(w, "  Reality check: %s\n", r.Question.RealityNote)
	}
	fmt.Fprintln(w)
}
