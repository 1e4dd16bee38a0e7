// cmd/careerctl/main.go
package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"career-workers/internal/quizbank"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var definitionsDir string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "careerctl",
	Short: "Run career matching and reality quizzes locally",
	Long: `careerctl runs the career matching and reality quiz engines against local
files, without a workflow broker or database.

Examples:
  careerctl profile --answers answers.json
  careerctl match --answers answers.json --careers careers.json --limit 5
  careerctl quiz list
  careerctl quiz play --career software-engineer --choices 0,2,1,0,3`,
	SilenceUsage: true,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&definitionsDir, "definitions", "", "directory of quiz definitions merged over the embedded ones")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadBank returns the embedded quiz bank with any --definitions overrides.
func loadBank() (bank *quizbank.Bank, err error) {
	bank, err = quizbank.Embedded()
	if err != nil {
		err = errors.Wrap(err, "embedded quiz definitions are invalid")
		return bank, err
	}
	if definitionsDir == "" {
		return bank, err
	}

	var overrides *quizbank.Bank
	overrides, err = quizbank.LoadDir(definitionsDir)
	if err != nil {
		err = errors.Wrapf(err, "failed to load quiz definitions from %s", definitionsDir)
		return bank, err
	}
	bank = bank.Merge(overrides)
	return bank, err
}

func readJSON(path string, v interface{}) (err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read %s", path)
		return err
	}
	err = json.Unmarshal(data, v)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse %s", path)
		return err
	}
	return err
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
