package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"career-workers/pkg/registry"
)

//nolint:gochecknoglobals // Cobra boilerplate
var registryPath string

//nolint:gochecknoglobals // Cobra boilerplate
var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "Inspect the activity registry of worker task types",
}

//nolint:gochecknoglobals // Cobra boilerplate
var activitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered activities",
	RunE:  runActivitiesList,
}

//nolint:gochecknoglobals // Cobra boilerplate
var activitiesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the activity registry for duplicate or malformed entries",
	RunE:  runActivitiesValidate,
}

//nolint:gochecknoglobals // Cobra boilerplate
var activitiesShowCmd = &cobra.Command{
	Use:   "show <taskType>",
	Short: "Print one activity as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivitiesShow,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(activitiesCmd)
	activitiesCmd.AddCommand(activitiesListCmd, activitiesValidateCmd, activitiesShowCmd)
	activitiesCmd.PersistentFlags().StringVar(&registryPath, "path", "configs/activity-registry.json", "path to registry file")
}

func loadRegistry() (reg *registry.ActivityRegistry, err error) {
	reg, err = registry.LoadRegistry(registryPath)
	if err != nil {
		err = errors.Wrapf(err, "failed to load registry %s", registryPath)
	}
	return reg, err
}

func runActivitiesList(cmd *cobra.Command, _ []string) (err error) {
	var reg *registry.ActivityRegistry
	reg, err = loadRegistry()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TASK TYPE\tCATEGORY\tSTATUS\tTIMEOUT\tERROR CODES")
	for _, a := range reg.Activities {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.TaskType, a.Category, a.ImplementationStatus, a.Timeout, strings.Join(a.ErrorCodes, ","))
	}
	return w.Flush()
}

func runActivitiesValidate(cmd *cobra.Command, _ []string) (err error) {
	var reg *registry.ActivityRegistry
	reg, err = loadRegistry()
	if err != nil {
		return err
	}

	problems := reg.Validate()
	for _, p := range problems {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", p)
	}
	if len(problems) > 0 {
		err = errors.Errorf("%s has %d problems", registryPath, len(problems))
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registry is valid: %d activities\n", len(reg.Activities))
	return err
}

func runActivitiesShow(cmd *cobra.Command, args []string) (err error) {
	var reg *registry.ActivityRegistry
	reg, err = loadRegistry()
	if err != nil {
		return err
	}

	activity, ok := reg.Find(args[0])
	if !ok {
		err = errors.Errorf("no activity with task type %s", args[0])
		return err
	}
	return printJSON(cmd.OutOrStdout(), activity)
}
