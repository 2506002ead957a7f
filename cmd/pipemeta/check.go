package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pipemeta/internal/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check CONFIG",
	Short: "Check a pipeline configuration against the component schema",
	Long: `Check loads the component schema and verifies a concrete pipeline
configuration file against it: component types, option values, required
options, input wiring, and the event types flowing across each edge.

Warnings are advisory and do not fail the check.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := buildSchema()
	if err != nil {
		return err
	}
	f, err := pipeline.Load(args[0])
	if err != nil {
		return err
	}

	rep := pipeline.Check(f, s)
	for _, w := range rep.Warnings {
		fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render("⚠"), w)
	}
	if !rep.OK() {
		for _, e := range rep.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), errStyle.Render("✗"), e)
		}
		return fmt.Errorf("found %d problem(s) in %s", len(rep.Errors), args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("✓"), headingStyle.Render(args[0]), "is valid")
	return nil
}
