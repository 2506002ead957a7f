package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Build the metadata into a schema and report what it contains",
	Long: `Loads every metadata file, constructs the full schema, and prints a
summary of the validated components. The first authoring defect aborts
the build and is reported with the offending component and field.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := buildSchema()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, okStyle.Render("✓"), headingStyle.Render(settings.MetaDir), "is valid")
	printKind(out, "sources", s.SourceNames())
	printKind(out, "transforms", s.TransformNames())
	printKind(out, "sinks", s.SinkNames())

	names := make([]string, 0, len(s.Guides))
	for _, g := range s.Guides {
		names = append(names, g.Name)
	}
	printKind(out, "guides", names)
	return nil
}

func printKind(w io.Writer, kind string, names []string) {
	fmt.Fprintf(w, "  %-10s %2d  %s\n", kind, len(names), dimStyle.Render(strings.Join(names, ", ")))
}
