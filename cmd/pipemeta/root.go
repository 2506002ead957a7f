package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pipemeta/internal/config"
	"pipemeta/internal/logging"
	"pipemeta/schema"
)

var (
	settingsFile string
	metaDir      string
	guidesDir    string

	settings config.Settings
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

var rootCmd = &cobra.Command{
	Use:   "pipemeta",
	Short: "Validate and explore the pipeline component metadata",
	Long: `pipemeta builds the component metadata corpus into a validated,
cross-linked schema. The validate command reports what the corpus
contains, generate produces an example pipeline configuration from it,
and check verifies a concrete pipeline configuration against it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.LoadSettings(settingsFile)
		if err != nil {
			return err
		}
		if metaDir != "" {
			settings.MetaDir = metaDir
		}
		if guidesDir != "" {
			settings.GuidesDir = guidesDir
		}
		logging.Configure(logging.Options{Level: settings.Log.Level, JSON: settings.Log.JSON})
		logging.L().Debug("settings loaded",
			"meta_dir", settings.MetaDir, "guides_dir", settings.GuidesDir)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("✗"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (optional)")
	rootCmd.PersistentFlags().StringVar(&metaDir, "meta", "", `metadata directory (default "meta")`)
	rootCmd.PersistentFlags().StringVar(&guidesDir, "guides", "", `guides directory (default "guides")`)
}

// buildSchema loads the metadata corpus and constructs the schema. A missing
// guides directory means no guides rather than a failure.
func buildSchema() (*schema.Schema, error) {
	raw, err := config.LoadMeta(settings.MetaDir)
	if err != nil {
		return nil, err
	}
	var guides fs.FS
	if st, err := os.Stat(settings.GuidesDir); err == nil && st.IsDir() {
		guides = os.DirFS(settings.GuidesDir)
	}
	s, err := schema.New(raw, guides)
	if err != nil {
		return nil, err
	}
	logging.L().Debug("schema built",
		"sources", len(s.SourceNames()),
		"transforms", len(s.TransformNames()),
		"sinks", len(s.SinkNames()),
		"guides", len(s.Guides))
	return s, nil
}
