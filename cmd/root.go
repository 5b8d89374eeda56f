package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/memty/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "memty",
	Short: "Turn documents into typing, recall and quiz lessons",
	Long: "memty converts a PDF, DOCX or TXT document into a three-phase study exercise\n" +
		"(typing practice, fill-in-the-blank recall, multiple-choice quiz) and tracks\n" +
		"points, streaks and badges.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MEMTY_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-mode", "", "Log mode: quiet, dev or prod")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(badgesCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(signinCmd)
	rootCmd.AddCommand(signoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG location.
func resolveDBPath(p string) (string, error) {
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
