package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/memty/internal/lesson"
	"github.com/abhisek/memty/internal/store"
	"github.com/abhisek/memty/internal/ui/components"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change study preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			if _, err := e.user(ctx); err != nil {
				return err
			}
			p := e.preferences(ctx)
			fmt.Print(components.KeyValues(e.styles(ctx), [][2]string{
				{"theme", string(p.Theme)},
				{"chunk-size", strconv.Itoa(p.ChunkSize)},
				{"font-size", strconv.Itoa(p.FontSize)},
				{"auto-advance", strconv.FormatBool(p.AutoAdvance)},
			}))
			return nil
		})
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a preference (theme, chunk-size, font-size, auto-advance)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			uns, err := e.userNamespace(ctx)
			if err != nil {
				return err
			}
			p, err := applyPreference(e.preferences(ctx), args[0], args[1])
			if err != nil {
				return err
			}
			if err := uns.Set(ctx, store.KeyPreferences, p); err != nil {
				return fmt.Errorf("save preferences: %w", err)
			}
			fmt.Printf("%s = %s\n", args[0], args[1])
			return nil
		})
	},
}

// applyPreference parses one key/value pair onto p. Out-of-range numbers
// are clamped.
func applyPreference(p lesson.Preferences, key, value string) (lesson.Preferences, error) {
	switch key {
	case "theme":
		t := lesson.Theme(value)
		if t != lesson.ThemeLight && t != lesson.ThemeDark {
			return p, fmt.Errorf("theme must be light or dark, got %q", value)
		}
		p.Theme = t
	case "chunk-size", "font-size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return p, fmt.Errorf("%s must be a number: %w", key, err)
		}
		if key == "chunk-size" {
			p.ChunkSize = n
		} else {
			p.FontSize = n
		}
	case "auto-advance":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return p, fmt.Errorf("auto-advance must be true or false: %w", err)
		}
		p.AutoAdvance = b
	default:
		return p, fmt.Errorf("unknown preference %q", key)
	}
	return p.Normalize(), nil
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
}
