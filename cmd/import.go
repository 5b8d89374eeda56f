package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/memty/internal/ui/components"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Build a lesson from a PDF, DOCX or TXT document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			prefs := e.preferences(ctx)
			chunkSize := prefs.ChunkSize
			if cmd.Flags().Changed("chunk-size") {
				chunkSize = e.cfg.ChunkSize()
			}
			synth, _ := cmd.Flags().GetString("synth")
			s := e.styles(ctx)

			asm, err := e.assembler(ctx, synth, func(pct int) {
				bar := components.NewProgressBar("Building lesson", pct, true, 60)
				fmt.Fprint(os.Stderr, "\r"+bar.Render(s))
			})
			if err != nil {
				return err
			}

			data, err := asm.AssembleFile(ctx, args[0], chunkSize)
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return err
			}

			if err := e.store.LessonRepo().Save(ctx, data); err != nil {
				return fmt.Errorf("save lesson: %w", err)
			}

			fmt.Println(s.Title.Render(data.Title))
			fmt.Print(components.KeyValues(s, [][2]string{
				{"Lesson", data.ID},
				{"Pages", fmt.Sprint(data.TotalPages)},
				{"Chunks", fmt.Sprint(data.TotalChunks())},
				{"Questions", fmt.Sprint(len(data.Questions()))},
			}))
			fmt.Println(s.Hint.Render("Start with: memty study typing " + data.ID))
			return nil
		})
	},
}

func init() {
	importCmd.Flags().Int("chunk-size", 0, "Target words per typing chunk (10-30; default from preferences)")
	importCmd.Flags().String("synth", "", "Question synthesizer: template or llm (default from config)")
}
