package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/memty/internal/blanks"
	"github.com/abhisek/memty/internal/extract"
	"github.com/abhisek/memty/internal/lesson"
	"github.com/abhisek/memty/internal/pipeline"
	"github.com/abhisek/memty/internal/quizgen"
	"github.com/abhisek/memty/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Preview the lesson a document would produce (no database)",
	Long: `Assemble a lesson from a document and print its chunks, recall templates
and quiz questions without saving anything.

This is a stateless tool that uses the deterministic template synthesizer.
Useful for checking how a document will be split before importing it.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("chunk-size", lesson.DefaultChunkSize, "Target words per typing chunk")
	previewCmd.Flags().Int("page", 0, "Only show this page number (1-based)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	chunkSize, _ := cmd.Flags().GetInt("chunk-size")
	only, _ := cmd.Flags().GetInt("page")

	asm := pipeline.NewAssembler(extract.New(), blanks.NewSelector(nil), quizgen.NewTemplate(), pipeline.Config{})
	data, err := asm.AssembleFile(context.Background(), args[0], chunkSize)
	if err != nil {
		return err
	}

	s := theme.New(lesson.ThemeDark)
	fmt.Println(s.Title.Render(data.Title))

	for _, p := range data.Pages {
		if only != 0 && p.PageNumber != only {
			continue
		}
		fmt.Println()
		fmt.Println(s.Subtitle.Render(fmt.Sprintf("Page %d", p.PageNumber)))
		for _, c := range p.Chunks {
			fmt.Printf("  [%s, %d words] %s\n", c.ID, c.WordCount, c.Text)
			fmt.Printf("  %s %s\n", s.Hint.Render("recall:"), c.BlankedText)
		}
		for _, q := range p.Questions {
			fmt.Printf("\n  %s %s\n", s.Body.Render(q.ID), q.Question)
			for i, o := range q.Options {
				mark := " "
				if i == q.Correct {
					mark = s.Correct.Render("✓")
				}
				fmt.Printf("    %s %d. %s\n", mark, i+1, o)
			}
		}
	}
	return nil
}
