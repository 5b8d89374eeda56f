package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/memty/internal/study"
	"github.com/abhisek/memty/internal/ui/components"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "Manage imported lessons",
}

var lessonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lessons, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			repo := e.store.LessonRepo()
			summaries, err := repo.List(ctx)
			if err != nil {
				return fmt.Errorf("list lessons: %w", err)
			}
			if len(summaries) == 0 {
				fmt.Println("No lessons yet. Import one with: memty import <file>")
				return nil
			}

			fmt.Printf("%-43s  %-30s  %-15s  %5s  %s\n", "ID", "Title", "Status", "Done", "Created")
			fmt.Println(strings.Repeat("─", 110))
			for _, sum := range summaries {
				l, err := repo.Get(ctx, sum.ID)
				if err != nil {
					e.log.Warn("load lesson", "lesson_id", sum.ID, "error", err)
					continue
				}
				title := sum.Title
				if len(title) > 30 {
					title = title[:29] + "…"
				}
				fmt.Printf("%-43s  %-30s  %-15s  %4d%%  %s\n",
					sum.ID,
					title,
					l.Progress.Status().DisplayName(),
					l.Percent(),
					sum.CreatedAt.Local().Format("2006-01-02 15:04"),
				)
			}
			return nil
		})
	},
}

var lessonsShowCmd = &cobra.Command{
	Use:   "show <lesson-id>",
	Short: "Show a lesson's progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			l, err := e.store.LessonRepo().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get lesson: %w", err)
			}
			s := e.styles(ctx)

			fmt.Println(s.Title.Render(l.Title))
			fmt.Println(components.NewProgressBar("", l.Percent(), true, 50).Render(s))
			fmt.Print(components.KeyValues(s, [][2]string{
				{"Status", l.Progress.Status().DisplayName()},
				{"Next phase", string(study.NextPhase(l.Progress))},
				{"Pages", fmt.Sprint(l.TotalPages)},
				{"Chunks", fmt.Sprint(l.TotalChunks())},
				{"Questions", fmt.Sprint(len(l.Questions()))},
				{"Points earned", fmt.Sprint(l.Progress.TotalPoints)},
				{"Recall accuracy", fmt.Sprintf("%d%%", l.Progress.RecallAccuracy)},
				{"Quiz score", fmt.Sprintf("%d%%", l.Progress.QuizPercentage)},
				{"Last studied", l.Progress.LastStudyDate.Local().Format("2006-01-02 15:04")},
			}))
			return nil
		})
	},
}

var lessonsDeleteCmd = &cobra.Command{
	Use:   "delete <lesson-id>",
	Short: "Delete a lesson",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			if err := e.store.LessonRepo().Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("delete lesson: %w", err)
			}
			fmt.Println("Deleted", args[0])
			return nil
		})
	},
}

func init() {
	lessonsCmd.AddCommand(lessonsListCmd)
	lessonsCmd.AddCommand(lessonsShowCmd)
	lessonsCmd.AddCommand(lessonsDeleteCmd)
}
