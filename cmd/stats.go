package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/memty/internal/ui/components"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			eng, err := e.engine(ctx, nil)
			if err != nil {
				return err
			}
			st := eng.State()
			s := e.styles(ctx)

			last := "never"
			if !st.LastStudyDate.IsZero() {
				last = st.LastStudyDate.Local().Format("2006-01-02")
			}

			fmt.Println(s.Title.Render("Your progress"))
			fmt.Print(components.KeyValues(s, [][2]string{
				{"Points", fmt.Sprint(st.Stats.Points)},
				{"Streak", fmt.Sprintf("%d days (best %d)", st.Stats.Streak, st.Stats.LongestStreak)},
				{"Last studied", last},
				{"Lessons completed", fmt.Sprint(st.Stats.LessonsCompleted)},
				{"Typing speed", fmt.Sprintf("%d WPM", st.Stats.WPM)},
				{"Typing accuracy", fmt.Sprintf("%d%%", st.Stats.Accuracy)},
				{"Recall accuracy", fmt.Sprintf("%d%%", st.Stats.RecallAccuracy)},
				{"Quiz success", fmt.Sprintf("%d%%", st.Stats.QuizSuccessRate)},
				{"Study time", (time.Duration(st.Stats.TotalStudyTime) * time.Second).String()},
				{"Badges", fmt.Sprintf("%d/%d", st.EarnedCount(), len(st.Badges))},
			}))
			return nil
		})
	},
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Show earned and locked badges",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			eng, err := e.engine(ctx, nil)
			if err != nil {
				return err
			}
			fmt.Print(components.BadgeList(e.styles(ctx), eng.State().Badges))
			return nil
		})
	},
}
