package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/memty/internal/blanks"
	"github.com/abhisek/memty/internal/gamification"
	"github.com/abhisek/memty/internal/lesson"
	"github.com/abhisek/memty/internal/quizgen"
	"github.com/abhisek/memty/internal/study"
)

var errNoInput = errors.New("no answers read from input")

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Run a study phase of a lesson",
	Long: `Run one study phase of a lesson. Phases run in order: typing, recall, quiz.

Each phase reads answers line by line from standard input. Alternatively the
result of a phase completed elsewhere can be recorded with the stats flags.`,
}

var studyTypingCmd = &cobra.Command{
	Use:   "typing <lesson-id>",
	Short: "Type the lesson chunk by chunk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPhase(cmd, args[0], func(ctx context.Context, sess *study.Session, l *lesson.LessonData, p *prompter) (gamification.Outcome, error) {
			stats, err := typingStats(ctx, cmd, sess, l, p)
			if err != nil {
				return gamification.Outcome{}, err
			}
			p.printf("%d WPM, %d%% accuracy\n", stats.WPM, stats.Accuracy)
			return sess.CompleteTyping(ctx, stats)
		})
	},
}

var studyRecallCmd = &cobra.Command{
	Use:   "recall <lesson-id>",
	Short: "Fill in the blanks of each chunk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPhase(cmd, args[0], func(ctx context.Context, sess *study.Session, l *lesson.LessonData, p *prompter) (gamification.Outcome, error) {
			var stats lesson.RecallStats
			score, total, secs, ok, err := scoreFlags(cmd)
			if err != nil {
				return gamification.Outcome{}, err
			}
			if ok {
				stats = lesson.RecallStats{Score: score, TotalBlanks: total, Accuracy: lesson.Percent(score, total), TimeSpent: secs}
			} else if stats, err = recallInteractive(l, p, time.Now); err != nil {
				return gamification.Outcome{}, err
			}
			p.printf("%d/%d blanks, %d%% accuracy\n", stats.Score, stats.TotalBlanks, stats.Accuracy)
			return sess.CompleteRecall(ctx, stats)
		})
	},
}

var studyQuizCmd = &cobra.Command{
	Use:   "quiz <lesson-id>",
	Short: "Answer the lesson's multiple-choice questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPhase(cmd, args[0], func(ctx context.Context, sess *study.Session, l *lesson.LessonData, p *prompter) (gamification.Outcome, error) {
			var stats lesson.QuizStats
			score, total, secs, ok, err := scoreFlags(cmd)
			if err != nil {
				return gamification.Outcome{}, err
			}
			if ok {
				stats = lesson.QuizStats{Score: score, TotalQuestions: total, Percentage: lesson.Percent(score, total), TimeSpent: secs}
			} else if stats, err = quizInteractive(l, p, time.Now); err != nil {
				return gamification.Outcome{}, err
			}
			p.printf("%d/%d correct (%d%%)\n", stats.Score, stats.TotalQuestions, stats.Percentage)
			return sess.CompleteQuiz(ctx, stats)
		})
	},
}

func init() {
	studyTypingCmd.Flags().Int("wpm", 0, "Record a typing result with this WPM instead of reading input")
	studyTypingCmd.Flags().Int("accuracy", 100, "Typing accuracy (with --wpm)")
	for _, c := range []*cobra.Command{studyRecallCmd, studyQuizCmd} {
		c.Flags().Int("score", 0, "Record a result with this many correct answers instead of reading input")
		c.Flags().Int("total", 0, "Total answers (with --score)")
	}
	for _, c := range []*cobra.Command{studyTypingCmd, studyRecallCmd, studyQuizCmd} {
		c.Flags().Int("time", 0, "Seconds spent (with the result flags)")
		studyCmd.AddCommand(c)
	}
}

type phaseFunc func(ctx context.Context, sess *study.Session, l *lesson.LessonData, p *prompter) (gamification.Outcome, error)

// runPhase opens the lesson in a study session, runs the phase and
// prints what it earned.
func runPhase(cmd *cobra.Command, lessonID string, fn phaseFunc) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		s := e.styles(ctx)
		p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

		sess, err := e.session(ctx, func(b gamification.Badge) {
			p.printf("%s\n", s.Earned.Render(b.IconType.Glyph()+"  Badge earned: "+b.Name))
		})
		if err != nil {
			return err
		}
		l, err := sess.Open(ctx, lessonID)
		if err != nil {
			return err
		}

		out, err := fn(ctx, sess, l, p)
		if err != nil {
			return err
		}
		p.printf("%s\n", s.Correct.Render(fmt.Sprintf("+%d points", out.Points)))
		if next := study.NextPhase(l.Progress); next != study.PhaseDone {
			p.printf("%s\n", s.Hint.Render(fmt.Sprintf("Next: memty study %s %s", next, l.ID)))
		}
		return nil
	})
}

// scoreFlags returns the --score/--total/--time result when --score is set.
// A score above the total is capped to it.
func scoreFlags(cmd *cobra.Command) (score, total, secs int, ok bool, err error) {
	if !cmd.Flags().Changed("score") {
		return 0, 0, 0, false, nil
	}
	score, _ = cmd.Flags().GetInt("score")
	total, _ = cmd.Flags().GetInt("total")
	secs, _ = cmd.Flags().GetInt("time")
	for _, f := range []struct {
		name string
		v    int
	}{{"score", score}, {"total", total}, {"time", secs}} {
		if f.v < 0 {
			return 0, 0, 0, false, fmt.Errorf("--%s must not be negative, got %d", f.name, f.v)
		}
	}
	return min(score, total), total, secs, true, nil
}

func typingStats(ctx context.Context, cmd *cobra.Command, sess *study.Session, l *lesson.LessonData, p *prompter) (lesson.TypingStats, error) {
	if cmd.Flags().Changed("wpm") {
		wpm, _ := cmd.Flags().GetInt("wpm")
		acc, _ := cmd.Flags().GetInt("accuracy")
		secs, _ := cmd.Flags().GetInt("time")
		switch {
		case wpm < 0:
			return lesson.TypingStats{}, fmt.Errorf("--wpm must not be negative, got %d", wpm)
		case acc < 0 || acc > 100:
			return lesson.TypingStats{}, fmt.Errorf("--accuracy must be between 0 and 100, got %d", acc)
		case secs < 0:
			return lesson.TypingStats{}, fmt.Errorf("--time must not be negative, got %d", secs)
		}
		return lesson.TypingStats{WPM: wpm, Accuracy: acc, TimeSpent: secs}, nil
	}
	return typingInteractive(ctx, sess, l, p, time.Now)
}

// typingInteractive prompts with each remaining chunk and measures the
// typed lines. A lesson already typed through is typed again from the start
// without moving its position.
func typingInteractive(ctx context.Context, sess *study.Session, l *lesson.LessonData, p *prompter, now func() time.Time) (lesson.TypingStats, error) {
	type pos struct{ page, chunk int }
	var todo []pos
	advance := l.Progress.CurrentPage < len(l.Pages)
	for pi, page := range l.Pages {
		for ci := range page.Chunks {
			if advance && (pi < l.Progress.CurrentPage || (pi == l.Progress.CurrentPage && ci < l.Progress.CurrentChunk)) {
				continue
			}
			todo = append(todo, pos{pi, ci})
		}
	}

	var target, typed []string
	start := now()
	for _, at := range todo {
		chunk := l.Pages[at.page].Chunks[at.chunk]
		p.printf("\n%s\n> ", chunk.Text)
		line, ok := p.readLine()
		if !ok {
			break
		}
		target = append(target, chunk.Text)
		typed = append(typed, line)
		if advance {
			if _, err := sess.AdvanceChunk(ctx); err != nil {
				return lesson.TypingStats{}, err
			}
		}
	}
	if len(typed) == 0 {
		return lesson.TypingStats{}, errNoInput
	}
	return lesson.MeasureTyping(strings.Join(target, " "), strings.Join(typed, " "), now().Sub(start)), nil
}

// recallInteractive shows each chunk's recall template and reads one
// answer per blank.
func recallInteractive(l *lesson.LessonData, p *prompter, now func() time.Time) (lesson.RecallStats, error) {
	var all []blanks.Result
	start := now()

	for _, chunk := range l.Chunks() {
		if !chunk.HasBlanks() {
			continue
		}
		p.printf("\n%s\n", chunk.BlankedText)
		answers := make(map[int]string, len(chunk.Blanks))
		for _, b := range chunk.Blanks {
			p.printf("  blank %d> ", b.Index+1)
			line, ok := p.readLine()
			if !ok {
				return lesson.RecallStats{}, errNoInput
			}
			answers[b.Index] = line
		}
		results := blanks.Grade(chunk, answers)
		for _, r := range results {
			if !r.Correct {
				p.printf("  ✗ %q, expected %q\n", r.Given, r.Blank.Answer)
			}
		}
		all = append(all, results...)
	}

	elapsed := now().Sub(start)
	return blanks.RecallStatsFor(all, lesson.RoundHalfUp(elapsed.Seconds())), nil
}

// quizInteractive asks every question and reads a 1-based option number.
// Anything else counts as a wrong answer.
func quizInteractive(l *lesson.LessonData, p *prompter, now func() time.Time) (lesson.QuizStats, error) {
	questions := l.Questions()
	answers := make(map[string]int, len(questions))
	start := now()

	for _, q := range questions {
		p.printf("\n%s\n", q.Question)
		for i, o := range q.Options {
			p.printf("  %d. %s\n", i+1, o)
		}
		p.printf("> ")
		line, ok := p.readLine()
		if !ok {
			return lesson.QuizStats{}, errNoInput
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			choice = 0
		}
		answers[q.ID] = choice - 1
		if choice-1 != q.Correct {
			p.printf("  ✗ %s\n", q.Explanation)
		}
	}

	return quizgen.Grade(questions, answers, now().Sub(start)), nil
}

// prompter reads answer lines and writes prompts.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) readLine() (string, bool) {
	if !p.in.Scan() {
		return "", false
	}
	return p.in.Text(), true
}
