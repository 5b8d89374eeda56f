package lesson

import "time"

// Progress tracks a learner's position and phase completion within a lesson.
type Progress struct {
	CurrentChunk    int       `json:"currentChunk"`
	CurrentPage     int       `json:"currentPage"`
	TypingCompleted bool      `json:"typingCompleted"`
	RecallCompleted bool      `json:"recallCompleted"`
	QuizCompleted   bool      `json:"quizCompleted"`
	TotalPoints     int       `json:"totalPoints"`
	StreakDays      int       `json:"streakDays"`
	LastStudyDate   time.Time `json:"lastStudyDate"`

	// Results of the most recent recall and quiz runs of this lesson.
	RecallAccuracy int `json:"recallAccuracy,omitempty"`
	QuizPercentage int `json:"quizPercentage,omitempty"`
}

// NewProgress returns the initial progress of a freshly assembled lesson.
func NewProgress(now time.Time) Progress {
	return Progress{LastStudyDate: now}
}

// Status is the coarse completion state shown in lesson listings.
type Status string

const (
	StatusInProgress    Status = "in-progress"
	StatusRecallPending Status = "recall-pending"
	StatusQuizPending   Status = "quiz-pending"
	StatusCompleted     Status = "completed"
)

// DisplayName returns a human-readable label for the status.
func (s Status) DisplayName() string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case StatusRecallPending:
		return "Recall Pending"
	case StatusQuizPending:
		return "Quiz Pending"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Status derives the completion status from the phase flags.
func (p Progress) Status() Status {
	switch {
	case p.QuizCompleted:
		return StatusCompleted
	case p.RecallCompleted:
		return StatusQuizPending
	case p.TypingCompleted:
		return StatusRecallPending
	default:
		return StatusInProgress
	}
}

// Percent returns how far the learner is through the lesson's chunks (0-100).
func (l *LessonData) Percent() int {
	total := l.TotalChunks()
	if total == 0 {
		return 0
	}
	if l.Progress.QuizCompleted {
		return 100
	}

	done := 0
	for i, p := range l.Pages {
		if i >= l.Progress.CurrentPage {
			break
		}
		done += len(p.Chunks)
	}
	done += l.Progress.CurrentChunk
	if done > total {
		done = total
	}
	return int(float64(done)/float64(total)*100 + 0.5)
}
