package lesson

import "time"

// Placeholder is the literal token that replaces a blanked word.
const Placeholder = "_______"

// Blank is one removed word in a chunk's blanked text.
type Blank struct {
	Index    int    `json:"index"`    // ordinal among the placeholders in BlankedText
	Answer   string `json:"answer"`   // stripped original word
	Position int    `json:"position"` // word offset in the original text
}

// LessonChunk is a bounded-size segment of page text used for typing practice
// and, once blanked, for recall.
type LessonChunk struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	WordCount   int     `json:"wordCount"`
	BlankedText string  `json:"blankedText,omitempty"`
	Blanks      []Blank `json:"blanks,omitempty"`
}

// HasBlanks reports whether the recall template has been populated.
func (c LessonChunk) HasBlanks() bool {
	return c.BlankedText != "" && len(c.Blanks) > 0
}

// QuizQuestion is a multiple-choice question with exactly one correct option.
type QuizQuestion struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

// CorrectOption returns the text of the correct option.
func (q QuizQuestion) CorrectOption() string {
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return ""
	}
	return q.Options[q.Correct]
}

// LessonPage groups the chunks and questions derived from one block of
// source text.
type LessonPage struct {
	ID         string         `json:"id"`
	PageNumber int            `json:"pageNumber"`
	Chunks     []LessonChunk  `json:"chunks"`
	Questions  []QuizQuestion `json:"questions"`
	Completed  bool           `json:"completed"`
}

// LessonData is the aggregate produced by the assembler.
type LessonData struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	TotalPages  int          `json:"totalPages"`
	CurrentPage int          `json:"currentPage"`
	Pages       []LessonPage `json:"pages"`
	Progress    Progress     `json:"progress"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Chunks returns every chunk of the lesson in page order.
func (l *LessonData) Chunks() []LessonChunk {
	var out []LessonChunk
	for _, p := range l.Pages {
		out = append(out, p.Chunks...)
	}
	return out
}

// Questions returns every quiz question of the lesson in page order.
func (l *LessonData) Questions() []QuizQuestion {
	var out []QuizQuestion
	for _, p := range l.Pages {
		out = append(out, p.Questions...)
	}
	return out
}

// TotalChunks returns the number of chunks across all pages.
func (l *LessonData) TotalChunks() int {
	n := 0
	for _, p := range l.Pages {
		n += len(p.Chunks)
	}
	return n
}
