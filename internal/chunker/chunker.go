// Package chunker splits page text into sentence-respecting segments of
// bounded word count for typing practice.
package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/memty/internal/lesson"
)

// sentencePattern matches a run of non-terminal characters followed by one or
// more terminal punctuation marks.
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Normalize collapses all whitespace runs to single spaces and trims the ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Sentences splits text into trimmed sentences. Joined with single spaces
// they rebuild Normalize(text). A trailing fragment without terminal
// punctuation is returned as the last sentence. Text with no
// terminal punctuation at all is returned as a single sentence.
func Sentences(text string) []string {
	text = Normalize(text)
	if text == "" {
		return nil
	}

	locs := sentencePattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	sentences := make([]string, 0, len(locs)+1)
	end := 0
	for _, loc := range locs {
		// Unmatched text before a match (leading punctuation such as "...")
		// belongs to the sentence that follows it.
		if s := strings.TrimSpace(text[end:loc[1]]); s != "" {
			sentences = append(sentences, s)
		}
		end = loc[1]
	}
	if rest := strings.TrimSpace(text[end:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// WordCount returns the number of whitespace-delimited tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Chunk greedily packs sentences into chunks of at most targetWordCount
// words. A sentence longer than the target forms a chunk on its own.
// Chunk ids are "chunk-0", "chunk-1", ... in order.
func Chunk(text string, targetWordCount int) []lesson.LessonChunk {
	if targetWordCount < 1 {
		targetWordCount = 1
	}

	var (
		chunks   []lesson.LessonChunk
		buf      []string
		bufWords int
	)

	flush := func() {
		if len(buf) == 0 {
			return
		}
		joined := strings.Join(buf, " ")
		chunks = append(chunks, lesson.LessonChunk{
			ID:        fmt.Sprintf("chunk-%d", len(chunks)),
			Text:      joined,
			WordCount: WordCount(joined),
		})
		buf = buf[:0]
		bufWords = 0
	}

	for _, s := range Sentences(text) {
		n := WordCount(s)
		if len(buf) > 0 && bufWords+n > targetWordCount {
			flush()
		}
		buf = append(buf, s)
		bufWords += n
	}
	flush()

	return chunks
}
