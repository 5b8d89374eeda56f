package blanks

import (
	"regexp"
	"strings"
	"testing"

	"github.com/abhisek/memty/internal/chunker"
	"github.com/abhisek/memty/internal/lesson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunkOf(text string) lesson.LessonChunk {
	return lesson.LessonChunk{ID: "chunk-0", Text: text, WordCount: chunker.WordCount(text)}
}

func TestBlankCount(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 3}, {5, 3}, {12, 3}, {15, 3}, {16, 4}, {20, 5}, {24, 6}, {40, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BlankCount(tt.words), "words=%d", tt.words)
	}
}

func TestEligible(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"Machine", true},
		{"programming.", true},
		{"data", true},
		{"cat", false},
		{"from", false},
		{"Would", false},
		{"2024", false},
		{"COVID19", false},
		{"snake_case", false},
		{"(learning),", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Eligible(tt.word), "word=%q", tt.word)
	}
}

func TestApply_EvenlySpaced(t *testing.T) {
	s := NewSelector(nil)
	c := s.Apply(chunkOf("Machine learning algorithms enable computers to learn from data without explicit programming."))

	assert.Equal(t, "Machine _______ algorithms enable computers to _______ from data without _______ programming.", c.BlankedText)
	require.Len(t, c.Blanks, 3)
	assert.Equal(t, lesson.Blank{Index: 0, Answer: "learning", Position: 1}, c.Blanks[0])
	assert.Equal(t, lesson.Blank{Index: 1, Answer: "learn", Position: 6}, c.Blanks[1])
	assert.Equal(t, lesson.Blank{Index: 2, Answer: "explicit", Position: 10}, c.Blanks[2])
}

func TestApply_StripsPunctuationFromAnswer(t *testing.T) {
	c := NewSelector(nil).Apply(chunkOf("Dogs bark loudly at night."))

	assert.Equal(t, "_______ bark _______ at _______", c.BlankedText)
	require.Len(t, c.Blanks, 3)
	assert.Equal(t, "Dogs", c.Blanks[0].Answer)
	assert.Equal(t, "loudly", c.Blanks[1].Answer)
	assert.Equal(t, "night", c.Blanks[2].Answer)
}

func TestApply_PreservesSpacing(t *testing.T) {
	c := NewSelector(nil).Apply(chunkOf("Alpha  beta\tgamma delta."))
	assert.Equal(t, "_______  beta\t_______ _______", c.BlankedText)
}

func TestApply_NoEligibleWords(t *testing.T) {
	c := NewSelector(nil).Apply(chunkOf("The cat is on the mat."))

	assert.Empty(t, c.Blanks)
	assert.Equal(t, "The cat is on the mat.", c.BlankedText)
	assert.False(t, c.HasBlanks())
}

func TestApply_CappedByEligibleCount(t *testing.T) {
	c := NewSelector(nil).Apply(chunkOf("It is a big red barn."))
	require.Len(t, c.Blanks, 1)
	assert.Equal(t, "barn", c.Blanks[0].Answer)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := chunkOf("Memory formation involves strengthening synaptic connections between neurons.")
	_ = NewSelector(nil).Apply(in)
	assert.Empty(t, in.BlankedText)
	assert.Nil(t, in.Blanks)
}

var alphaOnly = regexp.MustCompile(`^[A-Za-z]+$`)

func TestApply_PlaceholderInvariant(t *testing.T) {
	text := `Artificial intelligence represents one of the most significant technological advances of our time. Machine learning algorithms enable computers to learn from data without explicit programming. Deep learning networks can process complex patterns in large datasets. Natural language processing allows computers to understand human language. Computer vision systems can interpret and analyze visual information. These technologies are transforming industries across the globe.`

	policies := []Policy{EvenlySpaced{}, NewRandom(1), NewRandom(42), NewRandom(7)}
	for _, p := range policies {
		s := NewSelector(p)
		for _, size := range []int{5, 10, 18, 30} {
			for _, c := range s.ApplyAll(chunker.Chunk(text, size)) {
				assert.Equal(t, len(c.Blanks), strings.Count(c.BlankedText, lesson.Placeholder))
				assert.Equal(t, len(c.Blanks), len(strings.Split(c.BlankedText, lesson.Placeholder))-1)

				tokens := strings.Fields(c.Text)
				for i, b := range c.Blanks {
					assert.Equal(t, i, b.Index)
					assert.Regexp(t, alphaOnly, b.Answer)
					assert.Equal(t, b.Answer, Strip(tokens[b.Position]))
					if i > 0 {
						assert.Greater(t, b.Position, c.Blanks[i-1].Position)
					}
				}
			}
		}
	}
}

func TestRandom_Reproducible(t *testing.T) {
	text := "Spaced repetition helps move information from short-term memory into durable long-term memory storage."

	a := NewSelector(NewRandom(99)).Apply(chunkOf(text))
	b := NewSelector(NewRandom(99)).Apply(chunkOf(text))
	assert.Equal(t, a, b)
}

func TestEvenlySpaced_Distinct(t *testing.T) {
	candidates := []int{0, 2, 3, 5, 8, 9, 11}
	for n := 1; n <= len(candidates)+1; n++ {
		got := EvenlySpaced{}.Pick(candidates, n)
		assert.Len(t, got, min(n, len(candidates)))
		for i := 1; i < len(got); i++ {
			assert.Greater(t, got[i], got[i-1])
		}
	}
}

func TestPolicyByName(t *testing.T) {
	assert.IsType(t, EvenlySpaced{}, PolicyByName("even", 0))
	assert.IsType(t, EvenlySpaced{}, PolicyByName("", 0))
	assert.IsType(t, &Random{}, PolicyByName("random", 3))
}

func TestKeyWords(t *testing.T) {
	assert.Equal(t, []string{"Dogs", "bark", "loudly", "night"}, KeyWords("Dogs bark loudly at night."))
}
