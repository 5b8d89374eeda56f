package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/memty/internal/lesson"
	"github.com/abhisek/memty/internal/llm"
	"github.com/abhisek/memty/internal/logger"
)

// LLM implements Synthesizer using an llm.Provider.
type LLM struct {
	provider llm.Provider
	config   Config
}

// NewLLM creates an LLM synthesizer with the given provider and config.
func NewLLM(provider llm.Provider, cfg Config) *LLM {
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return &LLM{provider: provider, config: cfg}
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Questions []struct {
		Question    string   `json:"question"`
		Options     []string `json:"options"`
		Correct     int      `json:"correct"`
		Explanation string   `json:"explanation"`
	} `json:"questions"`
}

func (s *LLM) Synthesize(ctx context.Context, pageText string, pageNumber int) ([]lesson.QuizQuestion, error) {
	focus := slotSentences(pageText)
	if len(focus) == 0 {
		return nil, nil
	}

	questions, err := s.generate(ctx, pageText, pageNumber, focus)
	if err == nil {
		return questions, nil
	}
	if s.config.Fallback == nil || ctx.Err() != nil {
		return nil, err
	}

	s.config.Logger.Warn("quiz generation fell back to template",
		"page", pageNumber, "model", s.provider.ModelID(), "error", err)
	return s.config.Fallback.Synthesize(ctx, pageText, pageNumber)
}

func (s *LLM) generate(ctx context.Context, pageText string, pageNumber int, focus []string) ([]lesson.QuizQuestion, error) {
	ctx = llm.WithPage(llm.WithPurpose(ctx, llm.PurposeQuiz), pageNumber)

	req := llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(pageText, focus),
		Schema:      QuizSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	want := len(focus)
	out := make([]lesson.QuizQuestion, 0, want)
	for _, r := range raw.Questions {
		if len(out) == want {
			break
		}
		q := lesson.QuizQuestion{
			ID:          QuestionID(pageNumber, len(out)),
			Question:    r.Question,
			Options:     r.Options,
			Correct:     r.Correct,
			Explanation: r.Explanation,
		}
		if verr := s.validate(&q); verr != nil {
			s.config.Logger.Debug("dropped generated question", "page", pageNumber, "reason", verr.Error())
			continue
		}
		out = append(out, q)
	}

	if len(out) < want {
		return nil, fmt.Errorf("got %d valid questions, want %d", len(out), want)
	}
	return out, nil
}

func (s *LLM) validate(q *lesson.QuizQuestion) *ValidationError {
	for _, v := range s.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}
