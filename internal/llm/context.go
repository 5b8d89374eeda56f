package llm

import "context"

// Purpose labels a request in the request log.
type Purpose string

const (
	PurposeQuiz    Purpose = "quiz-gen"
	PurposeUnknown Purpose = "unknown"
)

type ctxKey int

const (
	purposeKey ctxKey = iota
	pageKey
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose Purpose) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) Purpose {
	if v, ok := ctx.Value(purposeKey).(Purpose); ok && v != "" {
		return v
	}
	return PurposeUnknown
}

// WithPage tags the context with the lesson page a request was made for.
func WithPage(ctx context.Context, pageNumber int) context.Context {
	return context.WithValue(ctx, pageKey, pageNumber)
}

// PageFrom returns the page number set by WithPage.
func PageFrom(ctx context.Context) (int, bool) {
	n, ok := ctx.Value(pageKey).(int)
	return n, ok
}
