package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/memty/internal/lesson"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// LessonSummary is the listing view of a stored lesson.
type LessonSummary struct {
	ID        string
	Title     string
	CreatedAt time.Time
}

// LessonRepo persists assembled lessons and their progress.
type LessonRepo interface {
	// Save inserts or replaces the lesson.
	Save(ctx context.Context, l *lesson.LessonData) error

	// Get returns the lesson or ErrNotFound.
	Get(ctx context.Context, id string) (*lesson.LessonData, error)

	// List returns summaries, newest first.
	List(ctx context.Context) ([]LessonSummary, error)

	// Delete removes the lesson. Deleting an absent lesson is not an error.
	Delete(ctx context.Context, id string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	LLMRequestEventData
	ID        int
	Timestamp time.Time
}

// LLMUsage aggregates LLM request events for one model.
type LLMUsage struct {
	Model        string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMRequests returns events newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)

	// LLMUsage aggregates events per model.
	LLMUsage(ctx context.Context) ([]LLMUsage, error)
}
