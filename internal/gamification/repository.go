package gamification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abhisek/memty/internal/store"
)

// Repository persists one user's gamification state. Each part is written
// independently.
type Repository interface {
	// Load returns whatever state could be read. Parts that are missing
	// start fresh; parts that fail to read are reported in the error and
	// also start fresh.
	Load(ctx context.Context) (State, error)
	SaveStats(ctx context.Context, stats UserStats) error
	SaveBadges(ctx context.Context, badges []Badge) error
	SaveLastStudyDate(ctx context.Context, date time.Time) error
	Clear(ctx context.Context) error
}

// CompletionLog records lesson completions so weekly totals can be counted.
// *store.CompletionRepo satisfies it.
type CompletionLog interface {
	Record(ctx context.Context, userID, lessonID string, at time.Time) error
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)
	Clear(ctx context.Context, userID string) error
}

// NamespaceRepository stores state as versioned records in a user-scoped
// store.Namespace.
type NamespaceRepository struct {
	ns *store.Namespace
}

func NewNamespaceRepository(ns *store.Namespace) *NamespaceRepository {
	return &NamespaceRepository{ns: ns}
}

func (r *NamespaceRepository) Load(ctx context.Context) (State, error) {
	st := NewState()
	var errs []error

	var stats UserStats
	if ok, err := r.ns.Get(ctx, store.KeyUserStats, &stats); err != nil {
		errs = append(errs, err)
	} else if ok {
		st.Stats = stats
	}

	var badges []Badge
	if ok, err := r.ns.Get(ctx, store.KeyBadges, &badges); err != nil {
		errs = append(errs, err)
	} else if ok {
		st.Badges = mergeCatalog(badges)
	}

	var last time.Time
	if ok, err := r.ns.Get(ctx, store.KeyLastStudyDate, &last); err != nil {
		errs = append(errs, err)
	} else if ok {
		st.LastStudyDate = last
	}

	return st, errors.Join(errs...)
}

func (r *NamespaceRepository) SaveStats(ctx context.Context, stats UserStats) error {
	return r.ns.Set(ctx, store.KeyUserStats, stats)
}

func (r *NamespaceRepository) SaveBadges(ctx context.Context, badges []Badge) error {
	return r.ns.Set(ctx, store.KeyBadges, badges)
}

func (r *NamespaceRepository) SaveLastStudyDate(ctx context.Context, date time.Time) error {
	return r.ns.Set(ctx, store.KeyLastStudyDate, date)
}

func (r *NamespaceRepository) Clear(ctx context.Context) error {
	return errors.Join(
		r.ns.Remove(ctx, store.KeyUserStats),
		r.ns.Remove(ctx, store.KeyBadges),
		r.ns.Remove(ctx, store.KeyLastStudyDate),
	)
}

type completion struct {
	userID   string
	lessonID string
	date     time.Time
}

// MemoryCompletionLog is an in-process CompletionLog.
type MemoryCompletionLog struct {
	mu      sync.Mutex
	entries []completion
}

func NewMemoryCompletionLog() *MemoryCompletionLog {
	return &MemoryCompletionLog{}
}

func (l *MemoryCompletionLog) Record(_ context.Context, userID, lessonID string, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, completion{userID: userID, lessonID: lessonID, date: Date(at)})
	return nil
}

func (l *MemoryCompletionLog) CountSince(_ context.Context, userID string, since time.Time) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	from := Date(since)
	n := 0
	for _, e := range l.entries {
		if e.userID == userID && !e.date.Before(from) {
			n++
		}
	}
	return n, nil
}

func (l *MemoryCompletionLog) Clear(_ context.Context, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.userID != userID {
			kept = append(kept, e)
		}
	}
	l.entries = kept
	return nil
}
