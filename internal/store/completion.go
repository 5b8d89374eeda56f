package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const dateLayout = "2006-01-02"

// CompletionRepo logs lesson completions by local calendar date.
type CompletionRepo struct {
	db *sql.DB
}

// Record logs that userID completed lessonID at the given time.
func (r *CompletionRepo) Record(ctx context.Context, userID, lessonID string, at time.Time) error {
	query, args := builder().
		Insert(LessonCompletionsTable.Name).
		Columns("user_id", "lesson_id", "completed_on", "created_at").
		Values(userID, lessonID, at.Format(dateLayout), at.Unix()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	return nil
}

// CountSince returns how many completions userID logged on or after the
// calendar date of since.
func (r *CompletionRepo) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(entsql.Table(LessonCompletionsTable.Name)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.GTE("completed_on", since.Format(dateLayout)),
		)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count completions: %w", err)
	}
	return n, nil
}

// Clear removes every completion logged for userID.
func (r *CompletionRepo) Clear(ctx context.Context, userID string) error {
	query, args := builder().
		Delete(LessonCompletionsTable.Name).
		Where(entsql.EQ("user_id", userID)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear completions: %w", err)
	}
	return nil
}
