package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/memty/internal/lesson"
)

// lessonRepo stores each lesson aggregate as a JSON document.
type lessonRepo struct {
	db *sql.DB
}

func (r *lessonRepo) Save(ctx context.Context, l *lesson.LessonData) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode lesson: %w", err)
	}

	query, args := builder().
		Insert(LessonsTable.Name).
		Columns("id", "title", "created_at", "data").
		Values(l.ID, l.Title, l.CreatedAt.Unix(), data).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save lesson: %w", err)
	}
	return nil
}

func (r *lessonRepo) Get(ctx context.Context, id string) (*lesson.LessonData, error) {
	query, args := builder().
		Select("data").
		From(entsql.Table(LessonsTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	var data []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lesson %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}

	var l lesson.LessonData
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode lesson: %w", err)
	}
	return &l, nil
}

func (r *lessonRepo) List(ctx context.Context) ([]LessonSummary, error) {
	query, args := builder().
		Select("id", "title", "created_at").
		From(entsql.Table(LessonsTable.Name)).
		OrderBy(entsql.Desc("created_at"), "id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var out []LessonSummary
	for rows.Next() {
		var s LessonSummary
		var created int64
		if err := rows.Scan(&s.ID, &s.Title, &created); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		s.CreatedAt = time.Unix(created, 0)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *lessonRepo) Delete(ctx context.Context, id string) error {
	query, args := builder().
		Delete(LessonsTable.Name).
		Where(entsql.EQ("id", id)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	return nil
}
