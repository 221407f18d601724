package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the progress_events table.
type eventRepo struct {
	store *Store
}

func (r *eventRepo) AppendTopicCompleted(ctx context.Context, data TopicCompletedEventData) error {
	return r.append(ctx, data.CourseID, KindTopicCompleted,
		[]string{"topic_id", "position"},
		[]any{data.TopicID, data.Position},
	)
}

func (r *eventRepo) AppendExamSubmitted(ctx context.Context, data ExamSubmittedEventData) error {
	return r.append(ctx, data.CourseID, KindExamSubmitted,
		[]string{"attempt_id", "score", "passed"},
		[]any{data.AttemptID, data.Score, data.Passed},
	)
}

func (r *eventRepo) append(ctx context.Context, courseID, kind string, cols []string, vals []any) error {
	seq, err := r.store.seq.Next(ctx)
	if err != nil {
		return err
	}

	columns := append([]string{"sequence", "timestamp", "course_id", "kind"}, cols...)
	values := append([]any{seq, time.Now().UTC(), courseID, kind}, vals...)

	query, args := r.store.builder().Insert(eventsTable).
		Columns(columns...).
		Values(values...).
		Query()
	if err := r.store.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append %s event: %w", kind, err)
	}
	return nil
}

func (r *eventRepo) RecentEvents(ctx context.Context, courseID string, limit int) ([]ProgressEvent, error) {
	b := r.store.builder()
	sel := b.Select("sequence", "timestamp", "course_id", "kind", "topic_id", "position", "attempt_id", "score", "passed").
		From(b.Table(eventsTable)).
		Where(entsql.EQ("course_id", courseID)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.store.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []ProgressEvent
	for rows.Next() {
		var (
			e         ProgressEvent
			topicID   sql.NullString
			position  sql.NullFloat64
			attemptID sql.NullString
			score     sql.NullInt64
			passed    sql.NullBool
		)
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.CourseID, &e.Kind, &topicID, &position, &attemptID, &score, &passed); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.TopicID = topicID.String
		e.Position = position.Float64
		e.AttemptID = attemptID.String
		e.Score = int(score.Int64)
		e.Passed = passed.Bool
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
