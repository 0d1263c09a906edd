package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// eventRepo implements EventRepo on the answer_events table. Sequence
// numbers come from the AUTOINCREMENT key, so they never repeat even after
// Clear.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO answer_events
			(run_id, lecture_id, question_number, choice, correct, mode, timestamp_unix_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		data.RunID, data.Lecture, data.Question, data.Choice, boolToInt(data.Correct), data.Mode, ts.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) Answers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	var (
		where []string
		args  []any
	)
	if opts.After > 0 {
		where = append(where, "sequence > ?")
		args = append(args, opts.After)
	}
	if opts.Lecture > 0 {
		where = append(where, "lecture_id = ?")
		args = append(args, opts.Lecture)
	}

	query := `SELECT sequence, run_id, lecture_id, question_number, choice, correct, mode, timestamp_unix_ms
		FROM answer_events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY sequence ASC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var events []AnswerEvent
	for rows.Next() {
		var (
			e       AnswerEvent
			correct int
			tsMs    int64
		)
		if err := rows.Scan(&e.Sequence, &e.RunID, &e.Lecture, &e.Question, &e.Choice, &correct, &e.Mode, &tsMs); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		e.Correct = correct != 0
		e.Timestamp = time.UnixMilli(tsMs)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) LectureAccuracy(ctx context.Context, lecture int) (float64, int, error) {
	var total, correct int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(correct), 0) FROM answer_events WHERE lecture_id = ?`,
		lecture,
	).Scan(&total, &correct)
	if err != nil {
		return 0, 0, fmt.Errorf("query lecture accuracy: %w", err)
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(correct) / float64(total), total, nil
}

func (r *eventRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM answer_events`); err != nil {
		return fmt.Errorf("clear answer events: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
