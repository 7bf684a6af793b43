package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := entsql.Dialect(dialect.SQLite).
		Insert(tableSessionEvent).
		Columns("sequence", "timestamp", "session_id", "action", "language", "level",
			"questions_served", "correct_answers", "score", "duration_secs").
		Values(seqNum, formatTime(time.Now()), data.SessionID, data.Action, data.Language, data.Level,
			data.QuestionsServed, data.CorrectAnswers, data.Score, data.DurationSecs).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := entsql.Dialect(dialect.SQLite).
		Insert(tableAnswerEvent).
		Columns("sequence", "timestamp", "session_id", "word_key", "stage",
			"correct", "timed_out", "time_ms", "new_stage").
		Values(seqNum, formatTime(time.Now()), data.SessionID, data.WordKey, data.Stage,
			data.Correct, data.TimedOut, data.TimeMs, data.NewStage).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("session_id", "timestamp", "language", "level",
			"questions_served", "correct_answers", "score", "duration_secs").
		From(entsql.Table(tableSessionEvent)).
		Where(entsql.EQ("action", "end"))
	q, args := applyQueryOpts(sel, opts).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var (
			rec SessionSummaryRecord
			ts  string
		)
		if err := rows.Scan(&rec.SessionID, &ts, &rec.Language, &rec.Level,
			&rec.QuestionsServed, &rec.CorrectAnswers, &rec.Score, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.Timestamp = parseTime(ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session summaries: %w", err)
	}
	return records, nil
}
