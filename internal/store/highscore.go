package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// highScoreRepo stores the list with its rank as primary key.
type highScoreRepo struct {
	drv *entsql.Driver
}

func (r *highScoreRepo) List(ctx context.Context) ([]session.HighScore, error) {
	q, args := entsql.Dialect(dialect.SQLite).
		Select("score", "accuracy", "language", "level", "achieved_at").
		From(entsql.Table(tableHighScores)).
		OrderBy("rank").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query high scores: %w", err)
	}
	defer rows.Close()

	var scores []session.HighScore
	for rows.Next() {
		var (
			hs    session.HighScore
			level string
			at    string
		)
		if err := rows.Scan(&hs.Score, &hs.Accuracy, &hs.Language, &level, &at); err != nil {
			return nil, fmt.Errorf("scan high score: %w", err)
		}
		hs.Level = wordlist.Level(level)
		hs.Timestamp = parseTime(at)
		scores = append(scores, hs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate high scores: %w", err)
	}
	return scores, nil
}

func (r *highScoreRepo) Replace(ctx context.Context, scores []session.HighScore) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin replace high scores: %w", err)
	}

	q, args := entsql.Dialect(dialect.SQLite).Delete(tableHighScores).Query()
	if err := tx.Exec(ctx, q, args, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear high scores: %w", err)
	}

	if len(scores) > 0 {
		ins := entsql.Dialect(dialect.SQLite).
			Insert(tableHighScores).
			Columns("rank", "score", "accuracy", "language", "level", "achieved_at")
		for i, hs := range scores {
			ins.Values(i+1, hs.Score, hs.Accuracy, hs.Language, string(hs.Level), formatTime(hs.Timestamp))
		}
		q, args := ins.Query()
		if err := tx.Exec(ctx, q, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert high scores: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit high scores: %w", err)
	}
	return nil
}
