package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/vocabdrill/internal/spacedrep"
)

var progressColumns = []string{
	"word_key", "stage", "easiness", "interval_days", "repetitions",
	"next_review", "last_reviewed", "correct_streak", "total_attempts",
	"correct_attempts", "mastered",
}

// progressRepo implements ProgressRepo using the ent SQL builder.
type progressRepo struct {
	drv *entsql.Driver
}

func (r *progressRepo) Load(ctx context.Context, language string) (*spacedrep.Snapshot, error) {
	q, args := entsql.Dialect(dialect.SQLite).
		Select(progressColumns...).
		From(entsql.Table(tableWordProgress)).
		Where(entsql.EQ("language", language)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	snap := &spacedrep.Snapshot{Words: make(map[string]*spacedrep.ProgressData)}
	for rows.Next() {
		var (
			pd           spacedrep.ProgressData
			lastReviewed sql.NullString
		)
		if err := rows.Scan(
			&pd.Key, &pd.Stage, &pd.Easiness, &pd.Interval, &pd.Repetitions,
			&pd.NextReview, &lastReviewed, &pd.CorrectStreak, &pd.TotalAttempts,
			&pd.CorrectAttempts, &pd.Mastered,
		); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		if lastReviewed.Valid {
			lr := lastReviewed.String
			pd.LastReviewed = &lr
		}
		snap.Words[pd.Key] = &pd
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return snap, nil
}

func (r *progressRepo) Save(ctx context.Context, language string, snap *spacedrep.Snapshot) error {
	if snap == nil || len(snap.Words) == 0 {
		return nil
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin save progress: %w", err)
	}

	for key, pd := range snap.Words {
		if pd == nil {
			continue
		}
		var lastReviewed any
		if pd.LastReviewed != nil {
			lastReviewed = *pd.LastReviewed
		}
		q, args := entsql.Dialect(dialect.SQLite).
			Insert(tableWordProgress).
			Columns(append([]string{"language"}, progressColumns...)...).
			Values(
				language, key, pd.Stage, pd.Easiness, pd.Interval, pd.Repetitions,
				pd.NextReview, lastReviewed, pd.CorrectStreak, pd.TotalAttempts,
				pd.CorrectAttempts, pd.Mastered,
			).
			OnConflict(
				entsql.ConflictColumns("language", "word_key"),
				entsql.ResolveWithNewValues(),
			).
			Query()
		if err := tx.Exec(ctx, q, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("save progress %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit progress: %w", err)
	}
	return nil
}
