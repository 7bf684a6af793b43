package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type lookalikeRepo struct {
	drv *entsql.Driver
}

func (r *lookalikeRepo) Put(ctx context.Context, set LookalikeSet) error {
	if set.Word == "" {
		return fmt.Errorf("put lookalikes: empty word")
	}
	forms, err := json.Marshal(set.Forms)
	if err != nil {
		return fmt.Errorf("marshal lookalike forms: %w", err)
	}
	if set.UpdatedAt.IsZero() {
		set.UpdatedAt = time.Now()
	}

	q, args := entsql.Dialect(dialect.SQLite).
		Insert(tableLookalikes).
		Columns("word", "forms", "origin", "updated_at").
		Values(set.Word, string(forms), set.Origin, formatTime(set.UpdatedAt)).
		OnConflict(
			entsql.ConflictColumns("word"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("put lookalikes %q: %w", set.Word, err)
	}
	return nil
}

func (r *lookalikeRepo) All(ctx context.Context) ([]LookalikeSet, error) {
	q, args := entsql.Dialect(dialect.SQLite).
		Select("word", "forms", "origin", "updated_at").
		From(entsql.Table(tableLookalikes)).
		OrderBy("word").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query lookalikes: %w", err)
	}
	defer rows.Close()

	var sets []LookalikeSet
	for rows.Next() {
		var (
			set           LookalikeSet
			forms, update string
		)
		if err := rows.Scan(&set.Word, &forms, &set.Origin, &update); err != nil {
			return nil, fmt.Errorf("scan lookalikes: %w", err)
		}
		if err := json.Unmarshal([]byte(forms), &set.Forms); err != nil {
			return nil, fmt.Errorf("decode lookalikes %q: %w", set.Word, err)
		}
		set.UpdatedAt = parseTime(update)
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lookalikes: %w", err)
	}
	return sets, nil
}
