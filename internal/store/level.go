package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/vocabdrill/internal/wordlist"
)

type levelRepo struct {
	drv *entsql.Driver
}

func (r *levelRepo) Load(ctx context.Context, language string) (map[wordlist.Level]int, error) {
	q, args := entsql.Dialect(dialect.SQLite).
		Select("level", "mastered").
		From(entsql.Table(tableLevelMastery)).
		Where(entsql.EQ("language", language)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query level mastery: %w", err)
	}
	defer rows.Close()

	counts := make(map[wordlist.Level]int)
	for rows.Next() {
		var (
			level    string
			mastered int
		)
		if err := rows.Scan(&level, &mastered); err != nil {
			return nil, fmt.Errorf("scan level mastery: %w", err)
		}
		counts[wordlist.Level(level)] = mastered
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate level mastery: %w", err)
	}
	return counts, nil
}

func (r *levelRepo) Set(ctx context.Context, language string, level wordlist.Level, mastered int) error {
	q, args := entsql.Dialect(dialect.SQLite).
		Insert(tableLevelMastery).
		Columns("language", "level", "mastered").
		Values(language, string(level), max(0, mastered)).
		OnConflict(
			entsql.ConflictColumns("language", "level"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("set level mastery: %w", err)
	}
	return nil
}
