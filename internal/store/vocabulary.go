package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/vocabdrill/internal/wordlist"
)

type vocabularyRepo struct {
	drv *entsql.Driver
}

func (r *vocabularyRepo) Add(ctx context.Context, language string, level wordlist.Level, words []wordlist.Word) (int, error) {
	now := formatTime(time.Now())
	ins := entsql.Dialect(dialect.SQLite).
		Insert(tableVocabulary).
		Columns("language", "level", "source", "translation", "pronunciation", "added_at")

	n := 0
	for _, w := range words {
		src := strings.TrimSpace(w.Source)
		tr := strings.TrimSpace(w.Translation)
		if src == "" || tr == "" {
			continue
		}
		ins.Values(language, string(level), src, tr, strings.TrimSpace(w.Pronunciation), now)
		n++
	}
	if n == 0 {
		return 0, nil
	}

	q, args := ins.OnConflict(
		entsql.ConflictColumns("language", "level", "source"),
		entsql.ResolveWith(func(u *entsql.UpdateSet) {
			u.SetExcluded("translation")
			u.SetExcluded("pronunciation")
		}),
	).Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return 0, fmt.Errorf("add vocabulary: %w", err)
	}
	return n, nil
}

func (r *vocabularyRepo) All(ctx context.Context) ([]VocabularyEntry, error) {
	q, args := entsql.Dialect(dialect.SQLite).
		Select("language", "level", "source", "translation", "pronunciation", "added_at").
		From(entsql.Table(tableVocabulary)).
		OrderBy("language", "level", "added_at", "source").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query vocabulary: %w", err)
	}
	defer rows.Close()

	var entries []VocabularyEntry
	for rows.Next() {
		var (
			e            VocabularyEntry
			level, added string
		)
		if err := rows.Scan(&e.Language, &level, &e.Word.Source, &e.Word.Translation, &e.Word.Pronunciation, &added); err != nil {
			return nil, fmt.Errorf("scan vocabulary: %w", err)
		}
		e.Level = wordlist.Level(level)
		e.AddedAt = parseTime(added)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vocabulary: %w", err)
	}
	return entries, nil
}

// MergeVocabulary adds every stored entry to the catalog. Returns the number
// of words that were new to it.
func MergeVocabulary(cat *wordlist.Catalog, entries []VocabularyEntry) int {
	type bucket struct {
		language string
		level    wordlist.Level
	}
	grouped := make(map[bucket][]wordlist.Word)
	var order []bucket
	for _, e := range entries {
		b := bucket{e.Language, e.Level}
		if _, ok := grouped[b]; !ok {
			order = append(order, b)
		}
		grouped[b] = append(grouped[b], e.Word)
	}

	added := 0
	for _, b := range order {
		added += cat.Merge(b.language, b.level, grouped[b])
	}
	return added
}
