package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	// Each test gets its own named in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{
		tableWordProgress, tableHighScores, tableLevelMastery, tableVocabulary,
		tableLookalikes, tableSessionEvent, tableAnswerEvent, tableLLMEvent,
	} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.LevelRepo().Set(ctx, "hungarian", wordlist.LevelSilver, 3))
	require.NoError(t, migrate(ctx, s.Driver()))

	for _, index := range []string{
		"answer_events_session_id", "session_events_session_id", "llm_request_events_purpose",
	} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", index,
		).Scan(&name)
		assert.NoError(t, err, "index %s", index)
	}

	counts, err := s.LevelRepo().Load(ctx, "hungarian")
	require.NoError(t, err)
	assert.Equal(t, 3, counts[wordlist.LevelSilver])
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabdrill.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.LevelRepo().Set(ctx, "hungarian", wordlist.LevelBronze, 7))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	counts, err := s.LevelRepo().Load(ctx, "hungarian")
	require.NoError(t, err)
	assert.Equal(t, 7, counts[wordlist.LevelBronze])
}

func TestProgressRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	sched := spacedrep.NewScheduler(nil, func() time.Time { return now })
	sched.UpdateWord("alma", true)
	sched.UpdateWord("alma", true)
	sched.UpdateWord("kutya", false)
	sched.GetWordData("macska")

	require.NoError(t, repo.Save(ctx, "hungarian", sched.SnapshotData()))

	snap, err := repo.Load(ctx, "hungarian")
	require.NoError(t, err)
	require.Len(t, snap.Words, 3)

	loaded := spacedrep.NewScheduler(snap, func() time.Time { return now })
	for _, key := range []string{"alma", "kutya", "macska"} {
		want := sched.Lookup(key)
		require.True(t, loaded.Has(key), key)
		got := loaded.Lookup(key)
		assert.Equal(t, want.Stage, got.Stage, key)
		assert.Equal(t, want.Easiness, got.Easiness, key)
		assert.Equal(t, want.Interval, got.Interval, key)
		assert.Equal(t, want.Repetitions, got.Repetitions, key)
		assert.True(t, want.NextReview.Equal(got.NextReview), key)
		assert.Equal(t, want.LastReviewed == nil, got.LastReviewed == nil, key)
		assert.Equal(t, want.TotalAttempts, got.TotalAttempts, key)
		assert.Equal(t, want.CorrectAttempts, got.CorrectAttempts, key)
	}

	// Other languages are isolated.
	other, err := repo.Load(ctx, "spanish")
	require.NoError(t, err)
	assert.Empty(t, other.Words)
}

func TestProgressSaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	sched := spacedrep.NewScheduler(nil, func() time.Time { return now })
	sched.UpdateWord("alma", true)
	require.NoError(t, repo.Save(ctx, "hungarian", sched.SnapshotData()))

	sched.UpdateWord("alma", true)
	require.NoError(t, repo.Save(ctx, "hungarian", sched.SnapshotData()))

	snap, err := repo.Load(ctx, "hungarian")
	require.NoError(t, err)
	require.Len(t, snap.Words, 1)
	assert.Equal(t, 3, snap.Words["alma"].Stage)
	assert.Equal(t, 2, snap.Words["alma"].TotalAttempts)
}

func TestHighScoresReplaceAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.HighScoreRepo()
	ctx := context.Background()

	scores, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, scores)

	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	want := []session.HighScore{
		{Score: 900, Accuracy: 95, Language: "hungarian", Level: wordlist.LevelBronze, Timestamp: at},
		{Score: 700, Accuracy: 80, Language: "spanish", Level: wordlist.LevelBronze, Timestamp: at.Add(time.Hour)},
	}
	require.NoError(t, repo.Replace(ctx, want))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range want {
		assert.Equal(t, want[i].Score, got[i].Score)
		assert.Equal(t, want[i].Language, got[i].Language)
		assert.Equal(t, want[i].Level, got[i].Level)
		assert.True(t, want[i].Timestamp.Equal(got[i].Timestamp))
	}

	require.NoError(t, repo.Replace(ctx, want[1:]))
	got, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 700, got[0].Score)
}

func TestLevelSetOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.LevelRepo()
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "hungarian", wordlist.LevelBronze, 5))
	require.NoError(t, repo.Set(ctx, "hungarian", wordlist.LevelBronze, 12))
	require.NoError(t, repo.Set(ctx, "hungarian", wordlist.LevelSilver, -3))
	require.NoError(t, repo.Set(ctx, "spanish", wordlist.LevelBronze, 1))

	counts, err := repo.Load(ctx, "hungarian")
	require.NoError(t, err)
	assert.Equal(t, map[wordlist.Level]int{
		wordlist.LevelBronze: 12,
		wordlist.LevelSilver: 0,
	}, counts)
}

func TestVocabularyAddAndMerge(t *testing.T) {
	s := openTestStore(t)
	repo := s.VocabularyRepo()
	ctx := context.Background()

	n, err := repo.Add(ctx, "hungarian", wordlist.LevelSilver, []wordlist.Word{
		{Source: "repülőgép", Translation: "airplane"},
		{Source: "vonat", Translation: "train", Pronunciation: "vo-nat"},
		{Source: "", Translation: "nothing"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Re-adding a source updates it.
	_, err = repo.Add(ctx, "hungarian", wordlist.LevelSilver, []wordlist.Word{
		{Source: "vonat", Translation: "the train"},
	})
	require.NoError(t, err)

	entries, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byKey := map[string]VocabularyEntry{}
	for _, e := range entries {
		byKey[e.Word.Key()] = e
	}
	assert.Equal(t, "the train", byKey["vonat"].Word.Translation)
	assert.Equal(t, wordlist.LevelSilver, byKey["vonat"].Level)

	cat := wordlist.NewCatalog()
	added := MergeVocabulary(cat, entries)
	assert.Equal(t, 2, added)

	lang, err := cat.Language("hungarian")
	require.NoError(t, err)
	assert.Len(t, lang.Words(wordlist.LevelSilver), 2)
}

func TestLookalikePutAndAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.LookalikeRepo()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, LookalikeSet{Word: "dog", Forms: []string{"dig", "dug"}, Origin: "llm"}))
	require.NoError(t, repo.Put(ctx, LookalikeSet{Word: "cat", Forms: []string{"cut"}, Origin: "llm"}))
	require.NoError(t, repo.Put(ctx, LookalikeSet{Word: "dog", Forms: []string{"dot", "fog"}, Origin: "import"}))

	sets, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "cat", sets[0].Word)
	assert.Equal(t, []string{"dot", "fog"}, sets[1].Forms)
	assert.Equal(t, "import", sets[1].Origin)

	assert.Error(t, repo.Put(ctx, LookalikeSet{Forms: []string{"x"}}))
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSessionEventsAndSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", Action: "start", Language: "hungarian", Level: "bronze",
	}))
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{
		SessionID: "s1", WordKey: "alma", Stage: 1, Correct: true, TimeMs: 1200, NewStage: 2,
	}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", Action: "end", Language: "hungarian", Level: "bronze",
		QuestionsServed: 1, CorrectAnswers: 1, Score: 850, DurationSecs: 4,
	}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s2", Action: "end", Language: "spanish", Level: "bronze", Score: 300,
	}))

	summaries, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "s2", summaries[0].SessionID, "newest first")
	assert.Equal(t, 850, summaries[1].Score)
	assert.False(t, summaries[1].Timestamp.IsZero())

	limited, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "lookalike", InputTokens: 100, OutputTokens: 20, LatencyMs: 300, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "lookalike", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "lookalike", Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "boom", list[0].ErrorMessage)
	assert.Greater(t, list[0].Sequence, list[1].Sequence)

	got, err := repo.GetLLMEvent(ctx, list[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 50, got.InputTokens)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 1)
	assert.Equal(t, 3, byPurpose[0].Calls)
	assert.Equal(t, 150, byPurpose[0].InputTokens)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, 2, byModel[0].Calls, "failed requests are not billed")
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.LevelRepo().Set(ctx, "hungarian", wordlist.LevelBronze, 3))
	require.NoError(t, s.HighScoreRepo().Replace(ctx, []session.HighScore{{Score: 1, Level: wordlist.LevelBronze}}))
	require.NoError(t, s.LookalikeRepo().Put(ctx, LookalikeSet{Word: "dog", Forms: []string{"dig"}}))

	require.NoError(t, s.Reset(ctx))

	counts, err := s.LevelRepo().Load(ctx, "hungarian")
	require.NoError(t, err)
	assert.Empty(t, counts)
	scores, err := s.HighScoreRepo().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, scores)
	sets, err := s.LookalikeRepo().All(ctx)
	require.NoError(t, err)
	assert.Len(t, sets, 1, "lookalikes survive reset")
}
