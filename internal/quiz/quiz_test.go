package quiz

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/vocabdrill/internal/similarity"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

func testAssembler(t *testing.T) *Assembler {
	t.Helper()
	lang, err := wordlist.MustBuiltin().Language("spanish")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewAssembler(lang, wordlist.LevelBronze, similarity.BuiltinGroups(), rand.New(rand.NewPCG(7, 11)))
}

func hello() wordlist.Word {
	return wordlist.Word{Source: "hello", Translation: "hola", Pronunciation: "oh-lah"}
}

func TestStage_Table(t *testing.T) {
	tests := []struct {
		stage   int
		name    string
		options int
		limit   time.Duration
		audio   bool
		source  DistractorSource
	}{
		{1, "Duo Pick", 2, 0, false, SourceSameLevel},
		{2, "Trio Choice", 3, 0, false, SourceSameLevel},
		{3, "Quad Quest", 4, 0, false, SourceSameLevel},
		{4, "Speedy Four", 4, 5 * time.Second, false, SourceSameLevel},
		{5, "Audio Duo", 2, 0, true, SourceSameLevel},
		{6, "Audio Trio", 3, 0, true, SourceSameLevel},
		{7, "Audio Quad", 4, 0, true, SourceSameLevel},
		{8, "Wild Card", 4, 0, true, SourceCrossLevel},
		{9, "Sound Clash", 4, 0, true, SourceSoundAlike},
	}
	for _, tt := range tests {
		cfg := Stage(tt.stage)
		if cfg.Stage != tt.stage || cfg.Name != tt.name || cfg.Options != tt.options ||
			cfg.TimeLimit != tt.limit || cfg.Audio != tt.audio || cfg.Source != tt.source {
			t.Errorf("Stage(%d) = %+v", tt.stage, cfg)
		}
	}
}

func TestStage_Clamped(t *testing.T) {
	if got := Stage(0).Stage; got != 1 {
		t.Errorf("Stage(0) = %d, want 1", got)
	}
	if got := Stage(42).Stage; got != 9 {
		t.Errorf("Stage(42) = %d, want 9", got)
	}
}

func TestBuild_OptionCounts(t *testing.T) {
	a := testAssembler(t)
	for stage := 1; stage <= 9; stage++ {
		q := a.Build(hello(), stage)
		if want := Stage(stage).Options; len(q.Options) != want {
			t.Errorf("stage %d: got %d options, want %d", stage, len(q.Options), want)
		}
		if q.Stage != stage || q.StageName != StageName(stage) {
			t.Errorf("stage %d: got stage %d %q", stage, q.Stage, q.StageName)
		}
		if q.Question != "hello" {
			t.Errorf("stage %d: Question = %q, want hello", stage, q.Question)
		}
	}
}

func TestBuild_TextMode(t *testing.T) {
	a := testAssembler(t)
	q := a.Build(hello(), 3)

	if q.AudioMode || len(q.AudioSequence) != 0 {
		t.Errorf("unexpected audio mode: %+v", q)
	}
	if q.CorrectAnswer != "hola" {
		t.Errorf("CorrectAnswer = %q, want hola", q.CorrectAnswer)
	}
	if q.Options[q.CorrectIndex] != "hola" {
		t.Errorf("Options[%d] = %q, want hola", q.CorrectIndex, q.Options[q.CorrectIndex])
	}
	if !q.Check(q.CorrectIndex) || !q.CheckText("Hola ") {
		t.Error("correct answer rejected")
	}
	seen := map[string]bool{}
	for _, o := range q.Options {
		if seen[o] {
			t.Errorf("duplicate option %q", o)
		}
		seen[o] = true
	}
}

func TestBuild_AudioMode(t *testing.T) {
	a := testAssembler(t)
	for stage := 5; stage <= 9; stage++ {
		q := a.Build(hello(), stage)
		if !q.AudioMode {
			t.Fatalf("stage %d: AudioMode = false", stage)
		}
		if len(q.AudioSequence) != len(q.Options) {
			t.Fatalf("stage %d: %d audio entries for %d options", stage, len(q.AudioSequence), len(q.Options))
		}
		for i, o := range q.Options {
			if o != OptionLabel(i) {
				t.Errorf("stage %d: Options[%d] = %q, want %q", stage, i, o, OptionLabel(i))
			}
		}
		if q.AudioSequence[q.CorrectIndex] != "hola" {
			t.Errorf("stage %d: AudioSequence[%d] = %q, want hola", stage, q.CorrectIndex, q.AudioSequence[q.CorrectIndex])
		}
		if want := OptionLabel(q.CorrectIndex); q.CorrectAnswer != want {
			t.Errorf("stage %d: CorrectAnswer = %q, want %q", stage, q.CorrectAnswer, want)
		}
		if strings.Contains(strings.Join(q.Options, ","), "hola") {
			t.Errorf("stage %d: translation leaked into displayed options", stage)
		}
	}
}

func TestBuild_TimedStage(t *testing.T) {
	q := testAssembler(t).Build(hello(), 4)
	if !q.Timed() || q.TimeLimit != 5*time.Second {
		t.Errorf("TimeLimit = %v, want 5s", q.TimeLimit)
	}
	if q.Check(TimeoutChoice) {
		t.Error("timeout counted as correct")
	}
}

func TestBuild_ShortPool(t *testing.T) {
	lang := &wordlist.Language{ID: "tiny", Levels: map[wordlist.Level][]wordlist.Word{
		wordlist.LevelBronze: {hello(), {Source: "yes", Translation: "sí"}},
	}}
	a := NewAssembler(lang, wordlist.LevelBronze, nil, rand.New(rand.NewPCG(1, 1)))
	q := a.Build(hello(), 3)
	if len(q.Options) != 2 {
		t.Errorf("got %d options, want 2 from a two-word pool", len(q.Options))
	}
	if q.Options[q.CorrectIndex] != "hola" {
		t.Errorf("correct option = %q, want hola", q.Options[q.CorrectIndex])
	}
}

func TestBuild_SoundClashUsesCurated(t *testing.T) {
	lang := &wordlist.Language{ID: "en", Levels: map[wordlist.Level][]wordlist.Word{
		wordlist.LevelBronze: {{Source: "gato", Translation: "cat"}},
	}}
	a := NewAssembler(lang, wordlist.LevelBronze, similarity.BuiltinGroups(), rand.New(rand.NewPCG(3, 3)))
	q := a.Build(lang.Levels[wordlist.LevelBronze][0], 9)

	group := map[string]bool{"cat": true}
	for _, w := range similarity.BuiltinGroups()["cat"] {
		group[w] = true
	}
	if len(q.AudioSequence) != 4 {
		t.Fatalf("got %d options, want 4", len(q.AudioSequence))
	}
	for _, o := range q.AudioSequence {
		if !group[o] {
			t.Errorf("option %q not from the curated cat group", o)
		}
	}
}

func TestBuild_ShuffleCoversPositions(t *testing.T) {
	a := testAssembler(t)
	positions := map[int]bool{}
	for i := 0; i < 200; i++ {
		positions[a.Build(hello(), 3).CorrectIndex] = true
	}
	if len(positions) != 4 {
		t.Errorf("correct answer appeared in %d positions, want all 4", len(positions))
	}
}
