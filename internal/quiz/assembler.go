package quiz

import (
	"math/rand/v2"

	"github.com/abhisek/vocabdrill/internal/similarity"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// Assembler builds quizzes for words of one language level.
type Assembler struct {
	Language *wordlist.Language
	Level    wordlist.Level
	Curated  similarity.Curated
	Rand     *rand.Rand
}

// NewAssembler creates an assembler. A nil rng is replaced by a randomly
// seeded one; a nil curated source disables curated lookalikes.
func NewAssembler(lang *wordlist.Language, level wordlist.Level, curated similarity.Curated, rng *rand.Rand) *Assembler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Assembler{Language: lang, Level: level, Curated: curated, Rand: rng}
}

// Build composes the quiz for word at the given stage. Stages outside
// [1, 9] are clamped. When distractors run short the quiz has fewer options
// than the stage calls for.
func (a *Assembler) Build(word wordlist.Word, stage int) *Quiz {
	cfg := Stage(stage)
	distractors := similarity.Texts(a.distractors(word, cfg))

	options := make([]string, 0, len(distractors)+1)
	options = append(options, word.Translation)
	options = append(options, distractors...)
	a.Rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correct := 0
	for i, o := range options {
		if o == word.Translation {
			correct = i
			break
		}
	}

	q := &Quiz{
		Question:     word.Source,
		CorrectIndex: correct,
		Stage:        cfg.Stage,
		StageName:    cfg.Name,
		TimeLimit:    cfg.TimeLimit,
		AudioMode:    cfg.Audio,
		Word:         word,
	}

	if cfg.Audio {
		q.AudioSequence = options
		q.Options = make([]string, len(options))
		for i := range options {
			q.Options[i] = OptionLabel(i)
		}
		q.CorrectAnswer = OptionLabel(correct)
	} else {
		q.Options = options
		q.AudioSequence = []string{}
		q.CorrectAnswer = word.Translation
	}
	return q
}

func (a *Assembler) distractors(word wordlist.Word, cfg StageConfig) []similarity.Candidate {
	n := cfg.Options - 1

	var levelPool, languagePool []wordlist.Word
	if a.Language != nil {
		levelPool = a.Language.Words(a.Level)
		languagePool = a.Language.AllWords()
	}

	switch cfg.Source {
	case SourceCrossLevel:
		return similarity.CrossLevel(word, languagePool, n, a.Rand)
	case SourceSoundAlike:
		return similarity.SoundAlike(word, levelPool, a.Curated, n, a.Rand)
	default:
		return similarity.SameLevel(word, levelPool, n, a.Rand)
	}
}
