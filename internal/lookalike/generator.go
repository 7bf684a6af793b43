package lookalike

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/vocabdrill/internal/llm"
)

// DefaultLanguage is used when a generator is created without a language.
const DefaultLanguage = "English"

const systemPromptFormat = `You help build a vocabulary quiz for language learners.
Given a word in %[1]s, list real %[1]s words that a learner could easily
confuse with it because they look or sound alike: words differing by one or
two letters, rhymes, or words with the same start. Every word you list must
be %[1]s. Never include the word itself, inflections of it, synonyms or
translations. Use lowercase.`

var lookalikeSchema = &llm.Schema{
	Name:        "lookalike-words",
	Description: "Real words that look or sound like the given word",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"word": map[string]any{
				"type":        "string",
				"description": "The word the lookalikes are for",
			},
			"lookalikes": map[string]any{
				"type":        "array",
				"description": "Up to 8 confusable words",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required":             []string{"word", "lookalikes"},
		"additionalProperties": false,
	},
}

type lookalikeOutput struct {
	Word       string   `json:"word"`
	Lookalikes []string `json:"lookalikes"`
}

// ErrNoLookalikes is returned when the model answered but nothing usable
// survived normalization.
var ErrNoLookalikes = errors.New("no usable lookalikes")

// Generator asks a language model for lookalike sets.
type Generator struct {
	provider llm.Provider
	language string
	log      *zap.Logger
	timeout  time.Duration
}

// NewGenerator creates a generator for words of the named language, which
// is also the language the lookalikes must be in. An empty language means
// DefaultLanguage. timeout bounds each word's request; zero means no extra
// bound.
func NewGenerator(provider llm.Provider, language string, timeout time.Duration, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	if language == "" {
		language = DefaultLanguage
	}
	return &Generator{provider: provider, language: language, log: log, timeout: timeout}
}

// Generate returns a normalized lookalike set for word.
func (g *Generator) Generate(ctx context.Context, word string) ([]string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeLookalike)

	prompt := fmt.Sprintf("Word: %s\nLanguage: %s\nList up to %d %s lookalikes.",
		word, g.language, MaxForms, g.language)
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      fmt.Sprintf(systemPromptFormat, g.language),
		Messages:    llm.UserMessage(prompt),
		Schema:      lookalikeSchema,
		MaxTokens:   256,
		Temperature: 0.4,
	})
	if err != nil {
		return nil, fmt.Errorf("generate lookalikes for %q: %w", word, err)
	}

	var out lookalikeOutput
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode lookalikes for %q: %w", word, err)
	}

	forms := Normalize(word, out.Lookalikes)
	g.log.Debug("generated lookalikes",
		zap.String("word", word),
		zap.String("language", g.language),
		zap.Int("proposed", len(out.Lookalikes)),
		zap.Int("kept", len(forms)),
	)
	if len(forms) == 0 {
		return nil, fmt.Errorf("%q: %w", word, ErrNoLookalikes)
	}
	return forms, nil
}
