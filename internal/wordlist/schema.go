package wordlist

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://wordlist.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func wordListSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(schemaJSON, &doc); err != nil {
			compileErr = fmt.Errorf("parse word list schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Decode parses a word-list document and validates it against the embedded
// JSON schema before converting it into a Language.
func Decode(r io.Reader) (*Language, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return decodeBytes(raw)
}

func decodeBytes(raw []byte) (*Language, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := wordListSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, fmt.Errorf("word list validation failed: %w", err)
	}

	var lang Language
	if err := json.Unmarshal(raw, &lang); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}
	for lv, words := range lang.Levels {
		lang.Levels[lv] = dedupe(words)
	}
	return &lang, nil
}

// dedupe drops later entries that repeat an earlier source key.
func dedupe(words []Word) []Word {
	seen := make(map[string]bool, len(words))
	out := words[:0]
	for _, w := range words {
		if seen[w.Key()] {
			continue
		}
		seen[w.Key()] = true
		out = append(out, w)
	}
	return out
}
