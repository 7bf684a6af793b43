// Package lookalike manages the curated confusable-word sets used by the
// sound-alike quiz stages: the shipped groups, sets stored in the database,
// and sets generated by a language model.
package lookalike

import (
	"sort"
	"strings"
	"sync"

	"github.com/abhisek/vocabdrill/internal/similarity"
	"github.com/abhisek/vocabdrill/internal/store"
)

// Origin labels where a set came from.
const (
	OriginBuiltin = "builtin"
	OriginLLM     = "llm"
	OriginManual  = "manual"
)

// Entry is one word's lookalike set as listed by Catalog.Entries.
type Entry struct {
	Word   string
	Forms  []string
	Origin string
}

// Catalog implements similarity.Curated over the built-in groups plus any
// stored sets. A stored set for a word replaces the built-in one. Safe for
// concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	builtin similarity.Groups
	stored  map[string]Entry
}

// NewCatalog builds a catalog from the built-in groups and sets loaded
// from the store.
func NewCatalog(sets ...store.LookalikeSet) *Catalog {
	c := &Catalog{
		builtin: similarity.BuiltinGroups(),
		stored:  make(map[string]Entry),
	}
	for _, s := range sets {
		c.Set(s.Word, s.Forms, s.Origin)
	}
	return c
}

// Lookalikes implements similarity.Curated.
func (c *Catalog) Lookalikes(word string) []string {
	key := strings.ToLower(strings.TrimSpace(word))

	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.stored[key]; ok {
		return e.Forms
	}
	return c.builtin.Lookalikes(key)
}

// Has reports whether any set exists for word.
func (c *Catalog) Has(word string) bool {
	return len(c.Lookalikes(word)) > 0
}

// Set stores forms for word after normalizing them. Empty results are
// ignored.
func (c *Catalog) Set(word string, forms []string, origin string) {
	key := strings.ToLower(strings.TrimSpace(word))
	forms = Normalize(key, forms)
	if key == "" || len(forms) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored[key] = Entry{Word: key, Forms: forms, Origin: origin}
}

// Missing returns the words, lowercased and de-duplicated, that have no set
// yet. Input order is kept.
func (c *Catalog) Missing(words []string) []string {
	seen := make(map[string]bool, len(words))
	var out []string
	for _, w := range words {
		key := strings.ToLower(strings.TrimSpace(w))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if !c.Has(key) {
			out = append(out, key)
		}
	}
	return out
}

// Entries lists every set sorted by word.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, 0, len(c.builtin)+len(c.stored))
	for w, forms := range c.builtin {
		if _, ok := c.stored[w]; ok {
			continue
		}
		out = append(out, Entry{Word: w, Forms: forms, Origin: OriginBuiltin})
	}
	for _, e := range c.stored {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}
