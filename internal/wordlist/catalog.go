package wordlist

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed data/*.json
var builtinFS embed.FS

// Catalog holds every known language.
type Catalog struct {
	languages map[string]*Language
	order     []string
}

// NewCatalog creates a catalog from the given languages. Later languages with
// a duplicate ID replace earlier ones.
func NewCatalog(langs ...*Language) *Catalog {
	c := &Catalog{languages: make(map[string]*Language)}
	for _, l := range langs {
		c.Add(l)
	}
	return c
}

// Builtin returns a catalog of the embedded Hungarian and Spanish lists.
func Builtin() (*Catalog, error) {
	entries, err := fs.ReadDir(builtinFS, "data")
	if err != nil {
		return nil, fmt.Errorf("read builtin word lists: %w", err)
	}

	c := NewCatalog()
	for _, e := range entries {
		raw, err := builtinFS.ReadFile("data/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		lang, err := decodeBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", e.Name(), err)
		}
		c.Add(lang)
	}
	return c, nil
}

// MustBuiltin is like Builtin but panics on error. The embedded lists are
// validated by tests so this only fails on a broken build.
func MustBuiltin() *Catalog {
	c, err := Builtin()
	if err != nil {
		panic(err)
	}
	return c
}

// Add inserts or replaces a language.
func (c *Catalog) Add(l *Language) {
	if l.Levels == nil {
		l.Levels = make(map[Level][]Word)
	}
	if _, ok := c.languages[l.ID]; !ok {
		c.order = append(c.order, l.ID)
		sort.Strings(c.order)
	}
	c.languages[l.ID] = l
}

// Language returns the language with the given ID.
func (c *Catalog) Language(id string) (*Language, error) {
	l, ok := c.languages[id]
	if !ok {
		return nil, &UnknownLanguageError{ID: id}
	}
	return l, nil
}

// Languages returns all languages sorted by ID.
func (c *Catalog) Languages() []*Language {
	out := make([]*Language, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.languages[id])
	}
	return out
}

// Merge appends words to a language level, skipping any whose source key is
// already present in that level. A language that does not exist yet is
// created with its ID as the display name. Returns the number of words added.
func (c *Catalog) Merge(langID string, level Level, words []Word) int {
	l, ok := c.languages[langID]
	if !ok {
		l = &Language{ID: langID, Name: langID}
		c.Add(l)
	}

	seen := make(map[string]bool, len(l.Levels[level]))
	for _, w := range l.Levels[level] {
		seen[w.Key()] = true
	}

	added := 0
	for _, w := range words {
		if w.Source == "" || w.Translation == "" || seen[w.Key()] {
			continue
		}
		seen[w.Key()] = true
		l.Levels[level] = append(l.Levels[level], w)
		added++
	}
	return added
}
