package game

import (
	"fmt"
	"sort"
	"strings"
)

// Factory builds a new Session for a difficulty.
type Factory func(level Level, opts Options) (*Session, error)

// Entry describes a registered game.
type Entry struct {
	Key         string
	Name        string
	Description string
	Aliases     []string
	New         Factory
}

// Registry maps stable game keys to constructors. It is filled at startup.
type Registry struct {
	entries map[string]Entry
	aliases map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: map[string]Entry{}, aliases: map[string]string{}}
}

// Register adds a game. Keys and aliases must be unique.
func (r *Registry) Register(e Entry) error {
	key := strings.ToLower(e.Key)
	if key == "" || e.New == nil {
		return fmt.Errorf("game entry needs a key and a constructor")
	}
	if r.taken(key) {
		return fmt.Errorf("game %q already registered", key)
	}
	for _, alias := range e.Aliases {
		if r.taken(strings.ToLower(alias)) || strings.EqualFold(alias, key) {
			return fmt.Errorf("alias %q already registered", alias)
		}
	}
	e.Key = key
	r.entries[key] = e
	for _, alias := range e.Aliases {
		r.aliases[strings.ToLower(alias)] = key
	}
	return nil
}

func (r *Registry) taken(name string) bool {
	if _, ok := r.entries[name]; ok {
		return true
	}
	_, ok := r.aliases[name]
	return ok
}

// Lookup resolves a key or alias.
func (r *Registry) Lookup(name string) (Entry, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if key, ok := r.aliases[name]; ok {
		name = key
	}
	e, ok := r.entries[name]
	return e, ok
}

// Games returns the registered entries sorted by key.
func (r *Registry) Games() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// DefaultRegistry registers the number game and the hangman game backed by words.
func DefaultRegistry(words WordSource) *Registry {
	r := NewRegistry()
	_ = r.Register(Entry{
		Key:         NumberGame,
		Name:        "Number guess",
		Description: "Guess the secret number before the attempts run out",
		Aliases:     []string{"getalgoeroe"},
		New: func(level Level, opts Options) (*Session, error) {
			return NewNumber(level, opts), nil
		},
	})
	_ = r.Register(Entry{
		Key:         LetterGame,
		Name:        "Hangman",
		Description: "Reveal the secret word one letter at a time",
		Aliases:     []string{"galgje"},
		New: func(level Level, opts Options) (*Session, error) {
			return NewLetter(level, words, opts)
		},
	})
	return r
}
