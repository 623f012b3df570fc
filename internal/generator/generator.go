// Package generator draws secrets for guessing rounds.
package generator

import (
	"math/rand"
	"strings"
	"time"
)

// Generator produces random secrets.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Number draws uniformly from [1, max]. A max below 1 yields 1.
func (g *Generator) Number(max int) int {
	if max <= 1 {
		return 1
	}
	return g.rnd.Intn(max) + 1
}

// Word selects a word uniformly and lower-cases it. Empty input yields "".
func (g *Generator) Word(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[g.rnd.Intn(len(words))])
}
