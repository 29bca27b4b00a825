// apps/go-scorer/internal/score/scorer.go
//
// First-guess scoring.
//
// A guess's score is the average number of corpus words still possible after
// playing it, averaged uniformly over every corpus word as the hidden answer
// (the guess itself included). Lower is better.
//
// For each guess the work is |corpus| derivations times |corpus| candidate
// checks, so a full run is cubic in the corpus size. The optional Index turns
// each candidate count into a handful of bitset intersections; it never
// changes the result because counts are exact integers either way.

package score

import (
	"github.com/robalobadob/wordle/apps/go-scorer/internal/game"
	"github.com/robalobadob/wordle/apps/go-scorer/internal/words"
)

// Scorer scores guesses against a fixed corpus. It is read-only after New and
// safe for concurrent use.
type Scorer struct {
	corpus *words.Corpus
	rules  game.Rules
	index  *Index
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithRules selects the constraint derivation.
func WithRules(r game.Rules) Option {
	return func(s *Scorer) { s.rules = r }
}

// WithIndex enables the bitset candidate index.
func WithIndex(enabled bool) Option {
	return func(s *Scorer) {
		if enabled {
			s.index = NewIndex(s.corpus)
		} else {
			s.index = nil
		}
	}
}

// New returns a Scorer over corpus. By default it uses the reference rules
// and counts candidates by scanning the corpus.
func New(corpus *words.Corpus, opts ...Option) *Scorer {
	s := &Scorer{corpus: corpus}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Corpus returns the corpus being scored.
func (s *Scorer) Corpus() *words.Corpus { return s.corpus }

// Rules returns the configured rules.
func (s *Scorer) Rules() game.Rules { return s.rules }

// Count returns how many corpus words c admits.
func (s *Scorer) Count(c *game.Constraints) int {
	if s.index != nil {
		return s.index.Count(c)
	}
	n := 0
	for _, w := range s.corpus.Words() {
		if c.Admits(w) {
			n++
		}
	}
	return n
}

// Total returns the sum, over every actual word, of the candidates left
// after guess.
func (s *Scorer) Total(guess words.Word) int64 {
	var total int64
	for _, actual := range s.corpus.Words() {
		c := s.rules.Derive(guess, actual)
		total += int64(s.Count(&c))
	}
	return total
}

// Score returns the expected number of remaining candidates after guess.
// An empty corpus scores 0.
func (s *Scorer) Score(guess words.Word) float64 {
	n := s.corpus.Len()
	if n == 0 {
		return 0
	}
	return float64(s.Total(guess)) / float64(n)
}

// ScoreAt scores the i-th corpus word.
func (s *Scorer) ScoreAt(i int) float64 {
	return s.Score(s.corpus.At(i))
}
