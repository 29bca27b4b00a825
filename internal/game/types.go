// apps/go-scorer/internal/game/types.go
//
// Core type definitions for feedback and constraint derivation.
// Defines:
//   - Mark: per-letter result of a guess (miss/present/hit).
//   - Rules: which deriver turns a (guess, actual) pair into Constraints.

package game

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/go-scorer/internal/words"
)

// Mark represents the evaluation result for a single letter in a guess.
// The numeric values match the wire encoding 0=miss, 1=present, 2=hit.
type Mark uint8

const (
	MarkMiss Mark = iota
	MarkPresent
	MarkHit
)

func (m Mark) String() string {
	switch m {
	case MarkHit:
		return "hit"
	case MarkPresent:
		return "present"
	default:
		return "miss"
	}
}

// Marks is the feedback for a whole guess.
type Marks [words.Len]Mark

// Rules selects how constraints are derived.
type Rules int

const (
	// RulesReference is the reference derivation. It does not account for
	// repeated letters.
	RulesReference Rules = iota
	// RulesStrict derives constraints from true two-pass game feedback.
	RulesStrict
)

// ParseRules maps a config value to Rules.
func ParseRules(s string) (Rules, error) {
	switch s {
	case "", "reference":
		return RulesReference, nil
	case "strict":
		return RulesStrict, nil
	}
	return RulesReference, fmt.Errorf("unknown rules %q (want reference|strict)", s)
}

func (r Rules) String() string {
	if r == RulesStrict {
		return "strict"
	}
	return "reference"
}

// Derive builds the constraints revealed by guess when the answer is actual.
func (r Rules) Derive(guess, actual words.Word) Constraints {
	if r == RulesStrict {
		return DeriveStrict(guess, actual)
	}
	return Derive(guess, actual)
}
