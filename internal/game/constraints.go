// apps/go-scorer/internal/game/constraints.go
//
// Constraint derivation and evaluation.
// Responsibilities:
//   - Derive the facts a guess reveals about a hypothetical answer.
//   - Decide whether a word is still a possible answer under those facts.
//
// Notes:
//   - Constraints are plain values; a fresh one is built for every
//     (guess, actual) pair and never shared.
//   - Letters are raw bytes. Sets of letters are 256-bit bitmaps.

package game

import (
	"math/bits"
	"strings"

	"github.com/robalobadob/wordle/apps/go-scorer/internal/words"
)

// ByteSet is a set of byte values.
type ByteSet [4]uint64

// Add inserts b.
func (s *ByteSet) Add(b byte) { s[b>>6] |= 1 << (b & 63) }

// Has reports whether b is in the set.
func (s *ByteSet) Has(b byte) bool { return s[b>>6]&(1<<(b&63)) != 0 }

// Len returns the number of members.
func (s *ByteSet) Len() int {
	return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1]) +
		bits.OnesCount64(s[2]) + bits.OnesCount64(s[3])
}

// Each calls fn for every member in ascending order until fn returns false.
func (s *ByteSet) Each(fn func(b byte) bool) {
	for i, w := range s {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			if !fn(byte(i<<6 | tz)) {
				return
			}
			w &= w - 1
		}
	}
}

// Bytes returns the members in ascending order.
func (s *ByteSet) Bytes() []byte {
	out := make([]byte, 0, s.Len())
	s.Each(func(b byte) bool {
		out = append(out, b)
		return true
	})
	return out
}

// Slot is an optional letter at one position.
type Slot struct {
	Letter byte
	Set    bool
}

// Constraints are the positional and membership facts revealed by one guess
// against one hypothetical answer.
type Constraints struct {
	Known    [words.Len]Slot // position must hold Letter (green)
	KnownNot [words.Len]Slot // position must not hold Letter (yellow)
	Included ByteSet         // letters that must appear somewhere
	Excluded ByteSet         // letters that must not appear anywhere
}

// Derive is the reference derivation.
//
// Pass 1 records exact positional matches. Pass 2 looks at every remaining
// position: if the guess letter occurs anywhere in actual it becomes included
// and forbidden at that position, otherwise excluded. Repeated letters are not
// counted, so a second copy of a letter is treated like the first.
func Derive(guess, actual words.Word) Constraints {
	var c Constraints
	for i := 0; i < words.Len; i++ {
		if guess[i] == actual[i] {
			c.Known[i] = Slot{Letter: guess[i], Set: true}
		}
	}
	for i := 0; i < words.Len; i++ {
		if c.Known[i].Set {
			continue
		}
		g := guess[i]
		if actual.Contains(g) {
			c.Included.Add(g)
			c.KnownNot[i] = Slot{Letter: g, Set: true}
		} else {
			c.Excluded.Add(g)
		}
	}
	return c
}

// DeriveStrict derives constraints from the feedback a real game would show.
// A missed letter is only excluded when no other copy of it in the guess was
// a hit or present; otherwise it is just forbidden at its own position.
func DeriveStrict(guess, actual words.Word) Constraints {
	marks := Score(actual, guess)

	var seen ByteSet
	for i, m := range marks {
		if m != MarkMiss {
			seen.Add(guess[i])
		}
	}

	var c Constraints
	for i, m := range marks {
		g := guess[i]
		switch m {
		case MarkHit:
			c.Known[i] = Slot{Letter: g, Set: true}
		case MarkPresent:
			c.Included.Add(g)
			c.KnownNot[i] = Slot{Letter: g, Set: true}
		default:
			if seen.Has(g) {
				c.KnownNot[i] = Slot{Letter: g, Set: true}
			} else {
				c.Excluded.Add(g)
			}
		}
	}
	return c
}

// Admits reports whether w is still a possible answer under c.
// Checks run known, known-not, included, excluded and stop at the first
// failure.
func (c *Constraints) Admits(w words.Word) bool {
	for i := 0; i < words.Len; i++ {
		if k := c.Known[i]; k.Set && w[i] != k.Letter {
			return false
		}
	}
	for i := 0; i < words.Len; i++ {
		if k := c.KnownNot[i]; k.Set && w[i] == k.Letter {
			return false
		}
	}
	ok := true
	c.Included.Each(func(b byte) bool {
		ok = w.Contains(b)
		return ok
	})
	if !ok {
		return false
	}
	for i := 0; i < words.Len; i++ {
		if c.Excluded.Has(w[i]) {
			return false
		}
	}
	return true
}

// Admits is the free-function form of Constraints.Admits.
func Admits(w words.Word, c Constraints) bool { return c.Admits(w) }

func (c Constraints) String() string {
	var b strings.Builder
	for i, k := range c.Known {
		if k.Set {
			b.WriteByte('+')
			b.WriteByte(k.Letter)
			b.WriteByte('0' + byte(i))
			b.WriteByte(' ')
		}
	}
	for i, k := range c.KnownNot {
		if k.Set {
			b.WriteByte('~')
			b.WriteByte(k.Letter)
			b.WriteByte('0' + byte(i))
			b.WriteByte(' ')
		}
	}
	b.WriteString("in:")
	b.Write(c.Included.Bytes())
	b.WriteString(" out:")
	b.Write(c.Excluded.Bytes())
	return b.String()
}
