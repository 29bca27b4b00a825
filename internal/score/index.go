package score

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle/apps/go-scorer/internal/game"
	"github.com/robalobadob/wordle/apps/go-scorer/internal/words"
)

// Index answers "how many corpus words satisfy c" with set intersections
// instead of testing every word.
//
// at[p][b] holds the corpus indices of words with letter b at position p;
// has[b] holds the words containing b anywhere. Letters absent from the corpus
// have nil sets. An Index is read-only after construction and safe for
// concurrent use.
type Index struct {
	n   uint
	at  [words.Len][256]*bitset.BitSet
	has [256]*bitset.BitSet
	all *bitset.BitSet
}

// NewIndex builds the index for corpus.
func NewIndex(corpus *words.Corpus) *Index {
	n := uint(corpus.Len())
	ix := &Index{n: n, all: bitset.New(n)}
	ix.all.FlipRange(0, n)

	get := func(s **bitset.BitSet) *bitset.BitSet {
		if *s == nil {
			*s = bitset.New(n)
		}
		return *s
	}
	for i, w := range corpus.Words() {
		for p, b := range w {
			get(&ix.at[p][b]).Set(uint(i))
			get(&ix.has[b]).Set(uint(i))
		}
	}
	return ix
}

// Count returns the number of corpus words admitted by c. It always equals
// counting with Constraints.Admits over the corpus.
func (ix *Index) Count(c *game.Constraints) int {
	for p := 0; p < words.Len; p++ {
		if k := c.Known[p]; k.Set && ix.at[p][k.Letter] == nil {
			return 0
		}
	}
	empty := false
	c.Included.Each(func(b byte) bool {
		empty = ix.has[b] == nil
		return !empty
	})
	if empty {
		return 0
	}

	cand := ix.all.Clone()
	for p := 0; p < words.Len; p++ {
		if k := c.Known[p]; k.Set {
			cand.InPlaceIntersection(ix.at[p][k.Letter])
		}
	}
	for p := 0; p < words.Len; p++ {
		if k := c.KnownNot[p]; k.Set {
			if s := ix.at[p][k.Letter]; s != nil {
				cand.InPlaceDifference(s)
			}
		}
	}
	c.Included.Each(func(b byte) bool {
		cand.InPlaceIntersection(ix.has[b])
		return true
	})
	c.Excluded.Each(func(b byte) bool {
		if s := ix.has[b]; s != nil {
			cand.InPlaceDifference(s)
		}
		return true
	})
	return int(cand.Count())
}
