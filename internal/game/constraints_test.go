package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-scorer/internal/words"
)

var w = words.MustParse

func knownMap(slots [words.Len]Slot) map[int]byte {
	m := map[int]byte{}
	for i, s := range slots {
		if s.Set {
			m[i] = s.Letter
		}
	}
	return m
}

func TestDeriveExactMatch(t *testing.T) {
	c := Derive(w("abcde"), w("abcde"))

	assert.Equal(t, map[int]byte{0: 'a', 1: 'b', 2: 'c', 3: 'd', 4: 'e'}, knownMap(c.Known))
	assert.Empty(t, knownMap(c.KnownNot))
	assert.Zero(t, c.Included.Len())
	assert.Zero(t, c.Excluded.Len())

	assert.True(t, c.Admits(w("abcde")))
	assert.False(t, c.Admits(w("fghij")))
}

func TestDeriveReversed(t *testing.T) {
	c := Derive(w("abcde"), w("edcba"))

	assert.Equal(t, map[int]byte{2: 'c'}, knownMap(c.Known))
	assert.Equal(t, map[int]byte{0: 'a', 1: 'b', 3: 'd', 4: 'e'}, knownMap(c.KnownNot))
	assert.Equal(t, []byte("abde"), c.Included.Bytes())
	assert.Empty(t, c.Excluded.Bytes())
}

func TestDeriveExcluded(t *testing.T) {
	c := Derive(w("crane"), w("slate"))

	assert.Equal(t, map[int]byte{2: 'a', 4: 'e'}, knownMap(c.Known))
	assert.Empty(t, knownMap(c.KnownNot))
	assert.Equal(t, []byte("cnr"), c.Excluded.Bytes())

	tests := []struct {
		word string
		want bool
	}{
		{"slate", true},
		{"plate", true},
		{"shape", true},
		{"crate", false}, // excluded c, r
		{"slime", false}, // known a at 2
		{"slant", false}, // known e at 4
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Admits(w(tt.word)), tt.word)
	}
}

func TestDeriveIgnoresMultiplicity(t *testing.T) {
	// "those" has a single e, already matched at position 4. The reference
	// derivation still marks the other two e's in "geese" as included.
	c := Derive(w("geese"), w("those"))

	assert.Equal(t, map[int]byte{3: 's', 4: 'e'}, knownMap(c.Known))
	assert.Equal(t, map[int]byte{1: 'e', 2: 'e'}, knownMap(c.KnownNot))
	assert.Equal(t, []byte("e"), c.Included.Bytes())
	assert.Equal(t, []byte("g"), c.Excluded.Bytes())
}

func TestDeriveStrictUsesGameFeedback(t *testing.T) {
	c := DeriveStrict(w("geese"), w("those"))

	assert.Equal(t, map[int]byte{3: 's', 4: 'e'}, knownMap(c.Known))
	assert.Equal(t, map[int]byte{1: 'e', 2: 'e'}, knownMap(c.KnownNot))
	assert.Empty(t, c.Included.Bytes())
	assert.Equal(t, []byte("g"), c.Excluded.Bytes())
}

func TestRulesDerive(t *testing.T) {
	g, a := w("geese"), w("those")
	assert.Equal(t, Derive(g, a), RulesReference.Derive(g, a))
	assert.Equal(t, DeriveStrict(g, a), RulesStrict.Derive(g, a))
}

func TestParseRules(t *testing.T) {
	r, err := ParseRules("")
	require.NoError(t, err)
	assert.Equal(t, RulesReference, r)

	r, err = ParseRules("strict")
	require.NoError(t, err)
	assert.Equal(t, RulesStrict, r)
	assert.Equal(t, "strict", r.String())

	_, err = ParseRules("hard")
	assert.Error(t, err)
}

func TestAdmitsIncluded(t *testing.T) {
	var c Constraints
	c.Included.Add('z')
	c.Included.Add('a')
	assert.True(t, Admits(w("zebra"), c))
	assert.False(t, Admits(w("zesty"), c))
}

func TestAdmitsKnownNot(t *testing.T) {
	var c Constraints
	c.KnownNot[0] = Slot{Letter: 's', Set: true}
	assert.False(t, c.Admits(w("slate")))
	assert.True(t, c.Admits(w("least")))
}

func TestReflexive(t *testing.T) {
	corpus, err := words.Embedded()
	require.NoError(t, err)

	for _, rules := range []Rules{RulesReference, RulesStrict} {
		for _, g := range corpus.Words() {
			c := rules.Derive(g, g)
			assert.True(t, c.Admits(g), "%s %s", rules, g)
		}
	}
}

func TestActualAlwaysAdmitted(t *testing.T) {
	corpus, err := words.Embedded()
	require.NoError(t, err)

	for _, rules := range []Rules{RulesReference, RulesStrict} {
		for _, g := range corpus.Words() {
			for _, a := range corpus.Words() {
				c := rules.Derive(g, a)
				if !c.Admits(a) {
					t.Fatalf("%s: %s does not admit actual %s (%s)", rules, g, a, c)
				}
			}
		}
	}
}

func TestByteSet(t *testing.T) {
	var s ByteSet
	for _, b := range []byte{0, 'a', 'z', 200, 255, 'a'} {
		s.Add(b)
	}
	assert.Equal(t, 5, s.Len())
	assert.True(t, s.Has(0))
	assert.True(t, s.Has(255))
	assert.False(t, s.Has('b'))
	assert.Equal(t, []byte{0, 'a', 'z', 200, 255}, s.Bytes())

	var first []byte
	s.Each(func(b byte) bool {
		first = append(first, b)
		return len(first) < 2
	})
	assert.Equal(t, []byte{0, 'a'}, first)
}
