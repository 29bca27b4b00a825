// apps/go-scorer/internal/words/words.go
//
// Provides the word corpus the scorer works over.
//
// Responsibilities:
//   - Parse fixed-length words (Len bytes, one byte per letter).
//   - Load an ordered corpus from a newline-delimited file, a reader, or the
//     embedded default list.
//   - Expose the corpus read-only; it is shared by reference across workers.
//
// Constraints:
//   • Every line must be exactly Len bytes. Anything else aborts loading.
//   • Letters are raw bytes; no case folding or trimming is applied.
//   • Corpus order is significant (resumable output is matched against it).

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/robalobadob/wordle/apps/go-scorer/assets"
)

// Len is the number of letters in every word.
const Len = 5

// ErrWordLen is returned for input that is not exactly Len bytes long.
var ErrWordLen = errors.New("words: word must be exactly 5 bytes")

// Word is a fixed-size sequence of byte-valued letters.
type Word [Len]byte

// Parse converts s into a Word.
func Parse(s string) (Word, error) {
	var w Word
	if len(s) != Len {
		return w, fmt.Errorf("%w: %q has %d", ErrWordLen, s, len(s))
	}
	copy(w[:], s)
	return w, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Word) String() string { return string(w[:]) }

// Contains reports whether letter b occurs anywhere in w.
func (w Word) Contains(b byte) bool {
	for i := 0; i < Len; i++ {
		if w[i] == b {
			return true
		}
	}
	return false
}

// Corpus is an immutable, ordered word list.
type Corpus struct {
	words []Word
}

// NewCorpus builds a corpus from a copy of ws.
func NewCorpus(ws []Word) *Corpus {
	cp := make([]Word, len(ws))
	copy(cp, ws)
	return &Corpus{words: cp}
}

// FromStrings parses every entry of list, failing on the first bad one.
func FromStrings(list []string) (*Corpus, error) {
	ws := make([]Word, 0, len(list))
	for i, s := range list {
		w, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		ws = append(ws, w)
	}
	return &Corpus{words: ws}, nil
}

// Len returns the number of words.
func (c *Corpus) Len() int { return len(c.words) }

// At returns the i-th word.
func (c *Corpus) At(i int) Word { return c.words[i] }

// Words returns the backing slice. Callers must not modify it.
func (c *Corpus) Words() []Word { return c.words }

// Read loads one word per line from r.
// A trailing newline is optional; "\r\n" line endings are accepted.
func Read(r io.Reader) (*Corpus, error) {
	var ws []Word
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		w, err := Parse(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ws = append(ws, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &Corpus{words: ws}, nil
}

// Load reads a corpus from the file at path.
func Load(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Embedded returns the built-in default corpus.
func Embedded() (*Corpus, error) {
	f, err := assets.OpenWords()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
