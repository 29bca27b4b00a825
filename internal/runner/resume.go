package runner

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/go-scorer/internal/results"
	"github.com/robalobadob/wordle/apps/go-scorer/internal/words"
)

// ErrIncompatible means stored output does not belong to the current corpus.
var ErrIncompatible = errors.New("input and output files are incompatible")

// IncompatibleError reports the first stored record that does not line up
// with the corpus. Expected is the zero Word when the output holds more
// records than the corpus has words.
type IncompatibleError struct {
	Index    int
	Stored   words.Word
	Expected words.Word
}

func (e *IncompatibleError) Error() string {
	if e.Expected == (words.Word{}) {
		return fmt.Sprintf("%s: record %d (%s) is past the end of the corpus", ErrIncompatible, e.Index, e.Stored)
	}
	return fmt.Sprintf("%s: record %d is %s, corpus has %s", ErrIncompatible, e.Index, e.Stored, e.Expected)
}

func (e *IncompatibleError) Unwrap() error { return ErrIncompatible }

// ResumePoint returns the first corpus index not yet present in stored.
// stored must be a prefix of the corpus, compared word by word; scores are
// not looked at.
func ResumePoint(corpus *words.Corpus, stored []results.Record) (int, error) {
	for i, r := range stored {
		if i >= corpus.Len() {
			return 0, &IncompatibleError{Index: i, Stored: r.Word}
		}
		if want := corpus.At(i); r.Word != want {
			return 0, &IncompatibleError{Index: i, Stored: r.Word, Expected: want}
		}
	}
	return len(stored), nil
}
