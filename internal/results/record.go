// apps/go-scorer/internal/results/record.go
//
// Result records and the sink interfaces the runners write to.
//
// Sinks:
//   - AppendFile: resumable CSV file, one fsynced line per record.
//   - File:       bulk CSV file, replaced atomically in one step.
//   - SQLite:     database-backed, supports both styles.
//   - Memory:     in-process, for tests and embedding.

package results

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/robalobadob/wordle/apps/go-scorer/internal/words"
)

// ErrMalformedRecord is returned when stored output cannot be parsed.
var ErrMalformedRecord = errors.New("results: malformed record")

// Record is one scored word.
type Record struct {
	Word  words.Word
	Score float64
}

// Appender is a resumable sink: it reports what it already holds, in write
// order, and durably appends one record at a time.
type Appender interface {
	Records(ctx context.Context) ([]Record, error)
	Append(ctx context.Context, r Record) error
}

// BulkWriter replaces its whole content with recs in one step.
type BulkWriter interface {
	WriteAll(ctx context.Context, recs []Record) error
}

// Ranker lists stored records best score first.
type Ranker interface {
	Ranked(ctx context.Context) ([]Record, error)
}

// FormatScore renders a score as the shortest decimal that parses back to
// the same float64, without an exponent.
func FormatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// fields returns the on-disk columns: score, word.
func (r Record) fields() []string {
	return []string{FormatScore(r.Score), r.Word.String()}
}

// parseFields is the inverse of fields.
func parseFields(fields []string) (Record, error) {
	if len(fields) != 2 {
		return Record{}, fmt.Errorf("%w: want 2 fields, got %d", ErrMalformedRecord, len(fields))
	}
	score, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: score %q: %v", ErrMalformedRecord, fields[0], err)
	}
	w, err := words.Parse(fields[1])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return Record{Word: w, Score: score}, nil
}

// SortByScore orders recs by ascending score. Equal scores keep their
// relative order.
func SortByScore(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score < recs[j].Score })
}

// ranked returns a sorted copy of recs.
func ranked(recs []Record) []Record {
	out := make([]Record, len(recs))
	copy(out, recs)
	SortByScore(out)
	return out
}
