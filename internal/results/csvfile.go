// apps/go-scorer/internal/results/csvfile.go
//
// CSV-backed sinks. Every line is `score,word`, no header.
//
// AppendFile is the resumable sink. Opening it reads the existing records so
// the runner can find its resume point. A last line without a newline can
// only come from a process killed mid-write; it is cut off before appending
// resumes so the file never holds a partial record followed by a full one.
//
// File is the bulk sink. WriteAll builds the full content, writes it to a
// temp file next to the destination and renames it into place.

package results

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// AppendFile is a resumable CSV sink.
type AppendFile struct {
	path string

	mu      sync.Mutex
	f       *os.File
	records []Record
}

// OpenAppendFile opens (and creates if missing) the CSV file at path and
// loads the records already in it.
func OpenAppendFile(path string) (*AppendFile, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	complete, torn := splitTorn(data)
	if torn {
		log.Warn().Str("file", path).Int("bytes", len(data)-len(complete)).Msg("dropping partial trailing record")
		if err := f.Truncate(int64(len(complete))); err != nil {
			f.Close()
			return nil, fmt.Errorf("truncate %s: %w", path, err)
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return nil, err
		}
	}

	recs, err := parseCSV(complete)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &AppendFile{path: path, f: f, records: recs}, nil
}

// Path returns the file location.
func (a *AppendFile) Path() string { return a.path }

// Records returns every record in file order.
func (a *AppendFile) Records(ctx context.Context) ([]Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Record, len(a.records))
	copy(out, a.records)
	return out, nil
}

// Append writes r as one line and syncs the file before returning.
func (a *AppendFile) Append(ctx context.Context, r Record) error {
	line, err := encodeCSV([]Record{r})
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.f == nil {
		return os.ErrClosed
	}
	if _, err := a.f.Write(line); err != nil {
		return fmt.Errorf("append %s: %w", a.path, err)
	}
	if err := a.f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", a.path, err)
	}
	a.records = append(a.records, r)
	return nil
}

// Ranked returns the records sorted by score.
func (a *AppendFile) Ranked(ctx context.Context) ([]Record, error) {
	recs, err := a.Records(ctx)
	if err != nil {
		return nil, err
	}
	SortByScore(recs)
	return recs, nil
}

// Close closes the underlying file.
func (a *AppendFile) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.f == nil {
		return nil
	}
	err := a.f.Close()
	a.f = nil
	return err
}

// File is a CSV file rewritten as a whole.
type File struct {
	Path string
}

// WriteAll replaces the file content with recs, in the given order.
func (f File) WriteAll(ctx context.Context, recs []Record) error {
	data, err := encodeCSV(recs)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFileAtomicDurable(f.Path, data, 0o644)
}

// Records reads the file. A missing file holds no records; a torn last line
// is ignored.
func (f File) Records(ctx context.Context) ([]Record, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	complete, _ := splitTorn(data)
	recs, err := parseCSV(complete)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return recs, nil
}

// Ranked reads the file and sorts it by score.
func (f File) Ranked(ctx context.Context) ([]Record, error) {
	recs, err := f.Records(ctx)
	if err != nil {
		return nil, err
	}
	SortByScore(recs)
	return recs, nil
}

// splitTorn cuts data after its last newline and reports whether anything
// followed it.
func splitTorn(data []byte) ([]byte, bool) {
	if len(data) == 0 || data[len(data)-1] == '\n' {
		return data, false
	}
	cut := bytes.LastIndexByte(data, '\n') + 1
	return data[:cut], true
}

func parseCSV(data []byte) ([]Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 2
	r.ReuseRecord = true

	var out []Record
	for {
		fields, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		rec, err := parseFields(fields)
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
}

func encodeCSV(recs []Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, r := range recs {
		if err := w.Write(r.fields()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
