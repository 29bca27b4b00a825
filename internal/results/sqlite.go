// apps/go-scorer/internal/results/sqlite.go
//
// SQLite result sink.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, full sync).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Resumable storage in `scores` and bulk storage in `ranked_scores`.

package results

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-scorer/internal/words"
)

//go:embed sql/*.sql
var migrations embed.FS

// SQLite stores results in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at dsn and brings
// its schema up to date.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// openDB opens a SQLite database file.
//
// - Ensures the parent directory exists for relative DSNs (e.g. ./data/scores.db).
// - Configures busy timeout, WAL journaling and synchronous=FULL so a
//   committed insert survives a crash.
// - Uses a single connection; SQLite serialises writers anyway.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_synchronous=FULL")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL; PRAGMA synchronous = FULL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies the embedded SQL migrations in lexical order, skipping
// those already recorded in _migrations.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(migrations, "sql", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk sql dir: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Records returns the resumable results in insertion order.
func (s *SQLite) Records(ctx context.Context) ([]Record, error) {
	return s.query(ctx, `SELECT word, score FROM scores ORDER BY seq`)
}

// Append inserts one resumable result. With synchronous=FULL the row is on
// disk when this returns.
func (s *SQLite) Append(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO scores (word, score) VALUES (?, ?)`, r.Word.String(), r.Score)
	return err
}

// WriteAll replaces ranked_scores with recs in one transaction. Rank is the
// 1-based position in recs.
func (s *SQLite) WriteAll(ctx context.Context, recs []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ranked_scores`); err != nil {
		return fmt.Errorf("clear ranked_scores: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO ranked_scores (rank, word, score) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, r := range recs {
		if _, err := stmt.ExecContext(ctx, i+1, r.Word.String(), r.Score); err != nil {
			return fmt.Errorf("insert %s: %w", r.Word, err)
		}
	}
	return tx.Commit()
}

// Ranked returns the bulk results when a bulk run has been stored, and the
// resumable results sorted by score otherwise.
func (s *SQLite) Ranked(ctx context.Context) ([]Record, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM ranked_scores`).Scan(&n); err != nil {
		return nil, err
	}
	if n > 0 {
		return s.query(ctx, `SELECT word, score FROM ranked_scores ORDER BY rank`)
	}
	return s.query(ctx, `SELECT word, score FROM scores ORDER BY score ASC, seq ASC`)
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) query(ctx context.Context, q string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var word string
		var r Record
		if err := rows.Scan(&word, &r.Score); err != nil {
			return nil, err
		}
		if r.Word, err = words.Parse(word); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
