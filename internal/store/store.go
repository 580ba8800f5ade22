// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/tuimorse/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout keeps a fixed width so stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for settings, word records, and attempts.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// Hydration and delayed writes run on their own goroutines.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			namespace TEXT PRIMARY KEY,
			payload TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS words (
			namespace TEXT NOT NULL,
			word TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (namespace, word)
		);`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			namespace TEXT NOT NULL,
			text TEXT NOT NULL,
			length INTEGER NOT NULL,
			success INTEGER NOT NULL,
			total INTEGER NOT NULL,
			elapsed_ms INTEGER,
			at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_namespace_at ON attempts(namespace, at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadSettings returns the payload stored for namespace, if any.
func (s *Store) LoadSettings(ctx context.Context, namespace string) ([]byte, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM settings WHERE namespace = ?`, namespace).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(payload), true, nil
}

// SaveSettings replaces the payload stored for namespace.
func (s *Store) SaveSettings(ctx context.Context, namespace string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (namespace, payload) VALUES (?, ?)
		 ON CONFLICT(namespace) DO UPDATE SET payload = excluded.payload`,
		namespace, string(payload))
	return err
}

// Clear wipes every table.
func (s *Store) Clear(ctx context.Context) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	for _, table := range []string{"settings", "words", "attempts"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Words returns the word table of namespace.
func (s *Store) Words(namespace string) *WordTable {
	return &WordTable{db: s.db, namespace: namespace}
}

// WordTable persists word records of one training mode.
type WordTable struct {
	db        *sql.DB
	namespace string
}

// IterateWords calls fn for every stored word, in word order.
func (w *WordTable) IterateWords(ctx context.Context, fn func(word string, rec model.WordRecord) error) error {
	rows, err := w.db.QueryContext(ctx,
		`SELECT word, value FROM words WHERE namespace = ? ORDER BY word`, w.namespace)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	type row struct {
		word string
		rec  model.WordRecord
	}
	var loaded []row
	for rows.Next() {
		var word, value string
		if err := rows.Scan(&word, &value); err != nil {
			return err
		}
		var rec model.WordRecord
		if err := json.Unmarshal([]byte(value), &rec); err != nil {
			return fmt.Errorf("word %q: %w", word, err)
		}
		loaded = append(loaded, row{word: word, rec: rec})
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, r := range loaded {
		if err := fn(r.word, r.rec); err != nil {
			return err
		}
	}
	return nil
}

// SetIfDifferent stores rec for word unless the stored value is identical.
func (w *WordTable) SetIfDifferent(ctx context.Context, word string, rec model.WordRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = w.db.ExecContext(ctx,
		`INSERT INTO words (namespace, word, value) VALUES (?, ?, ?)
		 ON CONFLICT(namespace, word) DO UPDATE SET value = excluded.value
		 WHERE words.value <> excluded.value`,
		w.namespace, word, string(value))
	return err
}

// InsertAttempt logs a single attempt.
func (s *Store) InsertAttempt(ctx context.Context, rec model.AttemptRecord) error {
	var elapsed any
	if rec.ElapsedMs != nil {
		elapsed = *rec.ElapsedMs
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (session_id, namespace, text, length, success, total, elapsed_ms, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.Namespace,
		rec.Text,
		rec.Length,
		rec.Success,
		rec.Total,
		elapsed,
		rec.At.UTC().Format(timeLayout),
	)
	return err
}

func attemptFilter(cfg model.StatsConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Namespace != "" {
		clauses = append(clauses, "namespace = ?")
		args = append(args, cfg.Namespace)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	return strings.Join(clauses, " AND "), args
}

// ListAttempts returns attempts filtered by stats config, oldest first.
func (s *Store) ListAttempts(ctx context.Context, cfg model.StatsConfig) ([]model.AttemptRecord, error) {
	where, args := attemptFilter(cfg)
	query := fmt.Sprintf(`SELECT session_id, namespace, text, length, success, total, elapsed_ms, at
		FROM attempts
		WHERE %s
		ORDER BY at ASC, id ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.AttemptRecord
	for rows.Next() {
		var rec model.AttemptRecord
		var elapsed sql.NullInt64
		var at string
		if err := rows.Scan(&rec.SessionID, &rec.Namespace, &rec.Text, &rec.Length, &rec.Success, &rec.Total, &elapsed, &at); err != nil {
			return nil, err
		}
		if elapsed.Valid {
			rec.ElapsedMs = model.Millis(elapsed.Int64)
		}
		parsed, err := time.Parse(timeLayout, at)
		if err != nil {
			return nil, err
		}
		rec.At = parsed
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(result) > cfg.Last {
		result = result[len(result)-cfg.Last:]
	}
	return result, nil
}

// LengthAggregates sums attempts per item length.
func (s *Store) LengthAggregates(ctx context.Context, cfg model.StatsConfig) ([]model.LengthAggregate, error) {
	where, args := attemptFilter(cfg)
	query := fmt.Sprintf(`SELECT length, COUNT(*), SUM(success), SUM(total)
		FROM attempts
		WHERE %s
		GROUP BY length
		ORDER BY length ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.LengthAggregate
	for rows.Next() {
		var agg model.LengthAggregate
		if err := rows.Scan(&agg.Length, &agg.Attempts, &agg.Success, &agg.Total); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
