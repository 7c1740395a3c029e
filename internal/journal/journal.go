// Package journal keeps an append-only SQLite log of overlay lifecycle
// events. It is diagnostic history only: nothing reads it back to restore
// overlays.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/tmux-overlay/internal/config"
	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
	_ "modernc.org/sqlite"
)

// FileName is the database file created under state_dir.
const FileName = "journal.db"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS events (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	overlay_id TEXT    NOT NULL,
	tag        TEXT    NOT NULL DEFAULT '',
	category   TEXT    NOT NULL,
	event      TEXT    NOT NULL,
	reason     TEXT    NOT NULL DEFAULT '',
	result     TEXT,
	at_ns      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_at ON events(at_ns);
CREATE INDEX IF NOT EXISTS idx_events_overlay ON events(category, overlay_id);
CREATE INDEX IF NOT EXISTS idx_events_tag ON events(tag);
`

// Logger receives write failures from OnEvent.
type Logger interface {
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// Entry is one recorded lifecycle event.
type Entry struct {
	Seq       int64
	OverlayID string
	Tag       string
	Category  string
	Event     string
	Reason    string
	// Result is the printed close result. HasResult is false when the overlay
	// was dismissed without a value.
	Result    string
	HasResult bool
	At        time.Time
}

// Filter selects entries for List. Zero fields match everything.
type Filter struct {
	OverlayID string
	Tag       string
	Category  string
	Event     string
	Since     time.Time
	Until     time.Time
	// Limit caps the number of entries returned, newest first. Zero means no cap.
	Limit int
}

// Count is the number of events of one kind in one category.
type Count struct {
	Category string
	Event    string
	N        int
}

// Journal is safe for concurrent use.
type Journal struct {
	db     *sql.DB
	logger Logger
	now    func() time.Time

	mu     sync.RWMutex
	closed bool
}

// Option configures Open.
type Option func(*Journal)

// WithLogger sets where OnEvent reports write failures.
func WithLogger(l Logger) Option {
	return func(j *Journal) {
		if l != nil {
			j.logger = l
		}
	}
}

// WithClock replaces time.Now for Prune cutoffs and events without a time.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) {
		if now != nil {
			j.now = now
		}
	}
}

// DefaultPath returns the journal location under the configured state_dir.
func DefaultPath() string {
	return filepath.Join(config.Get("state_dir", ""), FileName)
}

// Open opens (creating if needed) the journal database at path.
func Open(path string, opts ...Option) (*Journal, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), config.FileModeDir); err != nil {
		return nil, fmt.Errorf("journal: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open db: %w", err)
	}
	// observers write from timer goroutines; one connection serializes them
	db.SetMaxOpenConns(1)

	j := &Journal{db: db, logger: nopLogger{}, now: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	if err := j.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) init() error {
	if _, err := j.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("journal: set busy timeout: %w", err)
	}
	if _, err := j.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("journal: create schema: %w", err)
	}
	return nil
}

// Close closes the database. Later calls are no-ops.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}

// Record appends ev.
func (j *Journal) Record(ctx context.Context, ev overlay.Event) error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return fmt.Errorf("journal: record: %w", ErrClosed)
	}

	at := ev.At
	if at.IsZero() {
		at = j.now()
	}
	var result sql.NullString
	if ev.Type == overlay.EventDismissed && ev.Result != nil {
		result = sql.NullString{String: fmt.Sprint(ev.Result), Valid: true}
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO events (overlay_id, tag, category, event, reason, result, at_ns) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.Handle.ID(),
		ev.Handle.Tag(),
		ev.Handle.Category().String(),
		ev.Type.String(),
		ev.Reason.String(),
		result,
		at.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("journal: record %s: %w", ev.Handle, err)
	}
	return nil
}

// OnEvent records ev, logging rather than returning failures, so a Journal
// can be registered as an overlay observer.
func (j *Journal) OnEvent(ev overlay.Event) {
	if err := j.Record(context.Background(), ev); err != nil {
		j.logger.Warn("journal write failed", "id", ev.Handle.ID(), "event", ev.Type.String(), "error", err)
	}
}

func (f Filter) validate() error {
	if f.Category != "" {
		if _, err := overlay.ParseCategory(f.Category); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
	}
	if f.Event != "" && !validEvents[strings.ToLower(f.Event)] {
		return fmt.Errorf("%w: unknown event %q", ErrInvalidFilter, f.Event)
	}
	if f.Limit < 0 {
		return fmt.Errorf("%w: negative limit %d", ErrInvalidFilter, f.Limit)
	}
	return nil
}

func (f Filter) where() (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		conds = append(conds, cond)
		args = append(args, arg)
	}
	if f.OverlayID != "" {
		add("overlay_id = ?", f.OverlayID)
	}
	if f.Tag != "" {
		add("tag = ?", f.Tag)
	}
	if f.Category != "" {
		add("category = ?", strings.ToLower(strings.TrimSpace(f.Category)))
	}
	if f.Event != "" {
		add("event = ?", strings.ToLower(f.Event))
	}
	if !f.Since.IsZero() {
		add("at_ns >= ?", f.Since.UnixNano())
	}
	if !f.Until.IsZero() {
		add("at_ns < ?", f.Until.UnixNano())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns the entries matching f, newest first.
func (j *Journal) List(ctx context.Context, f Filter) ([]Entry, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return nil, fmt.Errorf("journal: list: %w", ErrClosed)
	}

	where, args := f.where()
	query := `SELECT seq, overlay_id, tag, category, event, reason, result, at_ns FROM events` + where + ` ORDER BY seq DESC`
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("journal: list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e      Entry
			result sql.NullString
			atNS   int64
		)
		if err := rows.Scan(&e.Seq, &e.OverlayID, &e.Tag, &e.Category, &e.Event, &e.Reason, &result, &atNS); err != nil {
			return nil, fmt.Errorf("journal: list: scan: %w", err)
		}
		e.Result, e.HasResult = result.String, result.Valid
		e.At = time.Unix(0, atNS)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: list: %w", err)
	}
	return entries, nil
}

// Prune deletes entries older than olderThan and returns how many it removed.
// Zero removes everything recorded up to now.
func (j *Journal) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan < 0 {
		return 0, fmt.Errorf("journal: prune: %w: %s", ErrInvalidRetention, olderThan)
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return 0, fmt.Errorf("journal: prune: %w", ErrClosed)
	}

	cutoff := j.now().Add(-olderThan)
	res, err := j.db.ExecContext(ctx, `DELETE FROM events WHERE at_ns <= ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("journal: prune: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("journal: prune: rows affected: %w", err)
	}
	return n, nil
}

// Counts returns event totals per category and event kind, sorted by both.
func (j *Journal) Counts(ctx context.Context) ([]Count, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return nil, fmt.Errorf("journal: counts: %w", ErrClosed)
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT category, event, COUNT(*) FROM events GROUP BY category, event ORDER BY category, event`)
	if err != nil {
		return nil, fmt.Errorf("journal: counts: %w", err)
	}
	defer rows.Close()

	var counts []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Category, &c.Event, &c.N); err != nil {
			return nil, fmt.Errorf("journal: counts: scan: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: counts: %w", err)
	}
	return counts, nil
}
