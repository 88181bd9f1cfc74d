package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
)

var (
	// ErrNotFound is returned when no snapshot is stored under a name.
	ErrNotFound = errors.New("snapshot not found")
	// ErrCorrupt is returned when a stored snapshot cannot be decoded.
	ErrCorrupt = errors.New("corrupt snapshot")
)

// DB handles snapshot persistence
type DB struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenDB opens or creates the snapshot database at the given path
func OpenDB(dbPath string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sdb := &DB{db: db, logger: logger}
	if err := sdb.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		name TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		timestamp INTEGER NOT NULL
	);
	`

	_, err := d.db.Exec(schema)
	return err
}

// Save stores p under name, stamped with now.
func (d *DB) Save(name string, p clamp.Params, now time.Time) error {
	snap := NewSnapshot(p, now)
	state, err := encodeState(snap.State)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		INSERT INTO snapshots (name, state, timestamp)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET state = excluded.state, timestamp = excluded.timestamp
	`, name, state, snap.Timestamp)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}
	return nil
}

// Get returns the raw snapshot stored under name.
func (d *DB) Get(name string) (Snapshot, error) {
	var raw string
	var ts int64
	err := d.db.QueryRow(`
		SELECT state, timestamp FROM snapshots WHERE name = ?
	`, name).Scan(&raw, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot %s: %w", name, err)
	}

	p, err := decodeState(raw)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{State: p, Timestamp: ts}, nil
}

// Load returns the parameters stored under name if they are fresh at now.
// Otherwise it returns clamp.DefaultParams() and false. A corrupt or
// missing snapshot is not an error.
func (d *DB) Load(name string, now time.Time, ttl time.Duration) (clamp.Params, bool, error) {
	snap, err := d.Get(name)
	if errors.Is(err, ErrNotFound) {
		return clamp.DefaultParams(), false, nil
	}
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			d.logger.Warn("discarding unreadable snapshot", "name", name, "error", err)
			return clamp.DefaultParams(), false, nil
		}
		return clamp.DefaultParams(), false, err
	}

	p, ok := LoadIfFresh(now, snap, ttl)
	if !ok {
		d.logger.Debug("snapshot expired or invalid", "name", name, "captured_at", snap.CapturedAt())
		return clamp.DefaultParams(), false, nil
	}
	return p, true, nil
}

// Remove deletes the snapshot stored under name.
func (d *DB) Remove(name string) error {
	if _, err := d.db.Exec(`DELETE FROM snapshots WHERE name = ?`, name); err != nil {
		return fmt.Errorf("remove snapshot %s: %w", name, err)
	}
	return nil
}
