package store

import (
        "context"
        "database/sql"
        "errors"
        "strings"
        "time"

        _ "modernc.org/sqlite"
)

var errEmptyDir = errors.New("store dir is empty")

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
        if err := s.Ensure(); err != nil {
                return nil, err
        }
        // modernc.org/sqlite driver name is "sqlite".
        db, err := sql.Open("sqlite", s.sqlitePath())
        if err != nil {
                return nil, err
        }
        // WAL keeps a CLI write in another terminal from blocking the TUI's reads.
        pragmas := []string{
                "PRAGMA journal_mode=WAL;",
                "PRAGMA synchronous=NORMAL;",
                "PRAGMA busy_timeout=5000;",
        }
        for _, p := range pragmas {
                if _, err := db.ExecContext(ctx, p); err != nil {
                        _ = db.Close()
                        return nil, err
                }
        }
        if err := migrateSQLiteState(ctx, db); err != nil {
                _ = db.Close()
                return nil, err
        }
        return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
        stmts := []string{
                `CREATE TABLE IF NOT EXISTS slots (
                        name TEXT PRIMARY KEY,
                        json TEXT NOT NULL,
                        revision INTEGER NOT NULL,
                        updated_at_unixms INTEGER NOT NULL
                );`,
        }
        for _, st := range stmts {
                if _, err := db.ExecContext(ctx, st); err != nil {
                        return err
                }
        }
        return nil
}

// ReadSlot returns the slot content. ok is false when the slot was never written.
func (s Store) ReadSlot(ctx context.Context, name string) (SlotValue, bool, error) {
        db, err := s.openSQLite(ctx)
        if err != nil {
                return SlotValue{}, false, err
        }
        defer db.Close()

        var (
                js   string
                rev  int64
                atMs int64
        )
        err = db.QueryRowContext(ctx, `SELECT json, revision, updated_at_unixms FROM slots WHERE name = ?`, strings.TrimSpace(name)).Scan(&js, &rev, &atMs)
        if errors.Is(err, sql.ErrNoRows) {
                return SlotValue{}, false, nil
        }
        if err != nil {
                return SlotValue{}, false, err
        }
        return SlotValue{
                Data:      []byte(js),
                Revision:  rev,
                UpdatedAt: time.UnixMilli(atMs).UTC(),
        }, true, nil
}

// WriteSlot replaces the slot content in a single transaction and returns the new revision.
func (s Store) WriteSlot(ctx context.Context, name string, data []byte) (int64, error) {
        name = strings.TrimSpace(name)
        if name == "" {
                return 0, errors.New("slot name is empty")
        }
        db, err := s.openSQLite(ctx)
        if err != nil {
                return 0, err
        }
        defer db.Close()

        tx, err := db.BeginTx(ctx, &sql.TxOptions{})
        if err != nil {
                return 0, err
        }
        defer func() { _ = tx.Rollback() }()

        nowMs := time.Now().UTC().UnixMilli()
        if _, err := tx.ExecContext(ctx, `INSERT INTO slots(name, json, revision, updated_at_unixms) VALUES(?, ?, 1, ?)
                ON CONFLICT(name) DO UPDATE SET
                        json = excluded.json,
                        revision = slots.revision + 1,
                        updated_at_unixms = excluded.updated_at_unixms`,
                name, string(data), nowMs); err != nil {
                return 0, err
        }
        var rev int64
        if err := tx.QueryRowContext(ctx, `SELECT revision FROM slots WHERE name = ?`, name).Scan(&rev); err != nil {
                return 0, err
        }
        if err := tx.Commit(); err != nil {
                return 0, err
        }
        return rev, nil
}

// SlotRevision returns the write counter of a slot, or 0 when it does not exist.
func (s Store) SlotRevision(ctx context.Context, name string) (int64, error) {
        db, err := s.openSQLite(ctx)
        if err != nil {
                return 0, err
        }
        defer db.Close()

        var rev int64
        err = db.QueryRowContext(ctx, `SELECT revision FROM slots WHERE name = ?`, strings.TrimSpace(name)).Scan(&rev)
        if errors.Is(err, sql.ErrNoRows) {
                return 0, nil
        }
        return rev, err
}
