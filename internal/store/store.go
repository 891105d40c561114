package store

import (
        "context"
        "os"
        "path/filepath"
        "strings"
        "time"
)

const (
        sqliteFileName = "wallet.sqlite"

        // CardsSlot is the slot holding the JSON array of cards.
        CardsSlot = "wallet_cards"
)

// Store is a workspace directory holding the wallet's SQLite file and small UI state files.
type Store struct {
        Dir string
}

// SlotValue is the raw content of a named slot plus its write counter.
type SlotValue struct {
        Data      []byte
        Revision  int64
        UpdatedAt time.Time
}

// Slot is the persistence primitive behind CardStore.
type Slot interface {
        ReadSlot(ctx context.Context, name string) (SlotValue, bool, error)
        WriteSlot(ctx context.Context, name string, data []byte) (int64, error)
        SlotRevision(ctx context.Context, name string) (int64, error)
}

func WorkspaceDir(name string) (string, error) {
        name, err := NormalizeWorkspaceName(name)
        if err != nil {
                return "", err
        }
        dir, err := ConfigDir()
        if err != nil {
                return "", err
        }
        return filepath.Join(dir, "workspaces", name), nil
}

func (s Store) Ensure() error {
        if strings.TrimSpace(s.Dir) == "" {
                return errEmptyDir
        }
        return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
        return filepath.Join(s.Dir, sqliteFileName)
}
