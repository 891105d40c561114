package store

import (
        "context"
        "encoding/json"
        "fmt"
        "os"
        "path/filepath"
        "time"

        "wallet-cli/internal/model"
)

// Export is the file format written by `wallet export` and read by `wallet import`.
type Export struct {
        Version    int          `json:"version"`
        ExportedAt time.Time    `json:"exportedAt"`
        Cards      []model.Card `json:"cards"`
}

// WriteExport writes cards to path as an indented Export document.
func WriteExport(path string, cards []model.Card, now time.Time) error {
        if cards == nil {
                cards = []model.Card{}
        }
        b, err := json.MarshalIndent(Export{Version: 1, ExportedAt: now.UTC(), Cards: cards}, "", "  ")
        if err != nil {
                return err
        }
        dir := filepath.Dir(path)
        if err := os.MkdirAll(dir, 0o755); err != nil {
                return err
        }
        return atomicWriteFile(dir, filepath.Base(path)+".*.tmp", path, b, 0o600)
}

// ReadExport reads an export file. A bare JSON array of cards (the raw slot layout) is
// accepted too, so a slot dump can be imported directly.
func ReadExport(path string) ([]model.Card, error) {
        b, err := os.ReadFile(path)
        if err != nil {
                return nil, err
        }
        var doc struct {
                Version int             `json:"version"`
                Cards   json.RawMessage `json:"cards"`
        }
        if err := json.Unmarshal(b, &doc); err == nil && !isNullOrEmpty(doc.Cards) {
                return decodeCards(doc.Cards)
        }
        return decodeCards(b)
}

// Import replaces the collection with the cards from path, or appends the ones whose ids
// are not present yet when merge is true.
func (s *CardStore) Import(ctx context.Context, path string, merge bool) (int, error) {
        incoming, err := ReadExport(path)
        if err != nil {
                return 0, fmt.Errorf("read %s: %w", path, err)
        }
        if !merge {
                return len(incoming), s.ReplaceAll(ctx, incoming)
        }
        next := s.Cards()
        added := 0
        for _, c := range incoming {
                if idExists(next, c.ID) {
                        continue
                }
                next = append(next, c)
                added++
        }
        return added, s.ReplaceAll(ctx, next)
}
