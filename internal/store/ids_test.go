package store

import (
        "strings"
        "testing"

        "wallet-cli/internal/model"
)

func TestNewRandomID_Shape(t *testing.T) {
        id, err := newRandomID("card")
        if err != nil {
                t.Fatalf("newRandomID: %v", err)
        }
        if !strings.HasPrefix(id, "card-") {
                t.Fatalf("expected card prefix, got %q", id)
        }
        suffix := strings.TrimPrefix(id, "card-")
        if got, want := len(suffix), 8; got != want {
                t.Fatalf("expected suffix len %d, got %d (%q)", want, got, suffix)
        }
        if suffix != strings.ToLower(suffix) {
                t.Fatalf("expected lowercase suffix, got %q", suffix)
        }
}

func TestNewCardID_DistinctFromExisting(t *testing.T) {
        existing := DefaultCards()
        seen := map[string]bool{}
        for _, c := range existing {
                seen[c.ID] = true
        }
        for i := 0; i < 200; i++ {
                id, err := NewCardID(existing)
                if err != nil {
                        t.Fatalf("NewCardID: %v", err)
                }
                if seen[id] {
                        t.Fatalf("duplicate id %q after %d draws", id, i)
                }
                seen[id] = true
                existing = append(existing, model.Card{ID: id})
        }
}
