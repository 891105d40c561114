package cli

import (
        "fmt"
        "strings"

        "wallet-cli/internal/model"
        "wallet-cli/internal/store"

        "github.com/sahilm/fuzzy"
)

type notFoundError struct {
        kind    string
        id      string
        suggest []string
}

func (e notFoundError) Error() string {
        msg := fmt.Sprintf("%s not found: %s", e.kind, e.id)
        if len(e.suggest) > 0 {
                msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.suggest, ", "))
        }
        return msg
}

func errNotFound(kind, id string, suggest ...string) error {
        return notFoundError{kind: kind, id: id, suggest: suggest}
}

const maxSuggestions = 3

// resolveCard finds a card by id, then by store name when exactly one card matches it.
func resolveCard(cs *store.CardStore, ref string) (model.Card, int, error) {
        ref = strings.TrimSpace(ref)
        if c, i, ok := cs.Find(ref); ok {
                return c, i, nil
        }
        cards := cs.Cards()
        match, idx, n := model.Card{}, -1, 0
        for i, c := range cards {
                if strings.EqualFold(c.StoreName, ref) {
                        match, idx = c, i
                        n++
                }
        }
        if n == 1 {
                return match, idx, nil
        }
        if n > 1 {
                return model.Card{}, -1, fmt.Errorf("%d cards are named %q; use the card id", n, ref)
        }
        return model.Card{}, -1, errNotFound("card", ref, suggestCards(cards, ref)...)
}

// suggestCards fuzzy-matches ref against ids and store names.
func suggestCards(cards []model.Card, ref string) []string {
        if ref == "" || len(cards) == 0 {
                return nil
        }
        keys := make([]string, 0, len(cards)*2)
        for _, c := range cards {
                keys = append(keys, c.ID, c.StoreName)
        }
        var out []string
        seen := map[int]bool{}
        for _, m := range fuzzy.Find(ref, keys) {
                card := m.Index / 2
                if seen[card] {
                        continue
                }
                seen[card] = true
                c := cards[card]
                out = append(out, fmt.Sprintf("%s (%s)", c.ID, c.StoreName))
                if len(out) == maxSuggestions {
                        break
                }
        }
        return out
}
