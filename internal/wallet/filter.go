package wallet

import (
        "strings"

        "wallet-cli/internal/model"
)

// Filter keeps the cards whose store name contains term, ignoring case, in their original order.
// An empty term returns cards unchanged.
func Filter(cards []model.Card, term string) []model.Card {
        if term == "" {
                return cards
        }
        needle := strings.ToLower(term)
        out := make([]model.Card, 0, len(cards))
        for _, c := range cards {
                if strings.Contains(strings.ToLower(c.StoreName), needle) {
                        out = append(out, c)
                }
        }
        return out
}
