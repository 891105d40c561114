package store

import (
        "encoding/json"
        "strings"

        "wallet-cli/internal/model"
)

// wireCard mirrors model.Card with pointer fields so missing required keys can be told
// apart from empty strings. Unknown keys are ignored.
type wireCard struct {
        ID         *string `json:"id"`
        StoreName  *string `json:"storeName"`
        CardNumber *string `json:"cardNumber"`
        ColorFrom  string  `json:"colorFrom"`
        ColorTo    string  `json:"colorTo"`
        LogoIcon   string  `json:"logoIcon"`
        Type       string  `json:"type"`
}

// decodeCards parses the persisted slot. Anything structurally invalid is an error so the
// caller can fall back to the seed list instead of showing a half-loaded wallet.
func decodeCards(b []byte) ([]model.Card, error) {
        if isNullOrEmpty(b) {
                return nil, invalidCards("empty slot")
        }
        var raw []json.RawMessage
        if err := json.Unmarshal(b, &raw); err != nil {
                return nil, invalidCards("not a JSON array: %v", err)
        }

        out := make([]model.Card, 0, len(raw))
        for i, r := range raw {
                if isNullOrEmpty(r) {
                        return nil, invalidCards("card %d is null", i)
                }
                var w wireCard
                if err := json.Unmarshal(r, &w); err != nil {
                        return nil, invalidCards("card %d: %v", i, err)
                }
                if w.ID == nil || w.StoreName == nil || w.CardNumber == nil {
                        return nil, invalidCards("card %d: missing id/storeName/cardNumber", i)
                }
                typ := model.SymbologyBarcode
                if strings.TrimSpace(w.Type) != "" {
                        typ = model.Symbology(w.Type)
                }
                out = append(out, model.Card{
                        ID:         *w.ID,
                        StoreName:  *w.StoreName,
                        CardNumber: *w.CardNumber,
                        ColorFrom:  w.ColorFrom,
                        ColorTo:    w.ColorTo,
                        LogoIcon:   w.LogoIcon,
                        Type:       typ,
                })
        }
        if err := validateCards(out); err != nil {
                return nil, err
        }
        return out, nil
}

func encodeCards(cards []model.Card) ([]byte, error) {
        if cards == nil {
                cards = []model.Card{}
        }
        return json.Marshal(cards)
}

func validateCards(cards []model.Card) error {
        seen := make(map[string]bool, len(cards))
        for i, c := range cards {
                if strings.TrimSpace(c.ID) == "" {
                        return invalidCards("card %d: empty id", i)
                }
                if seen[c.ID] {
                        return invalidCards("duplicate id %q", c.ID)
                }
                seen[c.ID] = true
                if strings.TrimSpace(c.StoreName) == "" {
                        return invalidCards("card %s: empty storeName", c.ID)
                }
                if strings.TrimSpace(c.CardNumber) == "" {
                        return invalidCards("card %s: empty cardNumber", c.ID)
                }
                if !c.Type.Valid() {
                        return invalidCards("card %s: unknown type %q", c.ID, c.Type)
                }
        }
        return nil
}

func isNullOrEmpty(b []byte) bool {
        if len(b) == 0 {
                return true
        }
        s := strings.TrimSpace(string(b))
        return s == "" || s == "null"
}
